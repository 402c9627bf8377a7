package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/engine"
	"github.com/olivier-w/conveyor/internal/pool"
)

func testSurface() *surface {
	s := newSurface(config.Default().Layout, 28)
	s.resize(120, 30)
	return s
}

func TestBindRejectsUnknownSlot(t *testing.T) {
	s := testSurface()
	if _, err := s.Bind(4); !errors.Is(err, engine.ErrMissingRenderTarget) {
		t.Fatalf("expected ErrMissingRenderTarget, got %v", err)
	}
	gap, err := s.Bind(0)
	if err != nil {
		t.Fatalf("Bind(0): %v", err)
	}
	if gap != 20 {
		t.Fatalf("expected one row gap of 20 units, got %v", gap)
	}
}

func TestExtentMatchesRenderedCard(t *testing.T) {
	s := testSurface()
	items := []pool.Item{
		{Key: "a", Title: "Short"},
		{Key: "b", Title: "A considerably longer title that has to wrap across lines", Description: "With a description that also goes on for a while and wraps too, more than three lines at this width for sure"},
	}
	for _, it := range items {
		rows := len(s.renderCard(it, 0, false))
		if got, want := s.Extent(0, it), float64(rows)*20; got != want {
			t.Fatalf("%s: extent %v, rendered %d rows", it.Key, got, rows)
		}
		for i, l := range s.renderCard(it, 3, true) {
			if w := ansi.StringWidth(l); w != s.colWidth {
				t.Fatalf("%s: row %d is %d wide, want %d", it.Key, i, w, s.colWidth)
			}
		}
	}
}

func TestCardTextClipsLongFields(t *testing.T) {
	s := testSurface()
	text := s.cardText(pool.Item{
		Key:         "c",
		Title:       strings.Repeat("word ", 40),
		Description: strings.Repeat("more ", 80),
	})
	if text.titleRows != maxTitleLines {
		t.Fatalf("expected %d title rows, got %d", maxTitleLines, text.titleRows)
	}
	if len(text.lines) != maxTitleLines+maxDescLines+1 {
		t.Fatalf("expected clipped card, got %d lines", len(text.lines))
	}
	if !strings.HasSuffix(text.lines[maxTitleLines-1], "…") {
		t.Fatalf("expected ellipsis on clipped title, got %q", text.lines[maxTitleLines-1])
	}
}

func TestUntitledCard(t *testing.T) {
	s := testSurface()
	if got := s.cardText(pool.Item{Key: "u"}).lines[0]; got != "Untitled" {
		t.Fatalf("expected Untitled, got %q", got)
	}
}

func TestBlurLevel(t *testing.T) {
	s := testSurface()
	tests := []struct {
		amount float64
		want   int
	}{
		{0, 0},
		{-1, 0},
		{14, 4},
		{28, blurLevels},
		{100, blurLevels},
	}
	for _, tt := range tests {
		if got := s.blurLevel(tt.amount); got != tt.want {
			t.Fatalf("blurLevel(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestShiftRow(t *testing.T) {
	if got := ansi.Strip(shiftRow("abcd", 1, 4)); got != " abc" {
		t.Fatalf("right shift: got %q", got)
	}
	if got := ansi.Strip(shiftRow("abcd", -1, 4)); got != "bcd " {
		t.Fatalf("left shift: got %q", got)
	}
	if got := shiftRow("abcd", 9, 4); got != "    " {
		t.Fatalf("overshift: got %q", got)
	}
}

func TestShearLeavesSmallSkewAlone(t *testing.T) {
	rows := []string{"ab", "cd"}
	out := shear(rows, 0.01, 2, 0.5)
	if out[0] != "ab" || out[1] != "cd" {
		t.Fatalf("expected rows untouched, got %q", out)
	}
}

func TestSplice(t *testing.T) {
	got := ansi.Strip(splice("aaaaaaaaaa", "XX", 3, 2, 10))
	if got != "aaaXXaaaaa" {
		t.Fatalf("got %q", got)
	}
	got = ansi.Strip(splice("aaaa", "XXXX", 2, 4, 4))
	if got != "aaXX" {
		t.Fatalf("clipped splice: got %q", got)
	}
}

func TestRailX(t *testing.T) {
	if got := railX(0, 4, 30, 20); got != 30 {
		t.Fatalf("expected rail right of slot 0, got %d", got)
	}
	if got := railX(3, 4, 30, 20); got != 70 {
		t.Fatalf("expected rail left of last slot, got %d", got)
	}
	if got := railX(0, 1, 80, 32); got != 48 {
		t.Fatalf("expected single column rail against the right edge, got %d", got)
	}
	if got := railX(0, 1, 20, 32); got != 0 {
		t.Fatalf("expected rail clamped to the left edge, got %d", got)
	}
}

func TestRenderRailPlacesEntriesByTop(t *testing.T) {
	s := testSurface()
	r := &engine.Rail{Entries: []engine.RailEntry{
		{Key: "a", Label: "First", Top: 0, Active: true},
		{Key: "b", Label: "Second", Top: 120},
		{Key: "c", Label: "Gone", Top: -200},
	}}
	rows := s.renderRail(r, 20)
	if len(rows) != s.height {
		t.Fatalf("expected %d rows, got %d", s.height, len(rows))
	}
	if !strings.Contains(ansi.Strip(rows[0]), "First") {
		t.Fatalf("expected First on row 0, got %q", ansi.Strip(rows[0]))
	}
	if !strings.Contains(ansi.Strip(rows[6]), "Second") {
		t.Fatalf("expected Second on row 6, got %q", ansi.Strip(rows[6]))
	}
	for i, l := range rows {
		if w := ansi.StringWidth(l); w != 20 {
			t.Fatalf("row %d is %d wide", i, w)
		}
	}
}
