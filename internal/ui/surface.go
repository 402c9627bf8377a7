package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/engine"
	"github.com/olivier-w/conveyor/internal/pool"
)

const (
	defaultColWidth = 24
	minColWidth     = 8
	maxTitleLines   = 2
	maxDescLines    = 3
)

type slotState struct {
	translate float64
	skew      float64
	blur      float64
}

// cardText is a card's wrapped text. The first titleRows lines are the title
// and the last line is the kind badge.
type cardText struct {
	lines     []string
	titleRows int
}

type cardKey struct {
	key   string
	width int
}

// surface is the terminal rendering sink. It lays cards out on the cell grid
// and keeps the per-slot transforms the engine pushes each frame.
type surface struct {
	layout   config.Layout
	slots    []slotState
	colWidth int
	height   int
	blurMax  float64
	texts    map[cardKey]cardText
	styled   map[styledKey]string
	rail     *engine.Rail
}

func newSurface(layout config.Layout, blurMax float64) *surface {
	return &surface{
		layout:   layout,
		slots:    make([]slotState, layout.Columns),
		colWidth: defaultColWidth,
		blurMax:  blurMax,
		texts:    make(map[cardKey]cardText),
		styled:   make(map[styledKey]string),
	}
}

// resize fits the columns to a conveyor area of width x height cells.
func (s *surface) resize(width, height int) {
	w := width / len(s.slots)
	if w < minColWidth {
		w = minColWidth
	}
	if w != s.colWidth {
		s.colWidth = w
		s.styled = make(map[styledKey]string)
	}
	s.height = height
}

func (s *surface) Bind(slot int) (float64, error) {
	if slot < 0 || slot >= len(s.slots) {
		return 0, fmt.Errorf("slot %d of %d: %w", slot, len(s.slots), engine.ErrMissingRenderTarget)
	}
	return float64(s.layout.GapRows) * s.layout.UnitsPerRow, nil
}

func (s *surface) Extent(_ int, it pool.Item) float64 {
	return float64(s.cardRows(it)) * s.layout.UnitsPerRow
}

func (s *surface) Transform(slot int, translate, skew float64) {
	if slot >= 0 && slot < len(s.slots) {
		s.slots[slot].translate = translate
		s.slots[slot].skew = skew
	}
}

func (s *surface) Blur(slot int, amount float64) {
	if slot >= 0 && slot < len(s.slots) {
		s.slots[slot].blur = amount
	}
}

func (s *surface) Rail(r *engine.Rail) {
	s.rail = r
}

// totalWidth is the width of all columns side by side.
func (s *surface) totalWidth() int {
	return s.colWidth * len(s.slots)
}

// cardRows is the rendered height of a card: its text lines plus the border.
func (s *surface) cardRows(it pool.Item) int {
	return len(s.cardText(it).lines) + 2
}

// cardText wraps a card's text to the column's inner width.
func (s *surface) cardText(it pool.Item) cardText {
	k := cardKey{key: it.Key, width: s.colWidth}
	if t, ok := s.texts[k]; ok {
		return t
	}
	inner := s.colWidth - 4
	if inner < 1 {
		inner = 1
	}

	title := it.Title
	if title == "" {
		title = "Untitled"
	}
	lines := clip(wrap(title, inner), maxTitleLines, inner)
	titleRows := len(lines)
	if it.Description != "" {
		lines = append(lines, clip(wrap(it.Description, inner), maxDescLines, inner)...)
	}
	lines = append(lines, ansi.Truncate(it.Kind.Badge()+" "+it.Kind.String(), inner, "…"))

	t := cardText{lines: lines, titleRows: titleRows}
	s.texts[k] = t
	return t
}

func wrap(text string, width int) []string {
	lines := strings.Split(ansi.Wrap(strings.TrimSpace(text), width, " -"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// clip keeps at most n lines, marking the last kept line when text was cut.
func clip(lines []string, n, width int) []string {
	if len(lines) <= n {
		return lines
	}
	out := append([]string(nil), lines[:n]...)
	last := ansi.Truncate(out[n-1], width-1, "")
	out[n-1] = last + "…"
	return out
}
