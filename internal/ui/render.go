package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/olivier-w/conveyor/internal/engine"
	"github.com/olivier-w/conveyor/internal/pool"
)

// blurLevels is how many distinct fade steps a card can be drawn at.
const blurLevels = 8

// maxFade caps how far a fully blurred card fades toward the background.
const maxFade = 0.8

type styledKey struct {
	key     string
	level   int
	hovered bool
}

// blurLevel quantizes a blur amount so rendered cards can be cached.
func (s *surface) blurLevel(amount float64) int {
	if s.blurMax <= 0 || amount <= 0 {
		return 0
	}
	l := int(math.Round(amount / s.blurMax * blurLevels))
	if l > blurLevels {
		l = blurLevels
	}
	return l
}

func blend(from, to string, t float64) lipgloss.Color {
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(from)
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}

// renderCard draws a bordered card, faded toward the background by level.
func (s *surface) renderCard(it pool.Item, level int, hovered bool) []string {
	k := styledKey{key: it.Key, level: level, hovered: hovered}
	if out, ok := s.styled[k]; ok {
		return strings.Split(out, "\n")
	}

	fade := float64(level) / blurLevels * maxFade
	border := cardBorder
	if hovered {
		border = hoverBorder
	}
	text := s.cardText(it)
	body := make([]string, len(text.lines))
	for i, l := range text.lines {
		st := lipgloss.NewStyle()
		switch {
		case i == len(text.lines)-1:
			st = st.Foreground(blend(railFg, background, math.Min(1, fade+0.3)))
		case i < text.titleRows:
			st = st.Bold(true).Foreground(blend(cardFg, background, fade))
		default:
			st = st.Foreground(blend(railFg, background, fade))
		}
		body[i] = st.Render(l)
	}

	out := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blend(border, background, fade)).
		Padding(0, 1).
		Width(s.colWidth - 2).
		Render(strings.Join(body, "\n"))
	s.styled[k] = out
	return strings.Split(out, "\n")
}

// renderColumn draws one column's visible window, height rows tall.
func (s *surface) renderColumn(snap engine.ColumnSnapshot) []string {
	w := s.colWidth
	rows := blankRows(s.height, w)
	st := s.slots[snap.Slot]
	level := s.blurLevel(st.blur)

	row := int(math.Round(st.translate / s.layout.UnitsPerRow))
	for _, it := range snap.Items {
		if row >= s.height {
			break
		}
		card := s.renderCard(it, level, snap.Hovered)
		for i, l := range card {
			if r := row + i; r >= 0 && r < s.height {
				rows[r] = l
			}
		}
		row += len(card) + s.layout.GapRows
	}
	return shear(rows, st.skew, w, s.layout.ShearFactor)
}

// renderRail draws the info rail, width cells wide.
func (s *surface) renderRail(r *engine.Rail, width int) []string {
	rows := make([]string, s.height)
	blank := railStyle.Render(spaces(width))
	for i := range rows {
		rows[i] = blank
	}
	if width < 3 {
		return rows
	}
	for _, e := range r.Entries {
		row := int(math.Round(e.Top / s.layout.UnitsPerRow))
		if row < 0 || row >= s.height {
			continue
		}
		label := runewidth.FillRight(runewidth.Truncate(e.Label, width-2, "…"), width-2)
		st := railStyle
		if e.Active {
			st = railActiveStyle
		}
		rows[row] = st.Render(" " + label + " ")
	}
	return shear(rows, r.Skew, width, s.layout.ShearFactor)
}

// shear shifts rows horizontally around the column's midline, the cell grid
// stand-in for a vertical skew of skew degrees.
func shear(rows []string, skew float64, width int, factor float64) []string {
	if factor == 0 || math.Abs(skew) < 0.05 {
		return rows
	}
	t := math.Tan(skew*math.Pi/180) * factor
	mid := float64(len(rows)) / 2
	for i, l := range rows {
		shift := int(math.Round((float64(i) - mid) * t))
		rows[i] = shiftRow(l, shift, width)
	}
	return rows
}

func shiftRow(row string, shift, width int) string {
	switch {
	case shift >= width || -shift >= width:
		return spaces(width)
	case shift > 0:
		return spaces(shift) + ansi.Truncate(row, width-shift, "") + ansi.ResetStyle
	case shift < 0:
		return ansi.Cut(row, -shift, width) + ansi.ResetStyle + spaces(-shift)
	}
	return row
}

// splice overlays seg onto row starting at cell x.
func splice(row, seg string, x, segWidth, rowWidth int) string {
	if x < 0 {
		seg = ansi.Cut(seg, -x, segWidth)
		segWidth += x
		x = 0
	}
	if x+segWidth > rowWidth {
		seg = ansi.Truncate(seg, rowWidth-x, "")
		segWidth = rowWidth - x
	}
	if segWidth <= 0 {
		return row
	}
	if w := ansi.StringWidth(row); w < x {
		row += spaces(x - w)
	}
	prefix := ansi.Truncate(row, x, "") + ansi.ResetStyle
	suffix := ansi.Cut(row, x+segWidth, rowWidth)
	return prefix + seg + ansi.ResetStyle + suffix
}

func blankRows(n, width int) []string {
	rows := make([]string, n)
	blank := spaces(width)
	for i := range rows {
		rows[i] = blank
	}
	return rows
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
