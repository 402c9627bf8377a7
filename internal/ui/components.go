package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/x/ansi"
	"github.com/olivier-w/conveyor/internal/engine"
)

const meterWidth = 16

func newMeter() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF3D00"),
		progress.WithWidth(meterWidth),
		progress.WithoutPercentage(),
	)
}

// speedRatio maps a visual velocity onto the meter's 0..1 range. The wheel
// clamp is the fastest a single push can make a column go.
func speedRatio(velocity, clamp float64) float64 {
	if clamp <= 0 {
		return 0
	}
	return math.Min(1, math.Abs(velocity)/clamp)
}

func modeLabel(mode engine.Mode, drawer string, drifting bool) string {
	s := mode.String()
	if mode == engine.DrawerOpen && drawer != "" {
		s += " " + drawer
	}
	if drifting {
		s += "  ~ drift"
	}
	return s
}

// renderStatus lays out the status bar: mode on the left, the hovered
// column's speed and any transient message on the right.
func renderStatus(width int, left, meter, msg string) string {
	right := meter
	if msg != "" {
		right = msg + "  " + meter
	}
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right) - 4
	if gap < 2 {
		gap = 2
	}
	return fmt.Sprintf("  %s%s%s", statusStyle.Render(left), spaces(gap), right)
}
