package ui

import (
	"github.com/charmbracelet/harmonica"
	"github.com/olivier-w/conveyor/internal/util"
)

// railReveal animates the rail's width between hidden (0) and shown (1).
type railReveal struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newRailReveal(fps int, frequency, damping float64) railReveal {
	return railReveal{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (r *railReveal) step(target float64) float64 {
	r.pos, r.vel = r.spring.Update(r.pos, r.vel, target)
	if target == 0 && r.pos < 0.01 && r.vel <= 0 {
		r.pos, r.vel = 0, 0
	}
	return r.pos
}

// width is the number of cells the rail covers at the current reveal.
func (r railReveal) width(full int) int {
	return int(util.Clamp(r.pos, 0, 1)*float64(full) + 0.5)
}

// railX places a rail of width w beside the bound slot: over the next
// column, or over the previous one when slot is the last. With nothing to the
// left it sits against the right edge of the columns.
func railX(slot, slots, colWidth, w int) int {
	if slot < slots-1 {
		return (slot + 1) * colWidth
	}
	if x := slot*colWidth - w; x >= 0 {
		return x
	}
	return max(0, slots*colWidth-w)
}
