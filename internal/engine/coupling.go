package engine

import (
	"time"

	"github.com/olivier-w/conveyor/internal/util"
)

// push clamps delta and adds it to target's raw velocity. When coupled,
// every other column is pushed the opposite way by the sibling multiplier.
func (e *Engine) push(target *Column, delta float64, coupled bool, now time.Time) {
	e.lastInput = now
	d := util.Clamp(delta, -e.phys.WheelClamp, e.phys.WheelClamp)

	target.VelocityRaw += d * e.phys.ActiveMult
	if !coupled {
		return
	}
	for _, c := range e.cols {
		if c == target {
			continue
		}
		c.VelocityRaw -= d * e.phys.OtherMult
	}
}

// driftActive reports whether idle auto-drift applies this frame.
func (e *Engine) driftActive(now time.Time) bool {
	return !e.anyHovered() &&
		now.Sub(e.lastInput) > e.phys.IdleAfter &&
		!e.overlay.Open &&
		e.drawer == ""
}

// driftDirection alternates by slot parity: even slots drift forward.
func driftDirection(slot int) float64 {
	if slot%2 == 1 {
		return -1
	}
	return 1
}
