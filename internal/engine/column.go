package engine

import (
	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/pool"
	"github.com/olivier-w/conveyor/internal/util"
)

// Column is the physics and rendering state of one conveyor column.
// Slot is the rendering slot it is bound to; SpeedMultiplier never changes
// after creation.
type Column struct {
	Slot            int
	Seq             *Sequence
	Offset          float64
	VelocityRaw     float64
	VelocityVisual  float64
	Skew            float64
	Blur            float64
	Hovered         bool
	Gap             float64
	SpeedMultiplier float64
}

// ColumnSnapshot is a read-only copy of a column for renderers.
type ColumnSnapshot struct {
	Slot     int
	Items    []pool.Item
	Offset   float64
	Velocity float64
	Skew     float64
	Blur     float64
	Hovered  bool
	Gap      float64
}

func (c *Column) snapshot() ColumnSnapshot {
	return ColumnSnapshot{
		Slot:     c.Slot,
		Items:    c.Seq.Items(),
		Offset:   c.Offset,
		Velocity: c.VelocityVisual,
		Skew:     c.Skew,
		Blur:     c.Blur,
		Hovered:  c.Hovered,
		Gap:      c.Gap,
	}
}

// integrate applies friction, smooths the visual velocity and advances the offset.
func (c *Column) integrate(p config.Physics) {
	c.VelocityRaw *= p.Friction
	c.VelocityVisual = util.Lerp(c.VelocityVisual, c.VelocityRaw, p.VelocitySmooth)
	c.Offset += c.VelocityVisual * c.SpeedMultiplier
}

// settle eases skew and blur toward their targets, each with its own rate.
func (c *Column) settle(p config.Physics, blurTarget float64) {
	skewTarget := util.Clamp(c.VelocityVisual*p.SkewScale, -p.SkewMax, p.SkewMax)
	c.Skew = util.Lerp(c.Skew, skewTarget, p.SkewSmooth)
	c.Blur = util.Lerp(c.Blur, blurTarget, p.BlurSmooth)
}
