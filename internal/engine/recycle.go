package engine

import "github.com/olivier-w/conveyor/internal/pool"

// recycle rotates items that have fully scrolled out of view to the opposite
// end and compensates the offset by the same step, so nothing visibly moves.
// It returns how many items were moved.
func (e *Engine) recycle(c *Column) int {
	moved := 0

	for guard := 0; c.Offset > 0 && guard < e.phys.RecycleGuard; guard++ {
		first, ok := c.Seq.First()
		if !ok {
			break
		}
		step := e.step(c, first)
		if step <= 0 {
			e.degenerate(c, first, step)
			break
		}
		if c.Offset < step {
			break
		}
		c.Offset -= step
		c.Seq.RotateForward()
		moved++
	}

	for guard := 0; c.Offset < 0 && guard < e.phys.RecycleGuard; guard++ {
		last, ok := c.Seq.Last()
		if !ok {
			break
		}
		step := e.step(c, last)
		if step <= 0 {
			e.degenerate(c, last, step)
			break
		}
		c.Offset += step
		c.Seq.RotateBackward()
		moved++
	}

	return moved
}

// step is the scroll distance one item occupies: its extent plus the gap.
func (e *Engine) step(c *Column, it pool.Item) float64 {
	return e.sink.Extent(c.Slot, it) + c.Gap
}

func (e *Engine) degenerate(c *Column, it pool.Item, step float64) {
	e.log.Debug("recycle skipped", "slot", c.Slot, "key", it.Key, "step", step, "err", ErrDegenerateExtent)
}
