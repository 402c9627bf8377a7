// Package engine is the conveyor's animation core: per-column physics,
// push-pull coupling between columns, idle drift, infinite-scroll recycling
// and the info rail that mirrors one column.
//
// The engine is single-threaded. Input handlers build Events and hand them to
// Apply between frames; Step advances one frame and pushes the result to the
// Sink. Neither blocks, and nothing here needs locking.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/pool"
)

// Sink is the rendering surface the engine drives. Slots are rendering
// positions; extents and gaps are in engine units.
type Sink interface {
	// Bind prepares the surface for a slot and returns its inter-item gap.
	Bind(slot int) (gap float64, err error)
	// Extent returns the rendered size of it in slot.
	Extent(slot int, it pool.Item) float64
	// Transform places a slot's content at translate with the given skew in degrees.
	Transform(slot int, translate, skew float64)
	// Blur sets a slot's blur amount.
	Blur(slot int, amount float64)
	// Rail hands over the info rail state, or nil when no overlay exists.
	Rail(r *Rail)
}

// Options configures New.
type Options struct {
	Physics    config.Physics
	CloseDelay time.Duration
	Logger     *slog.Logger
	Rand       *rand.Rand
	Now        time.Time
}

// Frame summarizes one Step.
type Frame struct {
	Mode       Mode
	Drifting   bool
	Recycled   int
	Unresolved int
}

// Engine owns every column record and the overlay session.
type Engine struct {
	phys       config.Physics
	closeDelay time.Duration
	sink       Sink
	log        *slog.Logger

	cols      []*Column
	bySlot    map[int]*Column
	overlay   Overlay
	drawer    string
	lastInput time.Time
}

// New binds one column per entry of columns. A column whose slot cannot be
// bound is logged and skipped; New fails only if no column remains.
func New(sink Sink, columns [][]pool.Item, opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	e := &Engine{
		phys:       opts.Physics,
		closeDelay: opts.CloseDelay,
		sink:       sink,
		log:        log,
		bySlot:     make(map[int]*Column, len(columns)),
		lastInput:  opts.Now,
	}

	var lastErr error
	for slot, items := range columns {
		gap, err := sink.Bind(slot)
		if err != nil {
			lastErr = err
			log.Error("column skipped", "slot", slot, "err", err)
			continue
		}
		c := &Column{
			Slot:            slot,
			Seq:             NewSequence(items),
			Gap:             gap,
			SpeedMultiplier: opts.Physics.SpeedMin + rng.Float64()*opts.Physics.SpeedSpread,
		}
		e.cols = append(e.cols, c)
		e.bySlot[slot] = c
	}
	if len(e.cols) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoColumns, lastErr)
		}
		return nil, ErrNoColumns
	}
	return e, nil
}

// Apply consumes one input event. When the event starts an overlay close,
// the returned Teardown must be delivered back through Engine.Teardown after
// its delay.
func (e *Engine) Apply(ev Event, now time.Time) *Teardown {
	switch ev := ev.(type) {
	case PushScroll:
		if e.drawer != "" {
			return nil
		}
		if c := e.bySlot[ev.Column]; c != nil {
			e.push(c, ev.Delta, true, now)
		}

	case OverlayScroll:
		if e.drawer != "" || !e.overlay.Open {
			return nil
		}
		if c := e.bySlot[e.overlay.Column]; c != nil {
			e.push(c, ev.Delta, false, now)
		}

	case HoverEnter:
		c := e.bySlot[ev.Column]
		if c == nil {
			return nil
		}
		c.Hovered = true
		if e.overlay.Open && e.overlay.Column != c.Slot {
			return e.requestClose(now)
		}

	case HoverLeave:
		if c := e.bySlot[ev.Column]; c != nil {
			c.Hovered = false
		}

	case PointerExit:
		for _, c := range e.cols {
			c.Hovered = false
		}
		return e.requestClose(now)

	case OpenOverlay:
		if e.drawer != "" {
			return nil
		}
		e.openOverlay(ev)

	case CloseOverlay, OutsideClick:
		return e.requestClose(now)

	case Escape:
		e.drawer = ""
		return e.requestClose(now)

	case OpenDrawer:
		return e.openDrawer(ev.Name, now)

	case CloseDrawer:
		if e.drawer == ev.Name {
			e.drawer = ""
		}

	case ToggleDrawer:
		if e.drawer == ev.Name {
			e.drawer = ""
			return nil
		}
		return e.openDrawer(ev.Name, now)
	}
	return nil
}

func (e *Engine) openDrawer(name string, now time.Time) *Teardown {
	td := e.requestClose(now)
	e.drawer = name
	return td
}

// Step runs one animation frame: drift, integration, recycling, visual
// smoothing and rail sync, then pushes the result to the sink.
func (e *Engine) Step(now time.Time) Frame {
	hoveredAny := e.anyHovered()
	f := Frame{Drifting: e.driftActive(now)}

	for _, c := range e.cols {
		if f.Drifting {
			c.VelocityRaw += driftDirection(c.Slot) * e.phys.IdlePush
		}
		c.integrate(e.phys)

		moved := e.recycle(c)
		f.Recycled += moved
		if moved > 0 && e.overlay.Open && e.overlay.Column == c.Slot {
			e.overlay.rebuild(c)
		}

		c.settle(e.phys, e.blurTarget(c, hoveredAny))
		e.sink.Transform(c.Slot, -c.Offset, c.Skew)
		e.sink.Blur(c.Slot, c.Blur)
	}

	if c := e.overlayColumn(); c != nil {
		f.Unresolved = e.overlay.sync(c, e.extentFn(c))
		if f.Unresolved > 0 {
			e.log.Debug("rail sync incomplete", "slot", c.Slot, "missing", f.Unresolved, "err", ErrUnresolvedKey)
		}
		e.sink.Rail(e.overlay.rail(c.Skew))
	} else {
		e.sink.Rail(nil)
	}

	f.Mode = e.Mode()
	return f
}

func (e *Engine) overlayColumn() *Column {
	if !e.overlay.Open {
		return nil
	}
	return e.bySlot[e.overlay.Column]
}

// CloseAllOverlays closes the info rail and any drawer. Collaborators call it
// before showing their own top-level panel.
func (e *Engine) CloseAllOverlays(now time.Time) *Teardown {
	e.drawer = ""
	return e.requestClose(now)
}

// OverlayOpen reports whether an overlay session exists, closing or not.
func (e *Engine) OverlayOpen() bool {
	return e.overlay.Open
}

// DrawerOpen reports whether any drawer is open.
func (e *Engine) DrawerOpen() bool {
	return e.drawer != ""
}

// Drawer returns the open drawer's name, or "".
func (e *Engine) Drawer() string {
	return e.drawer
}

// Overlay returns a copy of the current overlay session.
func (e *Engine) Overlay() Overlay {
	o := e.overlay
	o.Entries = append([]RailEntry(nil), e.overlay.Entries...)
	return o
}

// Slots returns the bound slots in order.
func (e *Engine) Slots() []int {
	out := make([]int, len(e.cols))
	for i, c := range e.cols {
		out[i] = c.Slot
	}
	return out
}

// Column returns a snapshot of the column bound to slot.
func (e *Engine) Column(slot int) (ColumnSnapshot, bool) {
	c := e.bySlot[slot]
	if c == nil {
		return ColumnSnapshot{}, false
	}
	return c.snapshot(), true
}

// ItemAt finds the item under y, measured in engine units from the top of
// the slot's viewport. top is that item's position in the same frame.
func (e *Engine) ItemAt(slot int, y float64) (it pool.Item, top float64, ok bool) {
	c := e.bySlot[slot]
	if c == nil {
		return pool.Item{}, 0, false
	}
	content := y + c.Offset
	cum := 0.0
	for i := 0; i < c.Seq.Len(); i++ {
		cur := c.Seq.At(i)
		ext := e.sink.Extent(c.Slot, cur)
		if content >= cum && content < cum+ext {
			return cur, cum - c.Offset, true
		}
		cum += ext + c.Gap
		if cum > content {
			break
		}
	}
	return pool.Item{}, 0, false
}
