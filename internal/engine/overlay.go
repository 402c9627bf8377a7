package engine

import (
	"time"

	"github.com/olivier-w/conveyor/internal/pool"
)

// RailEntry is one row of the info rail, mirroring an item of the bound column.
type RailEntry struct {
	Key    string
	Label  string
	Top    float64
	Active bool
}

// Rail is the per-frame state handed to the sink while the overlay is open.
type Rail struct {
	Column    int
	Skew      float64
	RailShift float64
	Closing   bool
	Entries   []RailEntry
}

// Teardown is a deferred overlay teardown. It only takes effect if no reopen
// happened in between, which the generation captures.
type Teardown struct {
	Generation uint64
	Delay      time.Duration
	At         time.Time
}

// Overlay is the info rail session. Column is a relation to a slot; the
// overlay never owns the column.
type Overlay struct {
	Open      bool
	Closing   bool
	Column    int
	ActiveKey string
	RailShift float64
	Entries   []RailEntry

	index      map[string]int
	generation uint64
}

// Generation returns the current session generation.
func (o Overlay) Generation() uint64 {
	return o.generation
}

// rebuild mirrors the column's current order into the shadow list.
func (o *Overlay) rebuild(c *Column) {
	n := c.Seq.Len()
	o.Entries = make([]RailEntry, n)
	o.index = make(map[string]int, n)
	for i := 0; i < n; i++ {
		it := c.Seq.At(i)
		o.Entries[i] = RailEntry{Key: it.Key, Label: it.Label(), Active: it.Key == o.ActiveKey}
		o.index[it.Key] = i
	}
}

// align sets RailShift so the active entry lands on anchor. It reports
// whether the active key is in the column.
func (o *Overlay) align(c *Column, extent func(pool.Item) float64, anchor float64) bool {
	y := 0.0
	for i := 0; i < c.Seq.Len(); i++ {
		it := c.Seq.At(i)
		if it.Key == o.ActiveKey {
			o.RailShift = anchor - (y - c.Offset)
			return true
		}
		y += extent(it) + c.Gap
	}
	return false
}

// sync positions every entry to follow the column's live offset. It returns
// how many live items had no entry.
func (o *Overlay) sync(c *Column, extent func(pool.Item) float64) int {
	unresolved := 0
	y := 0.0
	for i := 0; i < c.Seq.Len(); i++ {
		it := c.Seq.At(i)
		idx, ok := o.index[it.Key]
		if !ok {
			unresolved++
			y += extent(it) + c.Gap
			continue
		}
		o.Entries[idx].Top = (y - c.Offset) + o.RailShift
		o.Entries[idx].Active = it.Key == o.ActiveKey
		y += extent(it) + c.Gap
	}
	return unresolved
}

func (o *Overlay) rail(skew float64) *Rail {
	entries := make([]RailEntry, len(o.Entries))
	copy(entries, o.Entries)
	return &Rail{
		Column:    o.Column,
		Skew:      skew,
		RailShift: o.RailShift,
		Closing:   o.Closing,
		Entries:   entries,
	}
}

func (e *Engine) openOverlay(ev OpenOverlay) {
	c := e.bySlot[ev.Column]
	if c == nil {
		e.log.Debug("overlay open ignored", "slot", ev.Column, "err", ErrMissingRenderTarget)
		return
	}
	if c.Seq.Index(ev.Key) < 0 {
		e.log.Debug("overlay open ignored", "slot", ev.Column, "key", ev.Key, "err", ErrUnresolvedKey)
		return
	}

	gen := e.overlay.generation + 1
	e.overlay = Overlay{
		Open:       true,
		Column:     c.Slot,
		ActiveKey:  ev.Key,
		generation: gen,
	}
	e.overlay.rebuild(c)
	e.overlay.align(c, e.extentFn(c), ev.Anchor)
	e.overlay.sync(c, e.extentFn(c))
}

// requestClose starts the visual close and returns the teardown to schedule.
// It is a no-op when the overlay is closed or already closing.
func (e *Engine) requestClose(now time.Time) *Teardown {
	if !e.overlay.Open || e.overlay.Closing {
		return nil
	}
	e.overlay.Closing = true
	return &Teardown{
		Generation: e.overlay.generation,
		Delay:      e.closeDelay,
		At:         now.Add(e.closeDelay),
	}
}

// Teardown clears the overlay session if gen still names the closing session.
// Stale generations (a reopen happened since) are ignored.
func (e *Engine) Teardown(gen uint64) bool {
	o := &e.overlay
	if !o.Open || !o.Closing || gen != o.generation {
		return false
	}
	e.overlay = Overlay{generation: o.generation}
	return true
}

func (e *Engine) extentFn(c *Column) func(pool.Item) float64 {
	return func(it pool.Item) float64 {
		return e.sink.Extent(c.Slot, it)
	}
}
