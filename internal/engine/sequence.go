package engine

import "github.com/olivier-w/conveyor/internal/pool"

// Sequence is a logically cyclic ordering of items. Moving the head to the
// tail (or back) only shifts the start index.
type Sequence struct {
	items []pool.Item
	head  int
}

// NewSequence copies items into a sequence.
func NewSequence(items []pool.Item) *Sequence {
	buf := make([]pool.Item, len(items))
	copy(buf, items)
	return &Sequence{items: buf}
}

// Len returns the number of items.
func (s *Sequence) Len() int {
	return len(s.items)
}

// At returns the i-th item in the current order.
func (s *Sequence) At(i int) pool.Item {
	return s.items[(s.head+i)%len(s.items)]
}

// First returns the lead item.
func (s *Sequence) First() (pool.Item, bool) {
	if len(s.items) == 0 {
		return pool.Item{}, false
	}
	return s.items[s.head], true
}

// Last returns the trail item.
func (s *Sequence) Last() (pool.Item, bool) {
	if len(s.items) == 0 {
		return pool.Item{}, false
	}
	return s.At(len(s.items) - 1), true
}

// RotateForward moves the lead item to the tail.
func (s *Sequence) RotateForward() {
	if len(s.items) == 0 {
		return
	}
	s.head = (s.head + 1) % len(s.items)
}

// RotateBackward moves the trail item to the front.
func (s *Sequence) RotateBackward() {
	if len(s.items) == 0 {
		return
	}
	s.head = (s.head - 1 + len(s.items)) % len(s.items)
}

// Items returns the items in current order.
func (s *Sequence) Items() []pool.Item {
	out := make([]pool.Item, len(s.items))
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Index returns the position of key in the current order, or -1.
func (s *Sequence) Index(key string) int {
	for i := range s.items {
		if s.At(i).Key == key {
			return i
		}
	}
	return -1
}
