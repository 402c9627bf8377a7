package engine

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/olivier-w/conveyor/internal/config"
	"github.com/olivier-w/conveyor/internal/pool"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type fakeSink struct {
	extents    map[string]float64
	def        float64
	gap        float64
	missing    map[int]bool
	translate  map[int]float64
	skew       map[int]float64
	blur       map[int]float64
	rail       *Rail
	railCalls  int
	extentHits int
}

func newFakeSink(def, gap float64) *fakeSink {
	return &fakeSink{
		extents:   map[string]float64{},
		def:       def,
		gap:       gap,
		missing:   map[int]bool{},
		translate: map[int]float64{},
		skew:      map[int]float64{},
		blur:      map[int]float64{},
	}
}

func (s *fakeSink) Bind(slot int) (float64, error) {
	if s.missing[slot] {
		return 0, fmt.Errorf("slot %d: %w", slot, ErrMissingRenderTarget)
	}
	return s.gap, nil
}

func (s *fakeSink) Extent(_ int, it pool.Item) float64 {
	s.extentHits++
	if v, ok := s.extents[it.Key]; ok {
		return v
	}
	return s.def
}

func (s *fakeSink) Transform(slot int, translate, skew float64) {
	s.translate[slot] = translate
	s.skew[slot] = skew
}

func (s *fakeSink) Blur(slot int, amount float64) {
	s.blur[slot] = amount
}

func (s *fakeSink) Rail(r *Rail) {
	s.rail = r
	s.railCalls++
}

// items builds n items keyed "<prefix>0".."<prefix>n-1".
func items(prefix string, n int) []pool.Item {
	out := make([]pool.Item, n)
	for i := range out {
		key := fmt.Sprintf("%s%d", prefix, i)
		out[i] = pool.Item{Key: key, Title: "title " + key, Description: "desc"}
	}
	return out
}

func testOptions() Options {
	cfg := config.Default()
	return Options{
		Physics:    cfg.Physics,
		CloseDelay: cfg.Overlay.CloseDelay,
		Rand:       rand.New(rand.NewSource(42)),
		Now:        t0,
	}
}

// newTestEngine builds an engine with n columns of per items each, extent
// 340 and gap 20, every speed multiplier pinned to 1.
func newTestEngine(t *testing.T, n, per int) (*Engine, *fakeSink) {
	t.Helper()
	sink := newFakeSink(340, 20)
	cols := make([][]pool.Item, n)
	for i := range cols {
		cols[i] = items(fmt.Sprintf("c%d_", i), per)
	}
	e, err := New(sink, cols, testOptions())
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	for _, c := range e.cols {
		c.SpeedMultiplier = 1
	}
	return e, sink
}

func velocities(e *Engine) []float64 {
	out := make([]float64, len(e.cols))
	for i, c := range e.cols {
		out[i] = c.VelocityRaw
	}
	return out
}

func near(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
