package pool

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/olivier-w/conveyor/internal/media"
)

func sources(n int) []Source {
	out := make([]Source, n)
	for i := range out {
		out[i] = Source{Key: "k" + string(rune('a'+i)), Title: "T", Media: "clip.mp4"}
	}
	return out
}

func TestBuildAssignsMissingKeys(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p, err := Build([]Source{{Title: "one"}, {Key: "fixed", Title: "two"}, {Title: "three"}}, rng, time.Unix(1700000000, 0))
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	items := p.Items()
	if items[1].Key != "fixed" {
		t.Fatalf("expected explicit key kept, got %q", items[1].Key)
	}
	for _, it := range []Item{items[0], items[2]} {
		if !strings.HasPrefix(it.Key, "k_") {
			t.Fatalf("expected generated k_ key, got %q", it.Key)
		}
	}
	if items[0].Key == items[2].Key {
		t.Fatal("expected distinct generated keys")
	}
}

func TestBuildRejectsDuplicatesAndEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Build(nil, rng, time.Now()); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	_, err := Build([]Source{{Key: "k_abc"}, {Key: "k_abc"}}, rng, time.Now())
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestBuildClassifiesMedia(t *testing.T) {
	p, err := Build([]Source{{Key: "a", Media: "x.webm"}}, rand.New(rand.NewSource(1)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Items()[0].Kind; got != media.Video {
		t.Fatalf("expected video kind, got %v", got)
	}
}

func TestDistributeRoundRobin(t *testing.T) {
	p, err := Build(sources(10), rand.New(rand.NewSource(1)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	cols := p.Distribute(4, 0, rand.New(rand.NewSource(7)))
	if len(cols) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(cols))
	}
	want := []int{3, 3, 2, 2}
	total := 0
	seen := map[string]bool{}
	for i, c := range cols {
		if len(c) != want[i] {
			t.Fatalf("column %d: expected %d items, got %d", i, want[i], len(c))
		}
		for _, it := range c {
			if seen[it.Key] {
				t.Fatalf("key %q dealt twice without top-up", it.Key)
			}
			seen[it.Key] = true
		}
		total += len(c)
	}
	if total != 10 {
		t.Fatalf("expected all 10 items dealt, got %d", total)
	}
}

func TestDistributeSeedDeterminesOrder(t *testing.T) {
	p, err := Build(sources(12), rand.New(rand.NewSource(1)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	keys := func(cols [][]Item) []string {
		var out []string
		for _, c := range cols {
			for _, it := range c {
				out = append(out, it.Key)
			}
		}
		return out
	}
	a := keys(p.Distribute(3, 0, rand.New(rand.NewSource(9))))
	b := keys(p.Distribute(3, 0, rand.New(rand.NewSource(9))))
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Fatalf("same seed dealt differently: %v vs %v", a, b)
	}
	sorted := append([]string(nil), a...)
	sort.Strings(sorted)
	want := make([]string, 0, len(a))
	for _, it := range p.Items() {
		want = append(want, it.Key)
	}
	sort.Strings(want)
	if strings.Join(sorted, ",") != strings.Join(want, ",") {
		t.Fatalf("shuffle lost or duplicated items: %v", a)
	}
}

func TestDistributeTopsUpWithoutInColumnRepeats(t *testing.T) {
	p, err := Build(sources(5), rand.New(rand.NewSource(1)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	cols := p.Distribute(3, 4, rand.New(rand.NewSource(3)))
	for i, c := range cols {
		if len(c) != 4 {
			t.Fatalf("column %d: expected 4 items after top-up, got %d", i, len(c))
		}
		held := map[string]bool{}
		for _, it := range c {
			if held[it.Key] {
				t.Fatalf("column %d holds key %q twice", i, it.Key)
			}
			held[it.Key] = true
		}
	}
}

func TestDistributeMinCappedAtPoolSize(t *testing.T) {
	p, err := Build(sources(2), rand.New(rand.NewSource(1)), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range p.Distribute(2, 9, rand.New(rand.NewSource(3))) {
		if len(c) != 2 {
			t.Fatalf("column %d: expected 2 items, got %d", i, len(c))
		}
	}
}

func TestItemLabel(t *testing.T) {
	cases := []struct {
		it   Item
		want string
	}{
		{Item{Title: "Dune", Description: "trailer"}, "Dune — trailer"},
		{Item{Title: "Dune"}, "Dune"},
		{Item{Description: "trailer"}, "trailer"},
		{Item{}, "Untitled"},
	}
	for _, c := range cases {
		if got := c.it.Label(); got != c.want {
			t.Fatalf("Label() = %q, want %q", got, c.want)
		}
	}
}
