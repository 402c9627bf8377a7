package engine

import "testing"

func keys(s *Sequence) []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = s.At(i).Key
	}
	return out
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSequenceRotate(t *testing.T) {
	s := NewSequence(items("k", 4))

	s.RotateForward()
	if got := keys(s); !equalKeys(got, []string{"k1", "k2", "k3", "k0"}) {
		t.Fatalf("after forward rotate got %v", got)
	}
	s.RotateBackward()
	s.RotateBackward()
	if got := keys(s); !equalKeys(got, []string{"k3", "k0", "k1", "k2"}) {
		t.Fatalf("after two backward rotates got %v", got)
	}

	first, _ := s.First()
	last, _ := s.Last()
	if first.Key != "k3" || last.Key != "k2" {
		t.Fatalf("unexpected boundary items %q/%q", first.Key, last.Key)
	}
	if s.Index("k1") != 2 || s.Index("zz") != -1 {
		t.Fatalf("unexpected Index results")
	}
}

func TestSequenceEmpty(t *testing.T) {
	s := NewSequence(nil)
	s.RotateForward()
	s.RotateBackward()
	if _, ok := s.First(); ok {
		t.Fatal("expected no first item")
	}
	if _, ok := s.Last(); ok {
		t.Fatal("expected no last item")
	}
	if len(s.Items()) != 0 {
		t.Fatal("expected no items")
	}
}

func TestSequenceCopiesInput(t *testing.T) {
	src := items("k", 2)
	s := NewSequence(src)
	src[0].Key = "mutated"
	if s.At(0).Key != "k0" {
		t.Fatal("sequence should not alias its input")
	}
}
