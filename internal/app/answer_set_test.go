package app

import (
	"reflect"
	"testing"

	"quizdesk-service/internal/domain"
)

func TestToggleInsertIsIdempotent(t *testing.T) {
	set := NewAnswerSet(4)

	if err := set.Toggle(2, true); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := set.Toggle(2, true); err != nil {
		t.Fatalf("toggle again: %v", err)
	}
	if got := set.Normalized(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestToggleRemoveAbsentIsNoop(t *testing.T) {
	set := NewAnswerSet(4)

	if err := set.Toggle(1, false); err != nil {
		t.Fatalf("toggle off absent: %v", err)
	}
	if got := set.Normalized(); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

func TestNormalizedSortedNoDuplicates(t *testing.T) {
	set := NewAnswerSet(5)

	// Arbitrary toggle sequence, including re-selects and deselects.
	steps := []struct {
		idx      int
		selected bool
	}{
		{3, true}, {0, true}, {3, true}, {4, true}, {4, false}, {1, true}, {0, true},
	}
	for _, s := range steps {
		if err := set.Toggle(s.idx, s.selected); err != nil {
			t.Fatalf("toggle(%d, %v): %v", s.idx, s.selected, err)
		}
	}

	got := set.Normalized()
	if !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Fatalf("expected [0 1 3], got %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("not strictly ascending: %v", got)
		}
	}
}

func TestToggleOutOfRange(t *testing.T) {
	set := NewAnswerSet(3)

	for _, idx := range []int{-1, 3, 100} {
		if err := set.Toggle(idx, true); err != domain.ErrInvalidIndex {
			t.Fatalf("expected ErrInvalidIndex for %d, got %v", idx, err)
		}
	}
}
