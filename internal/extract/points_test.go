package extract

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPointSet_PreservesInsertionOrder(t *testing.T) {
	s := NewPointSet()
	want := []Point{{X: 3, Y: 1}, {X: 0, Y: 0}, {X: 2, Y: 5}}
	for _, p := range want {
		if err := s.Add(p); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	if s.Len() != len(want) {
		t.Fatalf("Len: got %d, want %d", s.Len(), len(want))
	}
	if diff := cmp.Diff(want, s.Points()); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	for i, p := range want {
		if got := s.Get(i); got != p {
			t.Errorf("Get(%d): got %v, want %v", i, got, p)
		}
	}
}

func TestPointSet_Reset(t *testing.T) {
	s := NewPointSet()
	if err := s.Add(Point{X: 1, Y: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len after Reset: got %d, want 0", s.Len())
	}
}

func TestBoundedPointSet_Exhaustion(t *testing.T) {
	s := NewBoundedPointSet(2)
	for i := 0; i < 2; i++ {
		if err := s.Add(Point{X: i}); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	if err := s.Add(Point{X: 2}); !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("got %v, want ErrResourceExhausted", err)
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}

	// Reset frees the budget again.
	s.Reset()
	if err := s.Add(Point{X: 9}); err != nil {
		t.Errorf("Add after Reset: %v", err)
	}
}
