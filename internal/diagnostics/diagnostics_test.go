package diagnostics

import (
	"testing"

	"github.com/routekit/routetpl/internal/position"
)

// TestDedupe tests (message, span) de-duplication with first-seen
// ordering.
func TestDedupe(t *testing.T) {
	a := New("mismatched", position.NewSpan(4, 0))
	b := New("mismatched", position.NewSpan(4, 0))
	c := New("mismatched", position.NewSpan(2, 0)) // same message, other span
	d := New("duplicate name", position.NewSpan(4, 0))

	got := Dedupe([]Diagnostic{a, c, b, d, a})
	want := []Diagnostic{a, c, d}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestDedupeSmall tests that trivial inputs pass through.
func TestDedupeSmall(t *testing.T) {
	if got := Dedupe(nil); got != nil {
		t.Errorf("Dedupe(nil) = %v", got)
	}
	one := []Diagnostic{New("x", position.NewSpan(0, 1))}
	if got := Dedupe(one); len(got) != 1 {
		t.Errorf("Dedupe(one) = %v", got)
	}
}
