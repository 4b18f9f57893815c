package structure

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(3)
	w = w.Push("a", "b")
	w = w.Push("", "c", "d")

	if diff := cmp.Diff([]string{"b", "c", "d"}, w.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowIsAValue(t *testing.T) {
	base := NewWindow(4).Push("a", "b")
	left := base.Push("left")
	right := base.Push("right")

	if diff := cmp.Diff([]string{"a", "b"}, base.Entries()); diff != "" {
		t.Errorf("base changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "left"}, left.Entries()); diff != "" {
		t.Errorf("left mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "right"}, right.Entries()); diff != "" {
		t.Errorf("right mismatch (-want +got):\n%s", diff)
	}

	entries := left.Entries()
	entries[0] = "mutated"
	if left.Entries()[0] != "a" {
		t.Error("expected Entries to return a copy")
	}
}

func TestNewWindowClampsCapacity(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-5, 1},
		{3, 3},
		{8, 8},
		{50, MaxWindow},
	}
	for _, tt := range tests {
		if got := NewWindow(tt.in).Cap(); got != tt.want {
			t.Errorf("NewWindow(%d): expected cap %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestEmptyWindowEntriesNotNil(t *testing.T) {
	if NewWindow(8).Entries() == nil {
		t.Fatal("expected non-nil entries")
	}
}
