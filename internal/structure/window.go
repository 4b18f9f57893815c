package structure

import "slices"

// MaxWindow is the largest context window the extractor accepts.
const MaxWindow = 8

// Window is a bounded FIFO of recent text fragments. It is a value: Push
// returns a new window and never writes to the receiver's backing array.
type Window struct {
	entries  []string
	capacity int
}

// NewWindow returns an empty window. capacity is clamped to 1..MaxWindow.
func NewWindow(capacity int) Window {
	return Window{capacity: min(max(capacity, 1), MaxWindow)}
}

// Push appends the non-empty fragments and evicts the oldest entries
// beyond capacity.
func (w Window) Push(fragments ...string) Window {
	next := slices.Clip(slices.Clone(w.entries))
	for _, f := range fragments {
		if f != "" {
			next = append(next, f)
		}
	}
	if over := len(next) - w.capacity; over > 0 {
		next = slices.Clone(next[over:])
	}
	return Window{entries: next, capacity: w.capacity}
}

// Entries returns a copy of the window, oldest first. It is never nil.
func (w Window) Entries() []string {
	out := make([]string, len(w.entries))
	copy(out, w.entries)
	return out
}

func (w Window) Len() int { return len(w.entries) }

func (w Window) Cap() int { return w.capacity }
