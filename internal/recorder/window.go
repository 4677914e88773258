package recorder

import "TempMon/internal/model"

// Window is a fixed-capacity sliding window over the most recent samples.
// Pushing beyond capacity evicts the oldest entry in O(1).
type Window struct {
	buf   []model.Sample
	head  int
	count int
}

// NewWindow creates a window holding at most capacity samples.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = 100
	}
	return &Window{buf: make([]model.Sample, capacity)}
}

// Push appends s, evicting the oldest sample when the window is full.
func (w *Window) Push(s model.Sample) {
	i := (w.head + w.count) % len(w.buf)
	w.buf[i] = s
	if w.count < len(w.buf) {
		w.count++
	} else {
		w.head = (w.head + 1) % len(w.buf)
	}
}

// Len returns the number of samples currently held.
func (w *Window) Len() int { return w.count }

// Cap returns the window capacity.
func (w *Window) Cap() int { return len(w.buf) }

// Reset empties the window.
func (w *Window) Reset() {
	w.head = 0
	w.count = 0
}

// Samples returns the window contents in arrival order.
func (w *Window) Samples() []model.Sample {
	out := make([]model.Sample, w.count)
	for i := 0; i < w.count; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}
