package policy

import (
	"sync"
	"time"
)

// slidingWindow counts events per key inside a rolling time window.
// Allow and Record are deliberately separate: a dispatch is checked
// before it runs and counted only after it actually ran.
type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	events map[string][]time.Time
	now    func() time.Time
}

func newSlidingWindow(window time.Duration, max int) *slidingWindow {
	return &slidingWindow{
		window: window,
		max:    max,
		events: make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether another event for key fits in the current window.
func (w *slidingWindow) Allow(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.prune(key)) < w.max
}

// Record counts an event for key.
func (w *slidingWindow) Record(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.events[key] = append(w.prune(key), w.now())
}

// Count returns the number of events for key in the current window.
func (w *slidingWindow) Count(key string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.prune(key))
}

// prune drops events older than the window. Caller holds the lock.
func (w *slidingWindow) prune(key string) []time.Time {
	cutoff := w.now().Add(-w.window)
	kept := w.events[key][:0]
	for _, ts := range w.events[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	w.events[key] = kept
	return kept
}
