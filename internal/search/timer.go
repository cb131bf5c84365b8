package search

import (
	"sync"
	"time"
)

// Timer is a cancellable single-shot timer with last-write-wins scheduling:
// Schedule cancels any pending callback before arming the new one, so only
// the most recent schedule within the delay window fires. Cancel is
// idempotent and safe to call after the callback has fired.
type Timer struct {
	mu sync.Mutex
	t  *time.Timer
}

func NewTimer() *Timer {
	return &Timer{}
}

// Schedule arms fn to run after d, replacing any pending callback.
func (t *Timer) Schedule(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.t != nil {
		t.t.Stop()
	}
	t.t = time.AfterFunc(d, fn)
}

// Cancel clears any pending callback. A callback that has already started
// running is not interrupted.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
}
