package input

import (
	"sync"
	"time"
)

// Latch adapts hosts that report key presses but never key releases, such
// as terminals. Each press holds the key for a fixed window; repeated presses
// from keyboard auto-repeat extend it. Expire releases keys whose window has
// passed.
type Latch struct {
	tracker *Tracker
	hold    time.Duration

	mu        sync.Mutex
	deadlines map[string]time.Time
}

// NewLatch creates a latch feeding the given tracker.
func NewLatch(tracker *Tracker, hold time.Duration) *Latch {
	return &Latch{
		tracker:   tracker,
		hold:      hold,
		deadlines: make(map[string]time.Time),
	}
}

// Press records a key press at now and reports whether the host should
// suppress default handling of the key.
func (l *Latch) Press(key string, now time.Time) bool {
	k := Normalize(key)

	l.mu.Lock()
	l.deadlines[k] = now.Add(l.hold)
	l.mu.Unlock()

	return l.tracker.OnKeyDown(k)
}

// Expire releases every latched key whose hold window ended before now and
// returns how many were released.
func (l *Latch) Expire(now time.Time) int {
	l.mu.Lock()
	var expired []string
	for k, deadline := range l.deadlines {
		if now.After(deadline) {
			expired = append(expired, k)
			delete(l.deadlines, k)
		}
	}
	l.mu.Unlock()

	for _, k := range expired {
		l.tracker.OnKeyUp(k)
	}
	return len(expired)
}

// ReleaseAll releases every latched key, e.g. when the host loses focus.
func (l *Latch) ReleaseAll() {
	l.mu.Lock()
	keys := make([]string, 0, len(l.deadlines))
	for k := range l.deadlines {
		keys = append(keys, k)
	}
	clear(l.deadlines)
	l.mu.Unlock()

	for _, k := range keys {
		l.tracker.OnKeyUp(k)
	}
}
