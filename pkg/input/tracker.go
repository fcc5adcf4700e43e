package input

import (
	"sync"
	"sync/atomic"
)

// Tracker records the pressed state of every key a host has reported.
//
// Host key events and the frame loop may run in different goroutines. Each
// key has its own atomic flag, so a frame always sees whole writes without
// any locking on the read path. Entries are never removed, only toggled.
type Tracker struct {
	keymap KeyMap

	// keys maps normalized key identifier → *atomic.Bool
	keys sync.Map
}

// NewTracker creates an empty tracker using the given key map.
func NewTracker(km KeyMap) *Tracker {
	if km == nil {
		km = DefaultKeyMap()
	}
	return &Tracker{keymap: km}
}

func (t *Tracker) flag(key string) *atomic.Bool {
	if v, ok := t.keys.Load(key); ok {
		return v.(*atomic.Bool)
	}
	v, _ := t.keys.LoadOrStore(key, new(atomic.Bool))
	return v.(*atomic.Bool)
}

// OnKeyDown marks a key as pressed. It returns true when the key is bound to
// a control, in which case the host should suppress its default handling.
func (t *Tracker) OnKeyDown(key string) (suppress bool) {
	k := Normalize(key)
	t.flag(k).Store(true)
	_, bound := t.keymap[k]
	return bound
}

// OnKeyUp marks a key as released.
func (t *Tracker) OnKeyUp(key string) {
	t.flag(Normalize(key)).Store(false)
}

// Held returns the logical actions whose keys are currently held.
func (t *Tracker) Held() Set {
	var s Set
	for key, action := range t.keymap {
		if v, ok := t.keys.Load(key); ok && v.(*atomic.Bool).Load() {
			s = s.With(action)
		}
	}
	return s
}

// KeyMap returns the tracker's key map.
func (t *Tracker) KeyMap() KeyMap {
	return t.keymap
}
