package input

import (
	"fmt"
	"sort"
	"strings"
)

// KeyMap maps normalized raw key identifiers to logical actions.
type KeyMap map[string]Action

// DefaultBindings returns the stock layout: WASD for pitch and yaw, Q/E for
// roll, Shift/Control for throttle and Space for the afterburner.
func DefaultBindings() map[string][]string {
	return map[string][]string{
		PitchUp.String():      {"w"},
		PitchDown.String():    {"s"},
		YawLeft.String():      {"a"},
		YawRight.String():     {"d"},
		RollLeft.String():     {"q"},
		RollRight.String():    {"e"},
		ThrottleUp.String():   {"shift"},
		ThrottleDown.String(): {"control"},
		Afterburner.String():  {" "},
	}
}

// DefaultKeyMap returns the KeyMap for DefaultBindings.
func DefaultKeyMap() KeyMap {
	km, err := NewKeyMap(DefaultBindings())
	if err != nil {
		panic(err)
	}
	return km
}

// NewKeyMap builds a KeyMap from action-name → keys bindings, as found in
// the controls section of the configuration.
func NewKeyMap(bindings map[string][]string) (KeyMap, error) {
	km := make(KeyMap)

	// Sort for deterministic conflict reporting.
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		for _, key := range bindings[name] {
			k := Normalize(key)
			if k == "" {
				return nil, fmt.Errorf("empty key bound to %s", action)
			}
			if prev, ok := km[k]; ok && prev != action {
				return nil, fmt.Errorf("key %q bound to both %s and %s", k, prev, action)
			}
			km[k] = action
		}
	}
	return km, nil
}

// Normalize lower-cases a raw key identifier. A lone space is a valid key
// identifier and is preserved.
func Normalize(key string) string {
	if key == " " {
		return key
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// Keys returns the keys bound to an action, sorted.
func (km KeyMap) Keys(a Action) []string {
	var keys []string
	for k, v := range km {
		if v == a {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
