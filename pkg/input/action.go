// Package input tracks keyboard state for the simulator.
//
// Raw key identifiers delivered by a host are lower-cased and recorded as
// pressed or released. A KeyMap translates them into a fixed set of logical
// control actions at the boundary, so the flight model never deals with
// key strings.
package input

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned when a binding names an action that does not exist.
var ErrUnknownAction = errors.New("unknown control action")

// Action is a logical flight control.
type Action uint8

const (
	PitchUp Action = iota
	PitchDown
	YawLeft
	YawRight
	RollLeft
	RollRight
	ThrottleUp
	ThrottleDown
	Afterburner

	numActions
)

var actionNames = [numActions]string{
	PitchUp:      "pitch_up",
	PitchDown:    "pitch_down",
	YawLeft:      "yaw_left",
	YawRight:     "yaw_right",
	RollLeft:     "roll_left",
	RollRight:    "roll_right",
	ThrottleUp:   "throttle_up",
	ThrottleDown: "throttle_down",
	Afterburner:  "afterburner",
}

// String returns the configuration name of the action.
func (a Action) String() string {
	if a >= numActions {
		return fmt.Sprintf("action(%d)", uint8(a))
	}
	return actionNames[a]
}

// Actions returns every logical action in declaration order.
func Actions() []Action {
	all := make([]Action, 0, numActions)
	for a := Action(0); a < numActions; a++ {
		all = append(all, a)
	}
	return all
}

// ParseAction converts a configuration name such as "pitch_up" into an Action.
func ParseAction(name string) (Action, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for a, s := range actionNames {
		if s == n {
			return Action(a), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Set is a bit set of held actions, sampled once per frame.
type Set uint16

// Has reports whether a is in the set.
func (s Set) Has(a Action) bool {
	return s&(1<<a) != 0
}

// With returns the set with a added.
func (s Set) With(a Action) Set {
	return s | 1<<a
}

// Of builds a Set from a list of actions.
func Of(actions ...Action) Set {
	var s Set
	for _, a := range actions {
		s = s.With(a)
	}
	return s
}

// Any reports whether at least one of the given actions is held.
func (s Set) Any(actions ...Action) bool {
	for _, a := range actions {
		if s.Has(a) {
			return true
		}
	}
	return false
}
