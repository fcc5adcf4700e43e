package main

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// keyNames translates a terminal key event into the key identifiers the
// input tracker understands. Terminals never report Shift or Control on
// their own, so +/PgUp and -/PgDn stand in for them, and an upper-case
// letter presses Shift as well as the letter.
func keyNames(ev *tcell.EventKey) []string {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case '+', '=':
			return []string{"shift"}
		case '-', '_':
			return []string{"control"}
		}
		if unicode.IsUpper(r) {
			return []string{string(unicode.ToLower(r)), "shift"}
		}
		return []string{string(r)}
	case tcell.KeyPgUp:
		return []string{"shift"}
	case tcell.KeyPgDn:
		return []string{"control"}
	case tcell.KeyUp:
		return []string{"arrowup"}
	case tcell.KeyDown:
		return []string{"arrowdown"}
	case tcell.KeyLeft:
		return []string{"arrowleft"}
	case tcell.KeyRight:
		return []string{"arrowright"}
	}
	return nil
}
