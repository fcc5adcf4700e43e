package main

import (
	"slices"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/unklstewy/hornet/pkg/input"
)

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []string
	}{
		{"letter", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), []string{"w"}},
		{"upper case presses shift", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), []string{"w", "shift"}},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), []string{" "}},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone), []string{"shift"}},
		{"minus", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), []string{"control"}},
		{"page up", tcell.NewEventKey(tcell.KeyPgUp, 0, tcell.ModNone), []string{"shift"}},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), []string{"control"}},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), []string{"arrowleft"}},
		{"unmapped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyNames(tt.ev)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestControlsText(t *testing.T) {
	text := controlsText(input.DefaultKeyMap())
	for _, want := range []string{"pitch_up", "afterburner", "space", "shift", "ESC"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected controls text to mention %q", want)
		}
	}
}
