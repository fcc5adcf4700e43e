package main

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unklstewy/hornet/pkg/config"
	"github.com/unklstewy/hornet/pkg/sim"
)

func testModel(t *testing.T) model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Assets.Dir = ""
	cfg.Simulation.Seed = 1
	m, err := newModel(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Failed to create model: %v", err)
	}
	return m
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []string
	}{
		{"letter", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, []string{"w"}},
		{"upper case", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}}, []string{"q", "shift"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []string{" "}},
		{"plus", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, []string{"shift"}},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, []string{"control"}},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyNames(tt.msg); !slices.Equal(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestModelLoadsAndFlies(t *testing.T) {
	m := testModel(t)

	if !strings.Contains(m.View(), "Loading F-18 Super Hornet") {
		t.Errorf("Expected loading text, got %q", m.View())
	}

	// Polling before the assets load keeps the session loading
	next, cmd := m.Update(pollMsg{})
	m = next.(model)
	if m.session.State() != sim.Loading {
		t.Fatalf("Expected loading before assets, got %s", m.session.State())
	}
	if cmd == nil {
		t.Error("Expected another poll to be scheduled")
	}

	next, _ = m.Update(m.loadAssets())
	m = next.(model)
	next, _ = m.Update(pollMsg{})
	m = next.(model)
	if m.session.State() != sim.Playing {
		t.Fatalf("Expected playing after assets, got %s", m.session.State())
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 22})
	m = next.(model)
	if b := m.raster.Frame().Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Errorf("Expected 40x40 raster, got %dx%d", b.Dx(), b.Dy())
	}

	// Hold throttle up across a few frames
	now := time.Now()
	for i := 0; i < 5; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
		m = next.(model)
		next, _ = m.Update(frameMsg(now.Add(time.Duration(i) * 16 * time.Millisecond)))
		m = next.(model)
	}
	if got := m.session.Frames(); got != 5 {
		t.Errorf("Expected 5 frames, got %d", got)
	}
	if ac := m.session.Aircraft(); ac.Throttle <= 0.3 {
		t.Errorf("Expected throttle above its initial 0.3, got %f", ac.Throttle)
	}
	if !strings.Contains(m.View(), "ALT") {
		t.Error("Expected instruments in the view")
	}
}

func TestModelQuits(t *testing.T) {
	m := testModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
}
