// Package hud reports the aircraft's instrument readouts and the asset
// loading progress to whatever display the host provides.
package hud

import (
	"fmt"
	"math"
	"sync"

	"github.com/unklstewy/hornet/pkg/flight"
)

// Readout is the four HUD values, each rounded to the nearest integer.
type Readout struct {
	Altitude int // feet
	Speed    int // knots
	Heading  int // degrees
	Fuel     int // percent
}

// Display receives a readout once per frame.
type Display interface {
	ShowReadout(r Readout)
}

// ProgressSink receives loading progress text while assets load.
type ProgressSink interface {
	ShowProgress(text string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(Readout)

func (f DisplayFunc) ShowReadout(r Readout) { f(r) }

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(string)

func (f ProgressFunc) ShowProgress(text string) { f(text) }

// Round rounds half up, so 0.5 becomes 1 and -0.5 becomes 0.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ReadoutOf samples the aircraft's instruments. Heading may round up to 360.
func ReadoutOf(ac flight.Aircraft) Readout {
	return Readout{
		Altitude: Round(ac.Z),
		Speed:    Round(ac.Speed),
		Heading:  Round(ac.Heading),
		Fuel:     Round(ac.Fuel),
	}
}

// Report publishes the aircraft's readout to d and returns it.
func Report(d Display, ac flight.Aircraft) Readout {
	r := ReadoutOf(ac)
	if d != nil {
		d.ShowReadout(r)
	}
	return r
}

// LoadingMessage is the progress text shown while assets load.
func LoadingMessage(loaded, total int) string {
	return fmt.Sprintf("Loading F-18 Super Hornet... Assets: %d/%d", loaded, total)
}

// Line is one labelled HUD field, for hosts that lay the values out themselves.
type Line struct {
	Label string
	Value int
	Unit  string
}

// Lines returns the readout as labelled fields in display order.
func (r Readout) Lines() []Line {
	return []Line{
		{"ALT", r.Altitude, "ft"},
		{"SPD", r.Speed, "kt"},
		{"HDG", r.Heading, "°"},
		{"FUEL", r.Fuel, "%"},
	}
}

func (r Readout) String() string {
	return fmt.Sprintf("ALT %d ft  SPD %d kt  HDG %d°  FUEL %d%%", r.Altitude, r.Speed, r.Heading, r.Fuel)
}

// Gauges is a Display and ProgressSink that keeps the latest values for
// hosts that render on their own schedule. It is safe for concurrent use.
type Gauges struct {
	mu       sync.RWMutex
	readout  Readout
	progress string
	frames   uint64
}

var (
	_ Display      = (*Gauges)(nil)
	_ ProgressSink = (*Gauges)(nil)
)

func (g *Gauges) ShowReadout(r Readout) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.readout = r
	g.frames++
}

func (g *Gauges) ShowProgress(text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.progress = text
}

// Readout returns the last readout shown.
func (g *Gauges) Readout() Readout {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.readout
}

// Progress returns the last progress text shown.
func (g *Gauges) Progress() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.progress
}

// Frames returns how many readouts have been shown.
func (g *Gauges) Frames() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.frames
}
