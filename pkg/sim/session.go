// Package sim owns a simulator session: the one-way loading to playing
// state machine and the per-frame sequence of input, physics, render and
// HUD.
package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/canvas"
	"github.com/unklstewy/hornet/pkg/environment"
	"github.com/unklstewy/hornet/pkg/flight"
	"github.com/unklstewy/hornet/pkg/hud"
	"github.com/unklstewy/hornet/pkg/input"
	"github.com/unklstewy/hornet/pkg/scene"
)

// Default asset polling schedule
const (
	DefaultLoadDelay    = 500 * time.Millisecond
	DefaultPollInterval = 100 * time.Millisecond
)

// ErrLoading is returned by Start while assets are still loading.
var ErrLoading = errors.New("session is still loading")

// State is the session's lifecycle state.
type State int32

const (
	Loading State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// AssetSource reports loading progress and supplies textures.
type AssetSource interface {
	Progress() (loaded, total int)
	Textures() scene.Textures
}

// SessionConfig holds the session's parameters and collaborators.
type SessionConfig struct {
	// Width and Height are the canvas size the aircraft wraps within
	Width, Height float64

	Profile flight.Profile

	// Seed makes cloud generation reproducible
	Seed uint64

	Input    *input.Tracker
	Assets   AssetSource
	Surface  canvas.Surface
	Display  hud.Display
	Progress hud.ProgressSink
	Logger   *logging.Logger
}

// Session is one run of the simulator. Frame and Step must be called from
// a single goroutine; key events may arrive on any goroutine through the
// input tracker.
type Session struct {
	cfg    SessionConfig
	bounds flight.Bounds
	log    *logging.Logger

	aircraft flight.Aircraft
	clouds   []environment.Cloud
	forces   flight.Forces

	state     atomic.Int32
	scheduler Scheduler
	lastTS    time.Duration
	haveTS    bool
	frames    uint64
}

// NewSession creates the aircraft in its initial state and generates the
// clouds. A nil Input gets a tracker with the default key map.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Input == nil {
		cfg.Input = input.NewTracker(nil)
	}
	if cfg.Profile == (flight.Profile{}) {
		cfg.Profile = flight.SuperHornet()
	}

	b := flight.Bounds{Width: cfg.Width, Height: cfg.Height}
	s := &Session{
		cfg:      cfg,
		bounds:   b,
		log:      cfg.Logger,
		aircraft: flight.NewAircraft(cfg.Profile, b),
		clouds:   environment.Generate(environment.NewRand(cfg.Seed), cfg.Width, cfg.Height),
	}
	s.log.Info("Session created",
		"width", cfg.Width, "height", cfg.Height,
		"aircraft", cfg.Profile.Name, "seed", cfg.Seed)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// PollAssets checks asset readiness once. While loading it shows progress,
// and it switches to playing, clearing the progress text, once every asset
// is ready. A session without an asset source has nothing to wait for. It
// reports whether the session is playing.
func (s *Session) PollAssets() bool {
	if s.State() == Playing {
		return true
	}

	loaded, total := 0, 0
	if s.cfg.Assets != nil {
		loaded, total = s.cfg.Assets.Progress()
	}
	if loaded >= total {
		if s.state.CompareAndSwap(int32(Loading), int32(Playing)) {
			s.log.Info("Assets ready, starting", "loaded", loaded)
			s.showProgress("")
		}
		return true
	}

	s.showProgress(hud.LoadingMessage(loaded, total))
	return false
}

func (s *Session) showProgress(text string) {
	if s.cfg.Progress != nil {
		s.cfg.Progress.ShowProgress(text)
	}
}

// WaitForAssets polls after delay and then every interval until the
// session is playing or ctx is done.
func (s *Session) WaitForAssets(ctx context.Context, delay, interval time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
		if s.PollAssets() {
			return nil
		}
		timer.Reset(interval)
	}
}

// Start requests the first frame from sched. The first frame advances
// with dt = 0; each later frame advances by the time since the previous.
func (s *Session) Start(sched Scheduler) error {
	if s.State() != Playing {
		return ErrLoading
	}
	s.scheduler = sched
	s.haveTS = false
	sched.RequestFrame(s.Frame)
	return nil
}

// Run waits for assets on the default schedule and then starts.
func (s *Session) Run(ctx context.Context, sched Scheduler) error {
	if err := s.WaitForAssets(ctx, DefaultLoadDelay, DefaultPollInterval); err != nil {
		return err
	}
	return s.Start(sched)
}

// Frame is the FrameFunc handed to the scheduler. It does nothing unless
// the session is playing.
func (s *Session) Frame(ts time.Duration) {
	if s.State() != Playing {
		return
	}

	dt := 0.0
	if s.haveTS && ts > s.lastTS {
		dt = (ts - s.lastTS).Seconds()
	}
	s.lastTS, s.haveTS = ts, true

	s.Step(dt)

	if s.scheduler != nil && s.State() == Playing {
		s.scheduler.RequestFrame(s.Frame)
	}
}

// Step runs one frame of dt seconds: input read, physics, render and HUD.
func (s *Session) Step(dt float64) hud.Readout {
	held := s.cfg.Input.Held()
	s.forces = flight.Step(&s.aircraft, s.cfg.Profile, s.bounds, held, dt)

	if s.cfg.Surface != nil {
		var tex scene.Textures
		if s.cfg.Assets != nil {
			tex = s.cfg.Assets.Textures()
		}
		scene.Render(s.cfg.Surface, s.aircraft, s.clouds, tex)
	}

	s.frames++
	r := hud.Report(s.cfg.Display, s.aircraft)
	if s.frames%600 == 0 {
		s.log.Debug("Frame", "n", s.frames, "readout", r.String(), "thrust", s.forces.Thrust)
	}
	return r
}

// Aircraft returns a copy of the aircraft state.
func (s *Session) Aircraft() flight.Aircraft {
	return s.aircraft
}

// Clouds returns the session's clouds. The slice is owned by the session.
func (s *Session) Clouds() []environment.Cloud {
	return s.clouds
}

// Forces returns the forces computed in the last frame.
func (s *Session) Forces() flight.Forces {
	return s.forces
}

// Input returns the session's input tracker.
func (s *Session) Input() *input.Tracker {
	return s.cfg.Input
}

// Frames returns how many frames have been stepped.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Profile returns the airframe being flown.
func (s *Session) Profile() flight.Profile {
	return s.cfg.Profile
}
