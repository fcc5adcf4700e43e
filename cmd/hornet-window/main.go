package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/assets"
	"github.com/unklstewy/hornet/pkg/canvas"
	"github.com/unklstewy/hornet/pkg/config"
	"github.com/unklstewy/hornet/pkg/hud"
	"github.com/unklstewy/hornet/pkg/input"
	"github.com/unklstewy/hornet/pkg/sim"
)

// Game hosts a session in a window. Ebitengine calls Update at the target
// rate for input and loading, and Draw once per display refresh, which is
// where frames run.
type Game struct {
	cfg *config.Config
	log *logging.Logger

	session *sim.Session
	library *assets.Library
	gauges  *hud.Gauges
	tracker *input.Tracker
	raster  *canvas.Raster
	sched   *sim.ManualScheduler
	frame   *ebiten.Image

	start    time.Time
	lastPoll time.Time
	keys     []ebiten.Key
}

// NewGame creates the session and starts loading assets.
func NewGame(ctx context.Context, cfg *config.Config, lg *logging.Logger) (*Game, error) {
	km, err := cfg.Controls.KeyMap()
	if err != nil {
		return nil, err
	}

	d := cfg.Display
	g := &Game{
		cfg:     cfg,
		log:     lg,
		library: assets.NewLibrary(),
		gauges:  &hud.Gauges{},
		tracker: input.NewTracker(km),
		raster:  canvas.NewRaster(d.Width, d.Height),
		sched:   &sim.ManualScheduler{},
		frame:   ebiten.NewImage(d.Width, d.Height),
		start:   time.Now(),
	}
	g.session = sim.NewSession(sim.SessionConfig{
		Width:    float64(d.Width),
		Height:   float64(d.Height),
		Profile:  cfg.Aircraft,
		Seed:     cfg.Simulation.ResolveSeed(g.start),
		Input:    g.tracker,
		Assets:   g.library,
		Surface:  g.raster,
		Display:  g.gauges,
		Progress: g.gauges,
		Logger:   lg,
	})
	g.gauges.ShowProgress(hud.LoadingMessage(g.library.Progress()))

	go func() {
		if err := assets.Load(ctx, g.library, cfg.Assets.LoadConfig(), lg); err != nil {
			lg.Warn("Asset loading incomplete", "error", err)
		}
	}()

	return g, nil
}

// Update handles input and polls loading assets
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.keys = inpututil.AppendJustPressedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.tracker.OnKeyDown(keyName(k))
	}
	g.keys = inpututil.AppendJustReleasedKeys(g.keys[:0])
	for _, k := range g.keys {
		g.tracker.OnKeyUp(keyName(k))
	}

	now := time.Now()
	if g.session.State() == sim.Loading {
		sc := g.cfg.Simulation
		if now.Sub(g.start) < sc.LoadDelay() || now.Sub(g.lastPoll) < sc.PollInterval() {
			return nil
		}
		g.lastPoll = now
		if !g.session.PollAssets() {
			return nil
		}
		if err := g.session.Start(g.sched); err != nil {
			return err
		}
	}
	return nil
}

// advance runs the requested frame, if any, at now.
func (g *Game) advance(now time.Time) bool {
	if g.session.State() != sim.Playing {
		return false
	}
	return g.sched.Fire(now.Sub(g.start))
}

// Draw runs the frame for this refresh, uploads it and prints the
// instruments over it
func (g *Game) Draw(screen *ebiten.Image) {
	g.advance(time.Now())

	if text := g.gauges.Progress(); text != "" {
		w, h := g.cfg.Display.Width, g.cfg.Display.Height
		ebitenutil.DebugPrintAt(screen, text, w/2-len(text)*3, h/2)
		return
	}

	g.frame.WritePixels(g.raster.Frame().Pix)
	screen.DrawImage(g.frame, nil)

	for i, l := range g.gauges.Readout().Lines() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-4s %6d %s", l.Label, l.Value, l.Unit), 10, 10+i*16)
	}
	if ac := g.session.Aircraft(); ac.Afterburner {
		ebitenutil.DebugPrintAt(screen, "AFTERBURNER", 10, 10+4*16)
	}
}

// Layout fixes the logical screen at the canvas size; the window scales it
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Display.Width, g.cfg.Display.Height
}

// keyName converts an Ebitengine key into the tracker's identifiers,
// folding left and right modifiers together.
func keyName(k ebiten.Key) string {
	switch k {
	case ebiten.KeySpace:
		return " "
	case ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyShift:
		return "shift"
	case ebiten.KeyControlLeft, ebiten.KeyControlRight, ebiten.KeyControl:
		return "control"
	case ebiten.KeyArrowUp:
		return "arrowup"
	case ebiten.KeyArrowDown:
		return "arrowdown"
	case ebiten.KeyArrowLeft:
		return "arrowleft"
	case ebiten.KeyArrowRight:
		return "arrowright"
	}
	return strings.TrimPrefix(strings.ToLower(k.String()), "digit")
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	lg, err := logging.New(cfg.Logging.LoggerConfig())
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer lg.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game, err := NewGame(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	ebiten.SetWindowSize(cfg.Display.Width, cfg.Display.Height)
	ebiten.SetWindowTitle("F-18 Super Hornet")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(cfg.Display.TargetFPS + 0.5))

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		lg.Errorf("Ebitengine error: %v", err)
		log.Fatalf("Ebitengine error: %v", err)
	}
	lg.Info("Window closed")
}
