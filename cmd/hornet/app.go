package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/assets"
	"github.com/unklstewy/hornet/pkg/canvas"
	"github.com/unklstewy/hornet/pkg/config"
	"github.com/unklstewy/hornet/pkg/hud"
	"github.com/unklstewy/hornet/pkg/input"
	"github.com/unklstewy/hornet/pkg/sim"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Config     *config.Config
	ConfigPath string
	Logger     *logging.Logger
}

// App represents the terminal host
type App struct {
	// Configuration
	config     *config.Config
	configPath string
	log        *logging.Logger

	// Simulation
	session   *sim.Session
	library   *assets.Library
	gauges    *hud.Gauges
	tracker   *input.Tracker
	latch     *input.Latch
	raster    *canvas.Raster
	viewport  *canvas.Viewport
	scheduler *sim.PacedScheduler

	// UI components
	tviewApp   *tview.Application
	view       *CanvasView
	telemetry  *tview.TextView
	controls   *tview.TextView
	logs       *LogPanel
	rootLayout *tview.Flex

	cancel context.CancelFunc
}

// NewApp creates a new application instance
func NewApp(cfg *AppConfig) (*App, error) {
	km, err := cfg.Config.Controls.KeyMap()
	if err != nil {
		return nil, fmt.Errorf("invalid controls: %w", err)
	}

	app := &App{
		config:     cfg.Config,
		configPath: cfg.ConfigPath,
		library:    assets.NewLibrary(),
		gauges:     &hud.Gauges{},
		tracker:    input.NewTracker(km),
		raster:     canvas.NewRaster(1, 1),
		logs:       NewLogPanel(100),
	}
	app.latch = input.NewLatch(app.tracker, cfg.Config.Display.KeyHold())
	app.log = cfg.Logger.Mirror(app.logs.Record)

	d := cfg.Config.Display
	app.viewport = canvas.NewViewport(app.raster, float64(d.Width), float64(d.Height))

	app.setupUI()

	app.scheduler = sim.NewPacedScheduler(d.TargetFPS, app.dispatchFrame)
	app.session = sim.NewSession(sim.SessionConfig{
		Width:   float64(d.Width),
		Height:  float64(d.Height),
		Profile: cfg.Config.Aircraft,
		Seed:    cfg.Config.Simulation.ResolveSeed(time.Now()),
		Input:   app.tracker,
		Assets:  app.library,
		Surface: app.viewport,
		Display: app.gauges,
		Progress: hud.ProgressFunc(func(text string) {
			app.gauges.ShowProgress(text)
			app.tviewApp.QueueUpdateDraw(app.updateTelemetry)
		}),
		Logger: app.log,
	})

	// Show the loading text before the first poll
	app.gauges.ShowProgress(hud.LoadingMessage(app.library.Progress()))
	app.updateTelemetry()

	return app, nil
}

// setupUI initializes the user interface
func (a *App) setupUI() {
	a.tviewApp = tview.NewApplication()

	a.view = NewCanvasView(a)
	a.createTelemetryPanel()
	a.createControlsPanel()
	a.createLayout()

	// Setup keyboard handlers
	a.tviewApp.SetInputCapture(a.handleKeyboard)
}

// createTelemetryPanel creates the instrument panel
func (a *App) createTelemetryPanel() {
	a.telemetry = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.telemetry.SetBorder(true).SetTitle(" Instruments ")
}

// createControlsPanel lists the configured key bindings
func (a *App) createControlsPanel() {
	a.controls = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	a.controls.SetBorder(true).SetTitle(" Controls ")
	a.controls.SetText(controlsText(a.tracker.KeyMap()))
}

// controlsText renders the key bindings for the controls panel
func controlsText(km input.KeyMap) string {
	var sb strings.Builder
	sb.WriteString("[yellow]FLIGHT[-]\n")
	for _, action := range input.Actions() {
		keys := km.Keys(action)
		for i, k := range keys {
			if k == " " {
				keys[i] = "space"
			}
		}
		fmt.Fprintf(&sb, "  [white]%-10s[-] %s\n", strings.Join(keys, ","), action)
	}
	sb.WriteString("\n[gray]+/PgUp stand in for shift,\n-/PgDn for control[-]\n")
	sb.WriteString("\n[yellow]CONTROL[-]\n  [white]ESC[-]        Quit")
	return sb.String()
}

// createLayout places the flight view beside the sidebar
func (a *App) createLayout() {
	// Right sidebar with 3 panels
	sidebar := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.telemetry, 0, 4, false).
		AddItem(a.controls, 0, 3, false).
		AddItem(a.logs.View(), 0, 3, false)

	// Main layout: flight view (70%) + sidebar (30%)
	a.rootLayout = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.view, 0, 7, true).
		AddItem(sidebar, 0, 3, false)

	a.tviewApp.SetRoot(a.rootLayout, true)
}

// updateTelemetry refreshes the instrument panel. It runs on the tview
// goroutine, as do frames.
func (a *App) updateTelemetry() {
	var sb strings.Builder

	if text := a.gauges.Progress(); text != "" {
		loaded, total := a.library.Progress()
		fmt.Fprintf(&sb, "[yellow]LOADING[-] [white]%d/%d[-]\n", loaded, total)
		a.telemetry.SetText(sb.String())
		return
	}

	r := a.gauges.Readout()
	for _, l := range r.Lines() {
		fmt.Fprintf(&sb, "[gray]%-5s[-] [white]%6d %s[-]\n", l.Label+":", l.Value, l.Unit)
	}

	ac := a.session.Aircraft()
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "[gray]THR:[-]  [white]%3.0f%%[-]", ac.Throttle*100)
	if ac.Afterburner {
		sb.WriteString("  [red]AB[-]")
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "[gray]PITCH:[-] [white]%+5.1f°[-]  [gray]ROLL:[-] [white]%+5.1f°[-]\n", ac.Pitch, ac.Roll)

	f := a.session.Forces()
	sb.WriteString("\n[yellow]FORCES[-]\n")
	fmt.Fprintf(&sb, "[gray]Thrust:[-] [white]%7.0f lbf[-]\n", f.Thrust)
	fmt.Fprintf(&sb, "[gray]Lift:[-]   [white]%7.0f lbf[-]\n", f.Lift)
	fmt.Fprintf(&sb, "[gray]Drag:[-]   [white]%7.0f lbf[-]\n", f.Drag)
	fmt.Fprintf(&sb, "[gray]Weight:[-] [white]%7.0f lb[-]\n", f.Weight)

	held := a.tracker.Held()
	if ac.Fuel < 10 {
		sb.WriteString("\n[red]LOW FUEL[-]\n")
	} else if held.Has(input.Afterburner) && !ac.Afterburner {
		sb.WriteString("\n[yellow]AB INHIBITED[-]\n")
	}

	fmt.Fprintf(&sb, "\n[gray]Frames:[-] [white]%d[-]", a.session.Frames())
	a.telemetry.SetText(sb.String())
}

// handleKeyboard handles keyboard input
func (a *App) handleKeyboard(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape || event.Key() == tcell.KeyCtrlC {
		a.Stop()
		return nil
	}

	names := keyNames(event)
	if len(names) == 0 {
		return event
	}

	now := time.Now()
	suppress := false
	for _, name := range names {
		if a.latch.Press(name, now) {
			suppress = true
		}
	}
	if suppress {
		return nil
	}
	return event
}

// dispatchFrame runs a scheduled frame on the tview goroutine
func (a *App) dispatchFrame(frame func()) {
	a.tviewApp.QueueUpdateDraw(func() {
		a.latch.Expire(time.Now())
		if w, h, ok := a.view.PixelSize(); ok {
			a.raster.Resize(w, h)
		}
		frame()
		a.updateTelemetry()
	})
}

// Run starts the application
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	defer cancel()

	go func() {
		if err := assets.Load(ctx, a.library, a.config.Assets.LoadConfig(), a.log); err != nil {
			a.log.Warn("Asset loading incomplete", "error", err)
		}
	}()

	go func() {
		if err := a.scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("Frame scheduler stopped", "error", err)
		}
	}()

	go a.startWhenReady(ctx)

	a.log.Info("Hornet started", "config", a.configPath)

	// Run the tview application
	return a.tviewApp.Run()
}

// startWhenReady waits for the assets and starts the frame loop
func (a *App) startWhenReady(ctx context.Context) {
	sc := a.config.Simulation
	if err := a.session.WaitForAssets(ctx, sc.LoadDelay(), sc.PollInterval()); err != nil {
		return
	}
	if err := a.session.Start(a.scheduler); err != nil {
		a.log.Error("Failed to start session", "error", err)
	}
}

// Stop stops the application
func (a *App) Stop() {
	a.log.Info("Shutting down...")

	if a.cancel != nil {
		a.cancel()
	}
	a.latch.ReleaseAll()

	// Stop tview application
	a.tviewApp.Stop()
}
