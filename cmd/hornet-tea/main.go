package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/assets"
	"github.com/unklstewy/hornet/pkg/canvas"
	"github.com/unklstewy/hornet/pkg/config"
	"github.com/unklstewy/hornet/pkg/hud"
	"github.com/unklstewy/hornet/pkg/input"
	"github.com/unklstewy/hornet/pkg/sim"
	"github.com/unklstewy/hornet/pkg/termview"
)

// Rows reserved below the frame for the instruments and help
const hudRows = 2

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type (
	frameMsg  time.Time
	pollMsg   struct{}
	loadedMsg struct{ err error }
)

type model struct {
	cfg *config.Config
	log *logging.Logger
	ctx context.Context

	session  *sim.Session
	library  *assets.Library
	gauges   *hud.Gauges
	latch    *input.Latch
	raster   *canvas.Raster
	sched    *sim.ManualScheduler
	start    time.Time
	interval time.Duration

	width, height int
	loadErr       error
}

func newModel(ctx context.Context, cfg *config.Config, lg *logging.Logger) (model, error) {
	km, err := cfg.Controls.KeyMap()
	if err != nil {
		return model{}, err
	}
	tracker := input.NewTracker(km)

	m := model{
		cfg:      cfg,
		log:      lg,
		ctx:      ctx,
		library:  assets.NewLibrary(),
		gauges:   &hud.Gauges{},
		latch:    input.NewLatch(tracker, cfg.Display.KeyHold()),
		raster:   canvas.NewRaster(80, 40),
		sched:    &sim.ManualScheduler{},
		start:    time.Now(),
		interval: cfg.Display.FrameInterval(),
	}
	d := cfg.Display
	m.session = sim.NewSession(sim.SessionConfig{
		Width:    float64(d.Width),
		Height:   float64(d.Height),
		Profile:  cfg.Aircraft,
		Seed:     cfg.Simulation.ResolveSeed(m.start),
		Input:    tracker,
		Assets:   m.library,
		Surface:  canvas.NewViewport(m.raster, float64(d.Width), float64(d.Height)),
		Display:  m.gauges,
		Progress: m.gauges,
		Logger:   lg,
	})
	m.gauges.ShowProgress(hud.LoadingMessage(m.library.Progress()))
	return m, nil
}

func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func pollTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return pollMsg{}
	})
}

func (m model) loadAssets() tea.Msg {
	return loadedMsg{err: assets.Load(m.ctx, m.library, m.cfg.Assets.LoadConfig(), m.log)}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadAssets, pollTick(m.cfg.Simulation.LoadDelay()))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
		now := time.Now()
		for _, k := range keyNames(msg) {
			m.latch.Press(k, now)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		rows := msg.Height - hudRows
		if rows < 1 {
			rows = 1
		}
		m.raster.Resize(termview.PixelSize(msg.Width, rows))
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			m.log.Warn("Asset loading incomplete", "error", msg.err)
		}
		return m, nil

	case pollMsg:
		if !m.session.PollAssets() {
			return m, pollTick(m.cfg.Simulation.PollInterval())
		}
		if err := m.session.Start(m.sched); err != nil {
			m.log.Error("Failed to start session", "error", err)
			return m, tea.Quit
		}
		return m, frameTick(0)

	case frameMsg:
		t := time.Time(msg)
		m.latch.Expire(t)
		m.sched.Fire(t.Sub(m.start))
		return m, frameTick(m.interval)
	}

	return m, nil
}

func (m model) View() string {
	if text := m.gauges.Progress(); text != "" {
		var b strings.Builder
		b.WriteString(titleStyle.Render(text))
		b.WriteString("\n")
		if m.loadErr != nil {
			b.WriteString(warnStyle.Render(m.loadErr.Error()))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("esc to quit"))
		return b.String()
	}

	var b strings.Builder
	b.WriteString(termview.Render(m.raster.Frame()))
	b.WriteString("\n")

	r := m.gauges.Readout()
	for i, l := range r.Lines() {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(titleStyle.Render(l.Label))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d %s", l.Value, l.Unit)))
	}
	ac := m.session.Aircraft()
	b.WriteString(fmt.Sprintf("  THR %3.0f%%", ac.Throttle*100))
	if ac.Afterburner {
		b.WriteString(" " + warnStyle.Render("AB"))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("w/s pitch  a/d yaw  q/e roll  +/- throttle  space afterburner  esc quit"))
	return b.String()
}

// keyNames translates a key message into tracker key identifiers. Shift
// and Control are never reported on their own, so +/PgUp and -/PgDn stand
// in for them and an upper-case letter presses Shift as well.
func keyNames(msg tea.KeyMsg) []string {
	switch msg.Type {
	case tea.KeySpace:
		return []string{" "}
	case tea.KeyPgUp:
		return []string{"shift"}
	case tea.KeyPgDown:
		return []string{"control"}
	case tea.KeyUp:
		return []string{"arrowup"}
	case tea.KeyDown:
		return []string{"arrowdown"}
	case tea.KeyLeft:
		return []string{"arrowleft"}
	case tea.KeyRight:
		return []string{"arrowright"}
	case tea.KeyRunes:
		var names []string
		for _, r := range msg.Runes {
			switch {
			case r == '+' || r == '=':
				names = append(names, "shift")
			case r == '-' || r == '_':
				names = append(names, "control")
			case unicode.IsUpper(r):
				names = append(names, string(unicode.ToLower(r)), "shift")
			default:
				names = append(names, string(r))
			}
		}
		return names
	}
	return nil
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

	m, err := newModel(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
