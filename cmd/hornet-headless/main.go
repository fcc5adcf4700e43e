package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/assets"
	"github.com/unklstewy/hornet/pkg/canvas"
	"github.com/unklstewy/hornet/pkg/config"
	"github.com/unklstewy/hornet/pkg/hud"
	"github.com/unklstewy/hornet/pkg/input"
	"github.com/unklstewy/hornet/pkg/sim"
)

// options controls a fixed-step run
type options struct {
	Frames int
	Step   time.Duration
	Hold   []string
	Every  int
	PNG    string
}

// run flies the session for opts.Frames fixed steps with opts.Hold keys
// held throughout and returns the final readout.
func run(ctx context.Context, cfg *config.Config, opts options, lg *logging.Logger) (hud.Readout, error) {
	km, err := cfg.Controls.KeyMap()
	if err != nil {
		return hud.Readout{}, err
	}
	tracker := input.NewTracker(km)
	for _, k := range opts.Hold {
		tracker.OnKeyDown(k)
	}

	lib := assets.NewLibrary()
	if err := assets.Load(ctx, lib, cfg.Assets.LoadConfig(), lg); err != nil {
		return hud.Readout{}, fmt.Errorf("failed to load assets: %w", err)
	}

	d := cfg.Display
	raster := canvas.NewRaster(d.Width, d.Height)
	gauges := &hud.Gauges{}
	session := sim.NewSession(sim.SessionConfig{
		Width:    float64(d.Width),
		Height:   float64(d.Height),
		Profile:  cfg.Aircraft,
		Seed:     cfg.Simulation.ResolveSeed(time.Now()),
		Input:    tracker,
		Assets:   lib,
		Surface:  raster,
		Display:  gauges,
		Progress: gauges,
		Logger:   lg,
	})

	if err := session.WaitForAssets(ctx, 0, cfg.Simulation.PollInterval()); err != nil {
		return hud.Readout{}, err
	}

	sched := &sim.ManualScheduler{}
	if err := session.Start(sched); err != nil {
		return hud.Readout{}, err
	}

	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return gauges.Readout(), err
		}
		sched.Fire(time.Duration(i) * opts.Step)
		if opts.Every > 0 && (i+1)%opts.Every == 0 {
			r := gauges.Readout()
			lg.Info("Readout", "frame", i+1,
				"altitude", r.Altitude, "speed", r.Speed, "heading", r.Heading, "fuel", r.Fuel)
		}
	}

	if opts.PNG != "" {
		if err := writePNG(opts.PNG, raster); err != nil {
			return gauges.Readout(), err
		}
		lg.Info("Frame written", "path", opts.PNG)
	}

	return gauges.Readout(), nil
}

func writePNG(path string, r *canvas.Raster) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, r.Frame()); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// parseHold splits a comma-separated key list; "space" names the space bar
func parseHold(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		k = strings.TrimSpace(k)
		switch {
		case k == "":
		case strings.EqualFold(k, "space"):
			keys = append(keys, " ")
		default:
			keys = append(keys, k)
		}
	}
	return keys
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	frames := flag.Int("frames", 600, "Number of frames to simulate")
	fps := flag.Float64("fps", 60, "Simulated frame rate")
	hold := flag.String("hold", "", "Comma-separated keys held for the whole run (e.g. shift,space)")
	every := flag.Int("every", 60, "Log a readout every N frames; 0 disables")
	out := flag.String("png", "", "Write the final frame to this PNG file")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	lvl, err := logging.ParseLevel(*level)
	if err != nil {
		log.Fatal(err)
	}
	lg := logging.NewWriter(os.Stderr, lvl)

	if *fps <= 0 {
		log.Fatalf("fps must be positive, got %g", *fps)
	}

	r, err := run(context.Background(), cfg, options{
		Frames: *frames,
		Step:   time.Duration(float64(time.Second) / *fps),
		Hold:   parseHold(*hold),
		Every:  *every,
		PNG:    *out,
	}, lg)
	if err != nil {
		log.Fatalf("Run failed: %v", err)
	}
	fmt.Println(r)
}
