package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/config"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", config.DefaultPath, "Path to configuration file")
	seed := flag.Uint64("seed", 0, "Cloud seed (overrides configuration)")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("hornet version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	// Show help
	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	lg, err := logging.New(cfg.Logging.LoggerConfig())
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer lg.Close()

	// Create and run the application
	app, err := NewApp(&AppConfig{
		Config:     cfg,
		ConfigPath: *configPath,
		Logger:     lg,
	})
	if err != nil {
		lg.Errorf("Failed to create application: %v", err)
		log.Fatalf("Failed to create application: %v", err)
	}

	if err := app.Run(); err != nil {
		lg.Errorf("Application error: %v", err)
		log.Fatalf("Application error: %v", err)
	}
}

// printHelp prints usage information
func printHelp() {
	fmt.Println("hornet - F-18 Super Hornet arcade flight simulator (terminal)")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  hornet [options]")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -config string")
	fmt.Printf("        Path to configuration file (default: %s)\n", config.DefaultPath)
	fmt.Println("  -seed uint")
	fmt.Println("        Cloud seed; 0 uses the configured or clock seed")
	fmt.Println("  -version")
	fmt.Println("        Show version information")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("FLIGHT CONTROLS (default bindings):")
	fmt.Println("    W/S            Pitch up/down")
	fmt.Println("    A/D            Yaw left/right")
	fmt.Println("    Q/E            Roll left/right")
	fmt.Println("    + or PgUp      Throttle up (Shift)")
	fmt.Println("    - or PgDn      Throttle down (Control)")
	fmt.Println("    SPACE          Afterburner")
	fmt.Println()
	fmt.Println("  Terminals report no key releases: a key stays held while it")
	fmt.Println("  auto-repeats and for a short window after.")
	fmt.Println()
	fmt.Println("  Control:")
	fmt.Println("    ESC or Ctrl+C  Quit")
	fmt.Println()
	fmt.Println("ENVIRONMENT:")
	fmt.Println("  HORNET_LOG_LEVEL, HORNET_LOG_DIR, HORNET_ASSET_DIR, HORNET_SEED, HORNET_FPS")
}
