package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/unklstewy/hornet/internal/logging"
	"github.com/unklstewy/hornet/pkg/assets"
	"github.com/unklstewy/hornet/pkg/flight"
	"github.com/unklstewy/hornet/pkg/input"
)

// DefaultPath is where the hosts look for a configuration file.
const DefaultPath = "configs/hornet.json"

// Config represents the complete simulator configuration.
type Config struct {
	Display    DisplayConfig    `json:"display"`
	Simulation SimulationConfig `json:"simulation"`
	Aircraft   flight.Profile   `json:"aircraft"`
	Controls   ControlsConfig   `json:"controls"`
	Assets     AssetsConfig     `json:"assets"`
	Logging    LoggingConfig    `json:"logging"`
}

// DisplayConfig contains canvas and frame pacing settings.
type DisplayConfig struct {
	// Width is the canvas width in pixels (default: 800)
	Width int `json:"width"`

	// Height is the canvas height in pixels (default: 600)
	Height int `json:"height"`

	// TargetFPS is the frame rate the hosts pace to (default: 60)
	TargetFPS float64 `json:"target_fps"`

	// KeyHoldMS is how long a terminal key press counts as held.
	// Terminals report no key releases, so a press is released after
	// this many milliseconds without a repeat (default: 150)
	KeyHoldMS int `json:"key_hold_ms"`
}

// SimulationConfig contains session settings.
type SimulationConfig struct {
	// Seed for cloud generation; 0 picks one from the clock
	Seed uint64 `json:"seed"`

	// LoadDelayMS is the pause before asset polling begins (default: 500)
	LoadDelayMS int `json:"load_delay_ms"`

	// PollIntervalMS is the asset polling period (default: 100)
	PollIntervalMS int `json:"poll_interval_ms"`
}

// ControlsConfig maps action names to the keys that drive them.
type ControlsConfig struct {
	// Bindings maps an action (e.g. "pitch_up") to its keys (e.g. ["w"])
	Bindings map[string][]string `json:"bindings"`
}

// AssetsConfig controls texture loading.
type AssetsConfig struct {
	// Dir holds the PNG assets (default: "assets")
	Dir string `json:"dir"`

	// Procedural substitutes generated textures for missing files
	Procedural bool `json:"procedural"`

	// MaxRetries is the number of read retries per asset (default: 3)
	MaxRetries int `json:"max_retries"`

	// RetryDelayMS is the initial retry backoff (default: 100)
	RetryDelayMS int `json:"retry_delay_ms"`

	// MaxRetryDelayMS caps the retry backoff (default: 2000)
	MaxRetryDelayMS int `json:"max_retry_delay_ms"`

	// Files overrides file names by asset (e.g. {"terrain": "desert.png"})
	Files map[string]string `json:"files,omitempty"`
}

// LoggingConfig contains log file settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error (default: "info")
	Level string `json:"level"`

	// Dir is the log directory; empty means the user config directory
	Dir string `json:"dir"`

	// MaxSizeMB is the size at which the log rotates (default: 32)
	MaxSizeMB int `json:"max_size_mb"`

	// MaxBackups is the number of rotated logs kept (default: 3)
	MaxBackups int `json:"max_backups"`
}

// Load reads configuration from a JSON file.
// If the file doesn't exist, returns default configuration.
// Environment variables apply in both cases.
func Load(path string) (*Config, error) {
	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.applyEnvironmentOverrides(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so a partial file keeps sensible values
	cfg := DefaultConfig()
	// Bindings replace the stock layout rather than merging with it
	cfg.Controls.Bindings = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if len(cfg.Controls.Bindings) == 0 {
		cfg.Controls.Bindings = input.DefaultBindings()
	}

	if err := cfg.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a JSON file.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	retry := assets.DefaultRetryConfig()
	return &Config{
		Display: DisplayConfig{
			Width:     800,
			Height:    600,
			TargetFPS: 60,
			KeyHoldMS: 150,
		},
		Simulation: SimulationConfig{
			LoadDelayMS:    500,
			PollIntervalMS: 100,
		},
		Aircraft: flight.SuperHornet(),
		Controls: ControlsConfig{
			Bindings: input.DefaultBindings(),
		},
		Assets: AssetsConfig{
			Dir:             "assets",
			Procedural:      true,
			MaxRetries:      retry.MaxRetries,
			RetryDelayMS:    int(retry.InitialDelay / time.Millisecond),
			MaxRetryDelayMS: int(retry.MaxDelay / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  32,
			MaxBackups: 3,
		},
	}
}

// Validate reports the first setting the simulator cannot run with.
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.TargetFPS <= 0 {
		return fmt.Errorf("target fps must be positive, got %g", c.Display.TargetFPS)
	}
	if err := validateProfile(c.Aircraft); err != nil {
		return fmt.Errorf("invalid aircraft: %w", err)
	}
	if _, err := c.Controls.KeyMap(); err != nil {
		return fmt.Errorf("invalid controls: %w", err)
	}
	if _, err := c.Assets.fileOverrides(); err != nil {
		return fmt.Errorf("invalid assets: %w", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// validateProfile rejects airframes that would divide by zero or drive
// the state out of range.
func validateProfile(p flight.Profile) error {
	if p.EmptyWeight <= 0 {
		return fmt.Errorf("empty weight must be positive, got %g", p.EmptyWeight)
	}
	// Fuel capacity is the difference and must be non-zero
	if p.MaxWeight <= p.EmptyWeight {
		return fmt.Errorf("max weight %g must exceed empty weight %g", p.MaxWeight, p.EmptyWeight)
	}
	if p.MaxThrust <= 0 {
		return fmt.Errorf("max thrust must be positive, got %g", p.MaxThrust)
	}
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("max speed must be positive, got %g", p.MaxSpeed)
	}
	if p.WingArea <= 0 {
		return fmt.Errorf("wing area must be positive, got %g", p.WingArea)
	}
	if p.DragCoefficient < 0 || p.LiftCoefficient < 0 {
		return fmt.Errorf("coefficients must not be negative, got Cd %g Cl %g", p.DragCoefficient, p.LiftCoefficient)
	}
	return nil
}

// FrameInterval returns the time between paced frames.
func (cfg *DisplayConfig) FrameInterval() time.Duration {
	if cfg.TargetFPS <= 0 {
		return time.Second / 60
	}
	return time.Duration(float64(time.Second) / cfg.TargetFPS)
}

// KeyHold returns the terminal key hold duration.
func (cfg *DisplayConfig) KeyHold() time.Duration {
	return time.Duration(cfg.KeyHoldMS) * time.Millisecond
}

// LoadDelay returns the pause before asset polling begins.
func (cfg *SimulationConfig) LoadDelay() time.Duration {
	return time.Duration(cfg.LoadDelayMS) * time.Millisecond
}

// PollInterval returns the asset polling period.
func (cfg *SimulationConfig) PollInterval() time.Duration {
	return time.Duration(cfg.PollIntervalMS) * time.Millisecond
}

// ResolveSeed returns the configured seed, or one derived from now when
// the seed is zero.
func (cfg *SimulationConfig) ResolveSeed(now time.Time) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(now.UnixNano())
}

// KeyMap builds the input key map. Empty bindings mean the stock layout.
func (cfg *ControlsConfig) KeyMap() (input.KeyMap, error) {
	if len(cfg.Bindings) == 0 {
		return input.DefaultKeyMap(), nil
	}
	return input.NewKeyMap(cfg.Bindings)
}

// fileOverrides resolves the Files keys to asset kinds.
func (cfg *AssetsConfig) fileOverrides() (map[assets.Kind]string, error) {
	if len(cfg.Files) == 0 {
		return nil, nil
	}
	files := make(map[assets.Kind]string, len(cfg.Files))
	for name, file := range cfg.Files {
		k, err := assets.ParseKind(name)
		if err != nil {
			return nil, err
		}
		files[k] = file
	}
	return files, nil
}

// LoadConfig returns the asset loader settings. Unknown names in Files are
// reported by Validate and ignored here.
func (cfg *AssetsConfig) LoadConfig() assets.LoadConfig {
	files := make(map[assets.Kind]string, len(cfg.Files))
	for name, file := range cfg.Files {
		if k, err := assets.ParseKind(name); err == nil {
			files[k] = file
		}
	}

	retry := assets.DefaultRetryConfig()
	retry.MaxRetries = cfg.MaxRetries
	if cfg.RetryDelayMS > 0 {
		retry.InitialDelay = time.Duration(cfg.RetryDelayMS) * time.Millisecond
	}
	if cfg.MaxRetryDelayMS > 0 {
		retry.MaxDelay = time.Duration(cfg.MaxRetryDelayMS) * time.Millisecond
	}
	return assets.LoadConfig{
		Dir:        cfg.Dir,
		Procedural: cfg.Procedural,
		Files:      files,
		Retry:      retry,
	}
}

// LoggerConfig returns the log file settings.
func (cfg *LoggingConfig) LoggerConfig() logging.Config {
	return logging.Config{
		Level:      cfg.Level,
		Dir:        cfg.Dir,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
}

// applyEnvironmentOverrides applies environment variable overrides.
// This allows sensitive or per-machine settings to stay out of config files.
func (c *Config) applyEnvironmentOverrides() error {
	if level := os.Getenv("HORNET_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if dir := os.Getenv("HORNET_LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
	}
	if dir := os.Getenv("HORNET_ASSET_DIR"); dir != "" {
		c.Assets.Dir = dir
	}
	if seed := os.Getenv("HORNET_SEED"); seed != "" {
		v, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid HORNET_SEED %q: %w", seed, err)
		}
		c.Simulation.Seed = v
	}
	if fps := os.Getenv("HORNET_FPS"); fps != "" {
		v, err := strconv.ParseFloat(fps, 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("invalid HORNET_FPS %q", fps)
		}
		c.Display.TargetFPS = v
	}
	return nil
}
