// Package logging provides the structured logger used by every hornet
// command. Records are written as JSON to a size-rotated file; terminal
// hosts own the TTY, so nothing is written to stdout.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultFileName is the log file created in the log directory.
const DefaultFileName = "hornet.slog"

// Config selects where and how verbosely to log.
type Config struct {
	// Level is one of debug, info, warn, error
	Level string

	// Dir is the log directory; empty means the user config dir
	Dir string

	// MaxSizeMB is the size at which the file is rotated
	MaxSizeMB int

	// MaxBackups is how many rotated files are kept
	MaxBackups int
}

// Logger wraps slog.Logger. All methods accept a nil *Logger: debug and
// info messages are dropped and warnings and errors go to the default slog
// logger.
type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time

	closer io.Closer
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New opens a rotating log file in cfg.Dir and logs a start-up banner.
func New(cfg Config) (*Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	dir := cfg.Dir
	if dir == "" {
		dir, err = os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("unable to find user config dir: %w", err)
		}
		dir = filepath.Join(dir, "hornet")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, DefaultFileName),
		MaxSize:    cfg.MaxSizeMB, // MB
		MaxBackups: cfg.MaxBackups,
	}
	if w.MaxSize <= 0 {
		w.MaxSize = 32
	}
	if lvl == slog.LevelDebug {
		w.MaxSize = max(w.MaxSize, 256)
	}

	l := &Logger{
		Logger:  slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})),
		LogFile: w.Filename,
		LogDir:  dir,
		Start:   time.Now(),
		closer:  w,
	}
	l.banner()
	return l, nil
}

// NewWriter logs JSON records to w. It is used by the headless runner and
// by tests.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
		Start:  time.Now(),
	}
}

func (l *Logger) banner() {
	l.Info("Hello logging", slog.Time("start", l.Start))
	l.Info("System information",
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS),
		slog.Int("NumCPUs", runtime.NumCPU()))

	if bi, ok := debug.ReadBuildInfo(); ok {
		var deps []any
		for _, dep := range bi.Deps {
			deps = append(deps, slog.String(dep.Path, dep.Version))
		}
		l.Info("Build",
			slog.String("Go version", bi.GoVersion),
			slog.String("Path", bi.Path),
			slog.Group("Dependencies", deps...))
	}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Logger) enabled(level slog.Level) bool {
	return l != nil && l.Logger.Enabled(context.Background(), level)
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(msg, args...)
	}
}

// Debugf logs just a formatted message.
func (l *Logger) Debugf(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.Warn(fmt.Sprintf(msg, args...))
}

func (l *Logger) Error(msg string, args ...any) {
	if l == nil {
		slog.Error(msg, args...)
	} else {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.Error(fmt.Sprintf(msg, args...))
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
		closer:  l.closer,
	}
}

// MirrorFunc receives a copy of every record that passes the logger's
// level. Attributes added with With are not included.
type MirrorFunc func(r slog.Record)

// Mirror returns a logger that also passes each record to fn, e.g. to show
// it in an on-screen log panel.
func (l *Logger) Mirror(fn MirrorFunc) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{
		Logger:  slog.New(mirrorHandler{Handler: l.Logger.Handler(), fn: fn}),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
		closer:  l.closer,
	}
}

type mirrorHandler struct {
	slog.Handler
	fn MirrorFunc
}

func (h mirrorHandler) Handle(ctx context.Context, r slog.Record) error {
	h.fn(r.Clone())
	return h.Handler.Handle(ctx, r)
}

func (h mirrorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return mirrorHandler{Handler: h.Handler.WithAttrs(attrs), fn: h.fn}
}

func (h mirrorHandler) WithGroup(name string) slog.Handler {
	return mirrorHandler{Handler: h.Handler.WithGroup(name), fn: h.fn}
}
