package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rivo/tview"
)

// LogPanel keeps the last records from the session logger in a ring and
// shows them oldest first.
type LogPanel struct {
	view *tview.TextView

	mu    sync.Mutex
	ring  []slog.Record
	next  int
	count int
}

// NewLogPanel returns a panel holding up to size records
func NewLogPanel(size int) *LogPanel {
	view := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	view.SetBorder(true).SetTitle(" Logs ")

	return &LogPanel{
		view: view,
		ring: make([]slog.Record, size),
	}
}

// View returns the tview component
func (p *LogPanel) View() tview.Primitive {
	return p.view
}

// Record stores r, overwriting the oldest record once the ring is full.
// It has the logging.MirrorFunc signature.
func (p *LogPanel) Record(r slog.Record) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ring[p.next] = r
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}

	var sb strings.Builder
	for _, rec := range p.records() {
		sb.WriteString(formatRecord(rec))
		sb.WriteByte('\n')
	}
	p.view.SetText(sb.String())
	p.view.ScrollToEnd()
}

// Records returns the retained records, oldest first
func (p *LogPanel) Records() []slog.Record {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.records()
}

func (p *LogPanel) records() []slog.Record {
	out := make([]slog.Record, 0, p.count)
	start := (p.next - p.count + len(p.ring)) % len(p.ring)
	for i := 0; i < p.count; i++ {
		out = append(out, p.ring[(start+i)%len(p.ring)])
	}
	return out
}

// formatRecord renders "HH:MM:SS LEVEL message key=value" with color tags
func formatRecord(r slog.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[gray]%s[-] [%s]%-5s[-] %s",
		r.Time.Format("15:04:05"), levelColor(r.Level), r.Level, tview.Escape(r.Message))
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&sb, " [gray]%s=[-]%s", a.Key, tview.Escape(a.Value.String()))
		return true
	})
	return sb.String()
}

// levelColor returns the tview color tag for a level
func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "red"
	case l >= slog.LevelWarn:
		return "yellow"
	case l >= slog.LevelInfo:
		return "white"
	default:
		return "gray"
	}
}
