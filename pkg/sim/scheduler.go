package sim

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// FrameFunc is run once per display refresh with a monotonically
// increasing timestamp measured from an arbitrary origin.
type FrameFunc func(ts time.Duration)

// Scheduler runs a requested frame once, after the next display refresh.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(FrameFunc)

func (f SchedulerFunc) RequestFrame(fn FrameFunc) { f(fn) }

// ManualScheduler holds the requested frame until the caller fires it. It
// drives fixed-step runs and tests.
type ManualScheduler struct {
	mu      sync.Mutex
	pending FrameFunc
}

func (m *ManualScheduler) RequestFrame(fn FrameFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = fn
}

// Pending reports whether a frame has been requested and not yet fired.
func (m *ManualScheduler) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Fire runs the pending frame, if any, at ts.
func (m *ManualScheduler) Fire(ts time.Duration) bool {
	m.mu.Lock()
	fn := m.pending
	m.pending = nil
	m.mu.Unlock()

	if fn == nil {
		return false
	}
	fn(ts)
	return true
}

// PacedScheduler delivers requested frames at no more than a target rate.
// Frames are handed to dispatch, which should run them on the host's UI
// goroutine (e.g. tview's QueueUpdateDraw). At most one request is
// outstanding; a second request before delivery is dropped.
type PacedScheduler struct {
	limiter  *rate.Limiter
	dispatch func(func())
	pending  chan FrameFunc
	start    time.Time
}

// NewPacedScheduler returns a scheduler pacing frames at fps. A nil
// dispatch runs frames on the Run goroutine.
func NewPacedScheduler(fps float64, dispatch func(func())) *PacedScheduler {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &PacedScheduler{
		limiter:  rate.NewLimiter(rate.Limit(fps), 1),
		dispatch: dispatch,
		pending:  make(chan FrameFunc, 1),
		start:    time.Now(),
	}
}

func (p *PacedScheduler) RequestFrame(fn FrameFunc) {
	select {
	case p.pending <- fn:
	default:
	}
}

// Run delivers frames until ctx is done.
func (p *PacedScheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-p.pending:
			if err := p.limiter.Wait(ctx); err != nil {
				return err
			}
			ts := time.Since(p.start)
			p.dispatch(func() { fn(ts) })
		}
	}
}
