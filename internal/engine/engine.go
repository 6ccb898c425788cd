package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tisearch/tisearch/internal/types"
)

// ErrScanInProgress is returned by Start while the engine is still running a scan.
var ErrScanInProgress = errors.New("scan already in progress")

const defaultEventBuffer = 64

// Config controls which files a scan visits. It applies to every scan started
// on the engine.
type Config struct {
	Suffix          string
	IncludeGlobs    string
	ExcludeGlobs    string
	DefaultExcludes bool
	MaxBytes        int64
	UseIgnoreFile   bool
	// EventBuffer is the capacity of the event channel (0 = 64).
	EventBuffer int
}

// State is the lifecycle of the engine's current scan.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCancelling
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelling:
		return "cancelling"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Option customizes an Engine.
type Option func(*Engine)

// WithLogger routes per-file diagnostics to l.
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine runs one scan at a time on a background goroutine and streams its
// results as events.
//
// Stop is cooperative: the flag is checked before each file is opened, so a
// stop takes effect once the file being read has been finished. A read that
// blocks forever therefore delays cancellation forever; there are no
// per-file timeouts.
type Engine struct {
	cfg  Config
	log  Logger
	open openFunc

	mu    sync.Mutex
	state State
	done  chan struct{}

	stop atomic.Bool
}

// New returns an idle engine.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, log: nopLogger{}, open: openFile}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start begins scanning req on a new goroutine and returns its event stream.
// The stream yields matches and progress in file order, then exactly one
// CompletionEvent, and is then closed. The caller must drain it.
//
// Start fails with ErrScanInProgress if the previous scan has not completed.
// Cancelling ctx has the same effect as Stop.
func (e *Engine) Start(ctx context.Context, req Request) (<-chan Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == StateRunning || e.state == StateCancelling {
		return nil, ErrScanInProgress
	}
	e.stop.Store(false)
	e.state = StateRunning
	done := make(chan struct{})
	e.done = done

	size := e.cfg.EventBuffer
	if size <= 0 {
		size = defaultEventBuffer
	}
	out := make(chan Event, size)
	go e.run(ctx, req, out, done)
	return out, nil
}

// Stop asks the running scan to finish after the current file. It is a no-op
// when no scan is running.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateRunning {
		return
	}
	e.stop.Store(true)
	e.state = StateCancelling
}

// State reports the lifecycle state of the most recent scan.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Wait blocks until the most recent scan's goroutine has exited. Events must
// still be drained by the consumer for that to happen.
func (e *Engine) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done != nil {
		<-done
	}
}

// EnumerateOptions returns the file selection a scan of root would use.
func (c Config) EnumerateOptions(root string) EnumerateOptions {
	return EnumerateOptions{
		Root:            root,
		Suffix:          c.Suffix,
		IncludeGlobs:    c.IncludeGlobs,
		ExcludeGlobs:    c.ExcludeGlobs,
		DefaultExcludes: c.DefaultExcludes,
		MaxBytes:        c.MaxBytes,
		UseIgnoreFile:   c.UseIgnoreFile,
	}
}

func (e *Engine) stopRequested(ctx context.Context) bool {
	return e.stop.Load() || ctx.Err() != nil
}

func (e *Engine) run(ctx context.Context, req Request, out chan<- Event, done chan struct{}) {
	started := time.Now()
	var summary CompletionEvent
	defer func() {
		summary.Duration = time.Since(started)
		// Completed before the event is delivered so a consumer reacting to
		// completion can start the next scan immediately.
		e.mu.Lock()
		e.state = StateCompleted
		e.mu.Unlock()
		out <- summary
		close(out)
		close(done)
	}()

	files := enumerate(e.cfg.EnumerateOptions(req.Root), e.log)
	total := len(files)
	if total == 0 {
		out <- ProgressEvent{Percent: 100}
		return
	}

	fold := newFolder()
	term := fold.lower(req.Term)
	emit := func(m types.Match) {
		summary.Matches++
		out <- MatchEvent{Match: m}
	}
	for i, p := range files {
		if e.stopRequested(ctx) {
			summary.Cancelled = true
			e.log.Debugf("scan stopped after %d of %d files", i, total)
			break
		}
		if err := matchFile(e.open, p, term, fold, emit); err != nil {
			summary.FilesSkipped++
			e.log.Debugf("skip %s: %v", p, err)
		} else {
			summary.FilesScanned++
		}
		out <- ProgressEvent{Percent: percentComplete(i+1, total), FilesDone: i + 1, FilesTotal: total}
	}
}

// Collect drains events until the stream closes and returns the matches in
// arrival order together with the completion summary.
func Collect(events <-chan Event) ([]types.Match, CompletionEvent) {
	var (
		matches []types.Match
		summary CompletionEvent
	)
	for ev := range events {
		switch ev := ev.(type) {
		case MatchEvent:
			matches = append(matches, ev.Match)
		case CompletionEvent:
			summary = ev
		}
	}
	return matches, summary
}
