package core

import (
	"context"
	"io"

	"github.com/tisearch/tisearch/internal/engine"
	"github.com/tisearch/tisearch/internal/report"
	"github.com/tisearch/tisearch/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Config          = engine.Config
	Match           = types.Match
	Request         = engine.Request
	Event           = engine.Event
	MatchEvent      = engine.MatchEvent
	ProgressEvent   = engine.ProgressEvent
	CompletionEvent = engine.CompletionEvent
	Engine          = engine.Engine
)

var (
	ErrScanInProgress = engine.ErrScanInProgress
	ErrEmptyTerm      = engine.ErrEmptyTerm
	ErrRootNotFound   = engine.ErrRootNotFound
	ErrRootNotDir     = engine.ErrRootNotDir
)

// NewEngine returns an idle engine for callers that want the event stream.
func NewEngine(cfg Config) *Engine { return engine.New(cfg) }

// Search validates the request, runs one scan to completion and returns the
// matches in the order they were found. Cancelling ctx stops the scan after
// the current file; the partial result is returned with Cancelled set.
func Search(ctx context.Context, root, term string, cfg Config) ([]Match, CompletionEvent, error) {
	req := Request{Root: root, Term: term}
	if err := req.Validate(); err != nil {
		return nil, CompletionEvent{}, err
	}
	events, err := engine.New(cfg).Start(ctx, req)
	if err != nil {
		return nil, CompletionEvent{}, err
	}
	matches, sum := engine.Collect(events)
	return matches, sum, nil
}

// WriteExport writes matches as "<path> | Line <n> | <text>" lines.
func WriteExport(w io.Writer, matches []Match) error {
	return report.WriteExport(w, matches)
}
