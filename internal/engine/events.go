package engine

import (
	"time"

	"github.com/tisearch/tisearch/internal/types"
)

// Event is a message on a scan's event stream. The concrete types are
// MatchEvent, ProgressEvent and CompletionEvent.
type Event interface {
	isEvent()
}

// MatchEvent reports one matching line.
type MatchEvent struct {
	Match types.Match
}

// ProgressEvent reports the share of enumerated files already processed.
// Percent never decreases within a scan.
type ProgressEvent struct {
	Percent    int
	FilesDone  int
	FilesTotal int
}

// CompletionEvent is the last event of every scan. The stream is closed
// immediately after it.
type CompletionEvent struct {
	Cancelled    bool
	FilesScanned int
	FilesSkipped int
	Matches      int
	Duration     time.Duration
}

func (MatchEvent) isEvent()      {}
func (ProgressEvent) isEvent()   {}
func (CompletionEvent) isEvent() {}

// percentComplete is floor(done/total*100), 100 for an empty scan.
func percentComplete(done, total int) int {
	if total <= 0 {
		return 100
	}
	p := done * 100 / total
	if p > 100 {
		p = 100
	}
	return p
}
