package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tisearch/tisearch/internal/engine"
	"github.com/tisearch/tisearch/internal/types"
)

// maxEventBatch bounds how many queued events one message carries, so the
// view refreshes regularly on large result sets.
const maxEventBatch = 256

type scanEventsMsg struct {
	events []engine.Event
	closed bool
}

// waitForEvents blocks for the next event, then takes whatever else is
// already queued.
func waitForEvents(ch <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return scanEventsMsg{closed: true}
		}
		batch := []engine.Event{ev}
		for len(batch) < maxEventBatch {
			select {
			case ev, ok := <-ch:
				if !ok {
					return scanEventsMsg{events: batch, closed: true}
				}
				batch = append(batch, ev)
			default:
				return scanEventsMsg{events: batch}
			}
		}
		return scanEventsMsg{events: batch}
	}
}

func expandPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if abs, err := filepath.Abs(p); err == nil && p != "" {
		return abs
	}
	return p
}

func (m *Model) running() bool {
	st := m.engine.State()
	return st == engine.StateRunning || st == engine.StateCancelling
}

// startScan validates the inputs and starts a new search, clearing the
// previous results.
func (m *Model) startScan() tea.Cmd {
	if m.running() {
		m.setStatus("A search is already running; press esc to stop it", true)
		return nil
	}
	req := engine.Request{Root: expandPath(m.folderInput.Value()), Term: strings.TrimSpace(m.termInput.Value())}
	if err := req.Validate(); err != nil {
		m.setStatus(engine.ValidationMessage, true)
		return nil
	}
	events, err := m.engine.Start(context.Background(), req)
	if err != nil {
		m.setStatus(err.Error(), true)
		return nil
	}

	m.events = events
	m.req = req
	m.matches = nil
	m.rows = nil
	m.table.SetRows(nil)
	m.table.SetCursor(0)
	m.percent, m.filesDone, m.filesTotal = 0, 0, 0
	m.completed = false
	m.summary = engine.CompletionEvent{}
	m.previewKey = ""
	m.viewport.SetContent("")
	m.setStatus(fmt.Sprintf("Searching %s for %q...", req.Root, req.Term), false)

	m.prefs.LastFolder = req.Root
	m.prefs.LastTerm = req.Term
	return tea.Batch(waitForEvents(events), m.spinner.Tick, m.savePrefs())
}

// stopScan asks the engine to stop; results found so far are kept.
func (m *Model) stopScan() {
	if m.engine.State() != engine.StateRunning {
		return
	}
	m.engine.Stop()
	m.setStatus("Stopping...", false)
}

func (m *Model) handleEvents(msg scanEventsMsg) tea.Cmd {
	var cmds []tea.Cmd
	finished := false
	for _, ev := range msg.events {
		switch ev := ev.(type) {
		case engine.MatchEvent:
			m.matches = append(m.matches, ev.Match)
			m.rows = append(m.rows, matchRow(ev.Match))
		case engine.ProgressEvent:
			m.percent, m.filesDone, m.filesTotal = ev.Percent, ev.FilesDone, ev.FilesTotal
		case engine.CompletionEvent:
			finished = true
			cmds = append(cmds, m.finish(ev))
		}
	}
	m.table.SetRows(m.rows)
	m.updatePreview()

	switch {
	case finished:
	case msg.closed:
		// stream ended without a summary; treat what arrived as final
		cmds = append(cmds, m.finish(engine.CompletionEvent{Matches: len(m.matches)}))
	default:
		cmds = append(cmds, waitForEvents(m.events))
	}
	return tea.Batch(cmds...)
}

func (m *Model) finish(sum engine.CompletionEvent) tea.Cmd {
	m.events = nil
	m.completed = true
	m.summary = sum
	if !sum.Cancelled {
		m.percent = 100
	}
	verb := "Search complete"
	if sum.Cancelled {
		verb = "Search stopped"
	}
	m.setStatus(fmt.Sprintf("%s: %d matches in %d files (%.2fs) | ctrl+w: save", verb, len(m.matches), sum.FilesScanned, sum.Duration.Seconds()), false)

	onComplete := m.opts.OnComplete
	if onComplete == nil {
		return nil
	}
	req, matches := m.req, m.matches
	return func() tea.Msg {
		onComplete(req, matches, sum)
		return nil
	}
}

func matchRow(mt types.Match) table.Row {
	return table.Row{mt.Path, fmt.Sprintf("%d", mt.Line), mt.Text}
}
