package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tisearch/tisearch/internal/ignore"
	"github.com/tisearch/tisearch/internal/report"
	"github.com/tisearch/tisearch/internal/types"
)

// DefaultSaveName is offered when saving results for the first time.
const DefaultSaveName = "search_results.txt"

type statusMsg string

type savedMsg struct {
	path string
	n    int
	err  error
}

func (m Model) selectedMatch() *types.Match {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.matches) {
		return nil
	}
	return &m.matches[idx]
}

// copyLocationToClipboard copies "path:line" of the selected match.
func (m Model) copyLocationToClipboard() tea.Cmd {
	mt := m.selectedMatch()
	if mt == nil {
		return func() tea.Msg { return statusMsg("No match selected") }
	}
	loc := fmt.Sprintf("%s:%d", mt.Path, mt.Line)
	return func() tea.Msg {
		if err := clipboard.WriteAll(loc); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied: " + loc)
	}
}

// copyLineToClipboard copies the selected match in export format.
func (m Model) copyLineToClipboard() tea.Cmd {
	mt := m.selectedMatch()
	if mt == nil {
		return func() tea.Msg { return statusMsg("No match selected") }
	}
	line := report.FormatLine(*mt)
	return func() tea.Msg {
		if err := clipboard.WriteAll(line); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied match to clipboard")
	}
}

// ignoreSelectedFile adds the selected match's file to the search root's
// ignore file so later searches skip it.
func (m Model) ignoreSelectedFile() tea.Cmd {
	mt := m.selectedMatch()
	if mt == nil {
		return func() tea.Msg { return statusMsg("No match selected") }
	}
	root := m.req.Root
	rel, err := filepath.Rel(root, mt.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return func() tea.Msg { return statusMsg("Cannot ignore a file outside the search folder") }
	}
	pattern := "/" + filepath.ToSlash(rel)
	return func() tea.Msg {
		if err := ignore.Append(root, pattern); err != nil {
			return statusMsg(fmt.Sprintf("Could not update %s: %v", ignore.FileName, err))
		}
		return statusMsg(fmt.Sprintf("Added %s to %s", pattern, ignore.FileName))
	}
}

// beginSave opens the save prompt. Saving is only offered once a search has
// completed.
func (m *Model) beginSave() tea.Cmd {
	if m.running() || !m.completed {
		m.setStatus("Nothing to save yet; run a search first", true)
		return nil
	}
	if m.saveInput.Value() == "" {
		m.saveInput.SetValue(DefaultSaveName)
	}
	m.saveInput.CursorEnd()
	m.saving = true
	return m.saveInput.Focus()
}

func (m *Model) cancelSave() {
	m.saving = false
	m.saveInput.Blur()
}

// saveTo writes the current results to path in the export format, or JSON
// when path ends in .json.
func (m Model) saveTo(path string) tea.Cmd {
	matches := m.matches
	format := report.FormatText
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = report.FormatJSON
	}
	return func() tea.Msg {
		err := report.ExportFile(path, matches, format)
		return savedMsg{path: path, n: len(matches), err: err}
	}
}

func (m Model) savePrefs() tea.Cmd {
	dir, prefs := m.opts.StateDir, m.prefs
	if dir == "" {
		return nil
	}
	return func() tea.Msg {
		if err := SavePrefs(dir, prefs); err != nil {
			return statusMsg(fmt.Sprintf("Could not save preferences: %v", err))
		}
		return nil
	}
}
