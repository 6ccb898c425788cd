package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tisearch/tisearch/internal/filelock"
)

// Prefs holds user preferences for the TUI that persist across sessions.
type Prefs struct {
	LastFolder string `json:"last_folder,omitempty"`
	LastTerm   string `json:"last_term,omitempty"`
	// ContextLines is how many lines around a match the preview shows.
	ContextLines int `json:"context_lines"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{ContextLines: 3}
}

func prefsPath(stateDir string) string {
	return filepath.Join(stateDir, "tui_prefs.json")
}

// LoadPrefs loads preferences from stateDir, returning defaults if not found.
func LoadPrefs(stateDir string) Prefs {
	prefs := DefaultPrefs()
	if stateDir == "" {
		return prefs
	}
	data, err := os.ReadFile(prefsPath(stateDir))
	if err != nil {
		return prefs
	}
	_ = json.Unmarshal(data, &prefs) //nolint:errcheck // fall back to defaults
	if prefs.ContextLines < minContextLines || prefs.ContextLines > maxContextLines {
		prefs.ContextLines = DefaultPrefs().ContextLines
	}
	return prefs
}

// SavePrefs persists preferences to stateDir.
func SavePrefs(stateDir string, prefs Prefs) error {
	if stateDir == "" {
		return nil
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return filelock.AtomicWrite(prefsPath(stateDir), data, 0o600)
}
