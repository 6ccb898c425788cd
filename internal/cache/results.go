// Package cache keeps the result set of the most recent scan so it can be
// exported again without rescanning.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tisearch/tisearch/internal/filelock"
	"github.com/tisearch/tisearch/internal/types"
)

// ErrNoResults is returned by LoadResults when no scan has been saved yet.
var ErrNoResults = errors.New("no saved results")

// ScanResults stores the matches and metadata from a scan.
type ScanResults struct {
	ScanID    string        `json:"scan_id"`
	Matches   []types.Match `json:"matches"`
	Timestamp time.Time     `json:"timestamp"`
	Root      string        `json:"root"`
	Term      string        `json:"term"`
	Count     int           `json:"count"`
	Cancelled bool          `json:"cancelled,omitempty"`
}

// ResultsPath is the file holding the last result set inside stateDir.
func ResultsPath(stateDir string) string {
	return filepath.Join(stateDir, "last_scan.json")
}

// SaveResults replaces the saved result set. Count is derived from Matches.
func SaveResults(stateDir string, results ScanResults) error {
	if results.Timestamp.IsZero() {
		results.Timestamp = time.Now()
	}
	if results.Matches == nil {
		results.Matches = []types.Match{}
	}
	results.Count = len(results.Matches)
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	p := ResultsPath(stateDir)
	return filelock.WithLock(p, func() error {
		return filelock.AtomicWrite(p, b, 0o600)
	})
}

// LoadResults loads the last saved result set.
func LoadResults(stateDir string) (ScanResults, error) {
	var results ScanResults
	p := ResultsPath(stateDir)
	var b []byte
	err := filelock.WithLock(p, func() error {
		var rerr error
		b, rerr = os.ReadFile(p)
		return rerr
	})
	if errors.Is(err, os.ErrNotExist) {
		return results, ErrNoResults
	}
	if err != nil {
		return results, err
	}
	if err := json.Unmarshal(b, &results); err != nil {
		return results, fmt.Errorf("parse %s: %w", p, err)
	}
	return results, nil
}
