// Package audit records a summary of every finished scan in an append-only
// JSON Lines history file.
package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/tisearch/tisearch/internal/filelock"
)

type ScanRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	ScanID       string    `json:"scan_id"`
	Root         string    `json:"root"`
	Term         string    `json:"term"`
	Suffix       string    `json:"suffix"`
	Matches      int       `json:"matches"`
	FilesScanned int       `json:"files_scanned"`
	FilesSkipped int       `json:"files_skipped"`
	Cancelled    bool      `json:"cancelled"`
	Duration     string    `json:"duration"`
	Digest       string    `json:"digest"`
	ExportPath   string    `json:"export_path,omitempty"`
}

type AuditLog struct {
	logPath string
}

// NewAuditLog returns the history kept in stateDir.
func NewAuditLog(stateDir string) *AuditLog {
	return &AuditLog{logPath: filepath.Join(stateDir, "history.jsonl")}
}

// Path is the JSON Lines file backing the log.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns records newest first. Undecodable lines are skipped.
// A log that does not exist yet is empty.
func (a *AuditLog) LoadHistory() ([]ScanRecord, error) {
	var records []ScanRecord
	err := filelock.WithLock(a.logPath, func() error {
		var rerr error
		records, rerr = a.read()
		return rerr
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) read() ([]ScanRecord, error) {
	f, err := os.Open(a.logPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record ScanRecord
		if err := decoder.Decode(&record); err != nil {
			// A syntax error leaves the decoder unusable; keep what was read.
			var syn *json.SyntaxError
			if errors.As(err, &syn) {
				break
			}
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// LogScan appends record, assigning a ScanID and Timestamp when unset.
func (a *AuditLog) LogScan(record ScanRecord) error {
	if record.ScanID == "" {
		record.ScanID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	return filelock.WithLock(a.logPath, func() error {
		f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open audit log: %w", err)
		}
		defer f.Close()

		if err := json.NewEncoder(f).Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
		return nil
	})
}

// DeleteRecord removes the record at index in LoadHistory order (0 = newest).
func (a *AuditLog) DeleteRecord(index int) error {
	return filelock.WithLock(a.logPath, func() error {
		records, err := a.read()
		if err != nil {
			return err
		}
		// records are oldest first on disk
		pos := len(records) - 1 - index
		if index < 0 || pos < 0 {
			return fmt.Errorf("invalid index: %d", index)
		}
		records = append(records[:pos], records[pos+1:]...)

		var buf []byte
		for _, record := range records {
			b, err := json.Marshal(record)
			if err != nil {
				return fmt.Errorf("failed to encode audit record: %w", err)
			}
			buf = append(buf, b...)
			buf = append(buf, '\n')
		}
		return filelock.AtomicWrite(a.logPath, buf, 0o600)
	})
}

// Summary is the outcome of one scan as recorded in history.
type Summary struct {
	Root         string
	Term         string
	Suffix       string
	Matches      int
	FilesScanned int
	FilesSkipped int
	Cancelled    bool
	Duration     time.Duration
	Digest       string
	ExportPath   string
}

// CreateScanRecord builds a record with a fresh ScanID.
func CreateScanRecord(s Summary) ScanRecord {
	return ScanRecord{
		Timestamp:    time.Now(),
		ScanID:       uuid.NewString(),
		Root:         s.Root,
		Term:         s.Term,
		Suffix:       s.Suffix,
		Matches:      s.Matches,
		FilesScanned: s.FilesScanned,
		FilesSkipped: s.FilesSkipped,
		Cancelled:    s.Cancelled,
		Duration:     s.Duration.Round(time.Millisecond).String(),
		Digest:       s.Digest,
		ExportPath:   s.ExportPath,
	}
}
