package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/tisearch/tisearch/internal/filelock"
	"github.com/tisearch/tisearch/internal/types"
)

// FormatLine renders one match in the export format:
// "<path> | Line <n> | <text>".
func FormatLine(m types.Match) string {
	return fmt.Sprintf("%s | Line %d | %s", m.Path, m.Line, m.Text)
}

// WriteExport writes one newline-terminated FormatLine per match, in order.
// The same matches always produce the same bytes.
func WriteExport(w io.Writer, matches []types.Match) error {
	bw := bufio.NewWriter(w)
	for _, m := range matches {
		if _, err := bw.WriteString(FormatLine(m)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSON writes matches as an indented JSON array; nil becomes [].
func WriteJSON(w io.Writer, matches []types.Match) error {
	if matches == nil {
		matches = []types.Match{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(matches)
}

// Format selects the file layout used by ExportFile.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ExportFile writes matches to path, replacing it atomically.
func ExportFile(path string, matches []types.Match, format Format) error {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJSON:
		err = WriteJSON(&buf, matches)
	case FormatText, "":
		err = WriteExport(&buf, matches)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	if err := filelock.AtomicWrite(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// Digest fingerprints the text export of matches as 16 hex characters. Two
// result sets with equal digests export to identical files.
func Digest(matches []types.Match) string {
	h := xxhash.New()
	_ = WriteExport(h, matches)
	sum := h.Sum64()
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
