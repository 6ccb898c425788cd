// Package ignore reads .tisearchignore files: one pattern per line, "#"
// comments, gitignore-style directory ("dir/") and anchored ("/a/b")
// patterns, with doublestar globbing. Negated ("!") patterns are not
// supported and are skipped.
package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file looked up in a search root.
const FileName = ".tisearchignore"

type pattern struct {
	glob     string
	dirOnly  bool
	anchored bool
}

// Matcher decides whether root-relative paths are ignored.
type Matcher struct {
	patterns []pattern
}

// Load parses the ignore file at path.
func Load(path string) (Matcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads patterns from r.
func Parse(r io.Reader) (Matcher, error) {
	var m Matcher
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		p := pattern{}
		if strings.HasSuffix(line, "/") {
			p.dirOnly = true
			line = strings.TrimRight(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			p.anchored = true
			line = strings.TrimLeft(line, "/")
		} else if strings.Contains(line, "/") {
			p.anchored = true
		}
		if line == "" || !doublestar.ValidatePattern(line) {
			continue
		}
		p.glob = line
		m.patterns = append(m.patterns, p)
	}
	return m, sc.Err()
}

// Empty reports whether the matcher has no patterns.
func (m Matcher) Empty() bool { return len(m.patterns) == 0 }

// Match reports whether the file at relPath is ignored, either directly or
// because one of its parent directories is.
func (m Matcher) Match(relPath string) bool { return m.match(relPath, false) }

// MatchDir reports whether the directory at relPath is ignored.
func (m Matcher) MatchDir(relPath string) bool { return m.match(relPath, true) }

func (m Matcher) match(relPath string, isDir bool) bool {
	if len(m.patterns) == 0 {
		return false
	}
	parts := strings.Split(filepath.ToSlash(filepath.Clean(relPath)), "/")
	for _, p := range m.patterns {
		if p.matches(parts, isDir) {
			return true
		}
	}
	return false
}

func (p pattern) matches(parts []string, isDir bool) bool {
	last := len(parts) - 1
	for i := range parts {
		if p.dirOnly && i == last && !isDir {
			continue
		}
		subject := parts[i]
		if p.anchored {
			subject = strings.Join(parts[:i+1], "/")
		}
		if ok, _ := doublestar.Match(p.glob, subject); ok {
			return true
		}
	}
	return false
}

// Append adds pattern to the ignore file in root, creating it if needed.
// A pattern already present is not added again.
func Append(root, pattern string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return errors.New("empty ignore pattern")
	}
	path := filepath.Join(root, FileName)
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == pattern {
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(pattern + "\n")
	return writeAndClose(f, buf.Bytes())
}

// writeAndClose writes data to w and closes it, reporting the close error
// when the write succeeded.
func writeAndClose(w io.WriteCloser, data []byte) error {
	_, err := w.Write(data)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
