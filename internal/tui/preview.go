package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/tisearch/tisearch/internal/engine"
	"github.com/tisearch/tisearch/internal/types"
)

const (
	minContextLines = 1
	maxContextLines = 20
)

// readFileContext returns up to contextLines lines on each side of
// targetLine together with the number of the first returned line.
func readFileContext(path string, targetLine, contextLines int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	startLine := targetLine - contextLines
	if startLine < 1 {
		startLine = 1
	}
	endLine := targetLine + contextLines

	var lines []string
	err = engine.ReadLines(f, func(lineNum int, text string) bool {
		if lineNum >= startLine {
			lines = append(lines, text)
		}
		return lineNum < endLine
	})
	return lines, startLine, err
}

// highlightLine colors line with the lexer registered for filename. Unknown
// file types are returned unchanged.
func highlightLine(line, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// highlightTerm renders every case-insensitive occurrence of term in line with
// termStyle. Lines whose lowercase form changes byte length are returned
// unchanged since offsets would not line up.
func highlightTerm(line, term string) string {
	if term == "" {
		return line
	}
	lowerLine, lowerTerm := strings.ToLower(line), strings.ToLower(term)
	if len(lowerLine) != len(line) || len(lowerTerm) != len(term) {
		return line
	}
	var b strings.Builder
	rest, lowerRest := line, lowerLine
	for {
		i := strings.Index(lowerRest, lowerTerm)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i])
		b.WriteString(termStyle.Render(rest[i : i+len(term)]))
		rest, lowerRest = rest[i+len(term):], lowerRest[i+len(term):]
	}
}

// renderPreview builds the detail pane for m: its location and the
// surrounding lines of the file, with the matched line emphasized.
func renderPreview(m types.Match, term string, contextLines int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render("Match"))
	fmt.Fprintf(&b, "%s %s\n", keyStyle.Render("File:"), m.Path)
	fmt.Fprintf(&b, "%s %d\n", keyStyle.Render("Line:"), m.Line)

	hint := fmt.Sprintf(" (+/- to expand/contract, showing %d lines)", contextLines*2+1)
	fmt.Fprintf(&b, "\n%s%s\n", keyStyle.Render("Context:"), dimStyle.Render(hint))

	lines, startLine, err := readFileContext(m.Path, m.Line, contextLines)
	if err != nil || len(lines) == 0 {
		b.WriteString(highlightTerm(m.Text, term))
		if err != nil {
			fmt.Fprintf(&b, "\n%s\n", errorStyle.Render(fmt.Sprintf("(file no longer readable: %v)", err)))
		}
		return b.String()
	}
	for i, line := range lines {
		n := startLine + i
		num := dimStyle.Render(fmt.Sprintf("%4d ", n))
		if n == m.Line {
			b.WriteString(num + matchLineStyle.Render(highlightTerm(line, term)) + "\n")
			continue
		}
		b.WriteString(num + highlightLine(line, m.Path) + "\n")
	}
	return b.String()
}
