package engine

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tisearch/tisearch/internal/types"
)

// folder lowercases text the same way regardless of the process locale.
type folder struct {
	c cases.Caser
}

func newFolder() *folder {
	return &folder{c: cases.Lower(language.Und)}
}

func (f *folder) lower(s string) string {
	return f.c.String(s)
}

// ReadLines calls fn with every line of r and its 1-based number. "\n",
// "\r\n" and a lone "\r" all end a line; the terminator is not passed to fn.
// Lines have no length limit and invalid UTF-8 is dropped. Reading stops
// early when fn returns false. The first read error other than io.EOF is
// returned.
func ReadLines(r io.Reader, fn func(lineNo int, text string) bool) error {
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		chunk, err := br.ReadString('\n')
		if len(chunk) > 0 {
			chunk = strings.TrimSuffix(chunk, "\n")
			chunk = strings.TrimSuffix(chunk, "\r")
			for _, line := range strings.Split(chunk, "\r") {
				lineNo++
				if !fn(lineNo, strings.ToValidUTF8(line, "")) {
					return nil
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// matchReader calls emit for every line of r whose lowercased text contains
// lowerTerm.
func matchReader(r io.Reader, path, lowerTerm string, f *folder, emit func(types.Match)) error {
	return ReadLines(r, func(lineNo int, text string) bool {
		if strings.Contains(f.lower(text), lowerTerm) {
			emit(types.Match{
				Path: path,
				Line: lineNo,
				Text: strings.TrimRightFunc(text, unicode.IsSpace),
			})
		}
		return true
	})
}

// openFunc opens a file for scanning.
type openFunc func(path string) (io.ReadCloser, error)

func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// matchFile opens path and runs matchReader over it.
func matchFile(open openFunc, path, lowerTerm string, f *folder, emit func(types.Match)) error {
	fh, err := open(path)
	if err != nil {
		return err
	}
	defer fh.Close()
	return matchReader(fh, path, lowerTerm, f, emit)
}
