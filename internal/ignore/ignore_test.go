package ignore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, FileName)
	content := "node_modules/\n*.bak\n# comment\n\nsecret.txt\n/top/only\n!keep.txt\nlogs/**/old.txt\n"
	require.NoError(t, os.WriteFile(ig, []byte(content), 0o644))

	m, err := Load(ig)
	require.NoError(t, err)
	cases := map[string]bool{
		"node_modules/pkg/index.txt": true,
		"a/node_modules/x.txt":       true,
		"notes/draft.bak":            true,
		"secret.txt":                 true,
		"deep/secret.txt":            true,
		"top/only/a.txt":             true,
		"sub/top/only/a.txt":         false,
		"logs/2020/01/old.txt":       true,
		"logs/new.txt":               false,
		"keep.txt":                   false,
		"src/app.txt":                false,
	}
	for p, want := range cases {
		assert.Equal(t, want, m.Match(p), "Match(%q)", p)
	}
}

func TestMatch_DirOnly(t *testing.T) {
	m, err := Parse(strings.NewReader("build/\n"))
	require.NoError(t, err)
	assert.True(t, m.MatchDir("build"))
	assert.True(t, m.MatchDir("a/build"))
	assert.False(t, m.Match("build"), "a file named build is not a directory")
	assert.True(t, m.Match("build/out.txt"))
}

func TestMatch_Empty(t *testing.T) {
	var m Matcher
	assert.True(t, m.Empty())
	assert.False(t, m.Match("anything.txt"))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAppend_IdempotentAndCreates(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	require.NoError(t, Append(dir, "drafts/"))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "drafts/\n", string(b))

	require.NoError(t, Append(dir, "drafts/"))
	b, err = os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "drafts/"))
}

func TestAppend_AddsMissingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(p, []byte("a.txt"), 0o644))
	require.NoError(t, Append(dir, "b.txt"))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "a.txt\nb.txt\n", string(b))

	assert.Error(t, Append(dir, "  "))
}

type failingCloser struct {
	writeErr, closeErr error
	closed             bool
}

func (f *failingCloser) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *failingCloser) Close() error {
	f.closed = true
	return f.closeErr
}

func TestWriteAndClose_ReportsCloseError(t *testing.T) {
	closeErr := errors.New("disk full")
	w := &failingCloser{closeErr: closeErr}
	assert.ErrorIs(t, writeAndClose(w, []byte("x\n")), closeErr)
	assert.True(t, w.closed)

	writeErr := errors.New("short write")
	w = &failingCloser{writeErr: writeErr, closeErr: closeErr}
	assert.ErrorIs(t, writeAndClose(w, []byte("x\n")), writeErr, "write error wins")
	assert.True(t, w.closed)

	assert.NoError(t, writeAndClose(&failingCloser{}, []byte("x\n")))
}
