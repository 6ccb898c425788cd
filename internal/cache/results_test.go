package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tisearch/tisearch/internal/types"
)

func TestSaveLoadResults(t *testing.T) {
	dir := t.TempDir()
	in := ScanResults{
		ScanID: "abc",
		Root:   "/data",
		Term:   "hello",
		Matches: []types.Match{
			{Path: "/data/a.txt", Line: 1, Text: "hello"},
			{Path: "/data/b.txt", Line: 9, Text: "Hello again"},
		},
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveResults(dir, in))

	st, err := os.Stat(ResultsPath(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode().Perm())

	out, err := LoadResults(dir)
	require.NoError(t, err)
	assert.Equal(t, "abc", out.ScanID)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, in.Matches, out.Matches)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
}

func TestSaveResults_Overwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, SaveResults(dir, ScanResults{Term: "one", Matches: []types.Match{{Path: "x", Line: 1, Text: "one"}}}))
	require.NoError(t, SaveResults(dir, ScanResults{Term: "two"}))

	out, err := LoadResults(dir)
	require.NoError(t, err)
	assert.Equal(t, "two", out.Term)
	assert.Empty(t, out.Matches)
	assert.Equal(t, 0, out.Count)
	assert.False(t, out.Timestamp.IsZero())
}

func TestLoadResults_None(t *testing.T) {
	_, err := LoadResults(t.TempDir())
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestLoadResults_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(ResultsPath(dir), []byte("{not json"), 0o600))
	_, err := LoadResults(dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResults)
}
