package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestEnumerate_DefaultSuffixIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":          "a",
		"B.TXT":          "b",
		"notes.md":       "c",
		"sub/deep/d.Txt": "d",
		"sub/e.log":      "e",
		"txt":            "no dot",
	})

	got := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir}))
	assert.ElementsMatch(t, []string{"a.txt", "B.TXT", "sub/deep/d.Txt"}, got)
}

func TestEnumerate_PathsAreJoinedWithRoot(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x/y.txt": "y"})

	got := Enumerate(EnumerateOptions{Root: dir})
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "x", "y.txt"), got[0])
}

func TestEnumerate_CustomAndAnySuffix(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txt":  "a",
		"b.MD":   "b",
		"c/d.md": "d",
		"e.go":   "e",
	})

	md := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir, Suffix: ".md"}))
	assert.ElementsMatch(t, []string{"b.MD", "c/d.md"}, md)

	all := Enumerate(EnumerateOptions{Root: dir, Suffix: AnySuffix})
	assert.Len(t, all, 4)
}

func TestEnumerate_IncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"keep/a.txt": "a",
		"keep/b.txt": "b",
		"drop/c.txt": "c",
		"top.txt":    "t",
	})

	got := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir, IncludeGlobs: "keep/**"}))
	assert.ElementsMatch(t, []string{"keep/a.txt", "keep/b.txt"}, got)

	got = relAll(t, dir, Enumerate(EnumerateOptions{Root: dir, ExcludeGlobs: "drop/**, b.txt"}))
	assert.ElementsMatch(t, []string{"keep/a.txt", "top.txt"}, got)
}

func TestEnumerate_DefaultExcludesOnlyWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"node_modules/pkg/readme.txt": "x",
		".git/notes.txt":              "x",
		"src/a.txt":                   "x",
	})

	assert.Len(t, Enumerate(EnumerateOptions{Root: dir}), 3)

	got := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir, DefaultExcludes: true}))
	assert.Equal(t, []string{"src/a.txt"}, got)
}

func TestEnumerate_DefaultExcludesNeverSkipsRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "vendor")
	writeTree(t, root, map[string]string{"a.txt": "x"})

	assert.Len(t, Enumerate(EnumerateOptions{Root: root, DefaultExcludes: true}), 1)
}

func TestEnumerate_MaxBytes(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"small.txt": "ok",
		"big.txt":   string(make([]byte, 4096)),
	})

	got := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir, MaxBytes: 1024}))
	assert.Equal(t, []string{"small.txt"}, got)
	assert.Equal(t, 2, CountTargets(EnumerateOptions{Root: dir}))
}

func TestEnumerate_MissingRootYieldsNothing(t *testing.T) {
	got := Enumerate(EnumerateOptions{Root: filepath.Join(t.TempDir(), "missing")})
	assert.Empty(t, got)
}

func TestEnumerate_SkipsUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"open/a.txt":   "a",
		"locked/b.txt": "b",
	})
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir}))
	assert.Equal(t, []string{"open/a.txt"}, got)
}

func TestEnumerate_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	writeTree(t, target, map[string]string{"a.txt": "a"})
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got := Enumerate(EnumerateOptions{Root: link})
	assert.Equal(t, []string{filepath.Join(link, "a.txt")}, got)
}

func TestEnumerate_IgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".tisearchignore": "drafts/\n*.old.txt\n",
		"drafts/a.txt":    "a",
		"keep/b.txt":      "b",
		"keep/c.old.txt":  "c",
		"keep/drafts.txt": "d",
	})

	got := relAll(t, dir, Enumerate(EnumerateOptions{Root: dir, UseIgnoreFile: true}))
	assert.ElementsMatch(t, []string{"keep/b.txt", "keep/drafts.txt"}, got)

	assert.Len(t, Enumerate(EnumerateOptions{Root: dir}), 4, "ignore file is only read when enabled")
}
