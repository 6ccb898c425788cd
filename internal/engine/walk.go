package engine

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tisearch/tisearch/internal/ignore"
)

// EnumerateOptions selects the candidate files of a scan.
type EnumerateOptions struct {
	Root string
	// Suffix is matched case-insensitively against file names. Empty means
	// DefaultSuffix, AnySuffix disables the filter.
	Suffix string
	// Comma-separated doublestar globs matched against the root-relative path.
	IncludeGlobs string
	ExcludeGlobs string
	// DefaultExcludes skips well-known vendored and VCS directories.
	DefaultExcludes bool
	// MaxBytes skips files larger than this; 0 disables the limit.
	MaxBytes int64
	// UseIgnoreFile honors a .tisearchignore file in the root.
	UseIgnoreFile bool
}

// Enumerate recursively lists the files under opts.Root that pass the filters,
// in walk order. Entries that cannot be read are skipped; the walk never aborts.
func Enumerate(opts EnumerateOptions) []string {
	return enumerate(opts, nopLogger{})
}

// CountTargets returns the number of files a scan with opts would visit.
func CountTargets(opts EnumerateOptions) int {
	return len(Enumerate(opts))
}

func enumerate(opts EnumerateOptions, log Logger) []string {
	suffix := normalizeSuffix(opts.Suffix)
	includes := parseGlobsList(opts.IncludeGlobs)
	excludes := parseGlobsList(opts.ExcludeGlobs)

	// WalkDir does not descend into a symlinked root; resolve it once and map
	// results back onto the caller's root.
	walkRoot := opts.Root
	if fi, err := os.Lstat(walkRoot); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(walkRoot); err == nil {
			walkRoot = resolved
		}
	}

	var ig ignore.Matcher
	if opts.UseIgnoreFile {
		m, err := ignore.Load(filepath.Join(walkRoot, ignore.FileName))
		switch {
		case err == nil:
			ig = m
		case !errors.Is(err, fs.ErrNotExist):
			log.Warnf("ignore file: %v", err)
		}
	}

	var out []string
	_ = filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debugf("skip %s: %v", p, err)
			return nil
		}
		if d.IsDir() {
			if p == walkRoot {
				return nil
			}
			if opts.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			if rel, err := filepath.Rel(walkRoot, p); err == nil && ig.MatchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !hasSuffixFold(d.Name(), suffix) {
			return nil
		}
		if !d.Type().IsRegular() {
			// symlinks to regular files are scanned, everything else is not
			if d.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			st, err := os.Stat(p)
			if err != nil || !st.Mode().IsRegular() {
				return nil
			}
		}
		rel, err := filepath.Rel(walkRoot, p)
		if err != nil {
			return nil
		}
		if ig.Match(rel) || !allowedByGlobs(rel, includes, excludes) {
			return nil
		}
		if opts.MaxBytes > 0 {
			if info, err := d.Info(); err == nil && info.Size() > opts.MaxBytes {
				return nil
			}
		}
		out = append(out, filepath.Join(opts.Root, rel))
		return nil
	})
	return out
}
