package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// DefaultSuffix is the file suffix scanned when none is configured.
const DefaultSuffix = ".txt"

// AnySuffix disables suffix filtering.
const AnySuffix = "*"

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	".cache":       true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name]
}

// normalizeSuffix lowercases the filter and applies the default.
func normalizeSuffix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSuffix
	}
	return s
}

func hasSuffixFold(name, lowerSuffix string) bool {
	if lowerSuffix == AnySuffix {
		return true
	}
	return strings.HasSuffix(strings.ToLower(name), lowerSuffix)
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, includes, excludes []string) bool {
	rp := filepath.ToSlash(relPath)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	base := pathToMatch
	if i := strings.LastIndex(pathToMatch, "/"); i >= 0 {
		base = pathToMatch[i+1:]
	}
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
