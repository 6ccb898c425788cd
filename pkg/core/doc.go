// Package core provides a small, stable facade over tisearch's internal
// engine for other programs. It re-exports a narrow API surface so callers
// can depend on a stable import path without importing internal packages.
//
// Example:
//
//	matches, sum, err := core.Search(ctx, ".", "invoice", core.Config{})
//	if err != nil { /* handle */ }
//	_ = core.MarshalMatches(os.Stdout, matches)
package core
