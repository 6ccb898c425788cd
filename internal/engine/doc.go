// Package engine contains the core search logic of tisearch. It enumerates
// candidate files under a root folder, scans them line by line for a
// case-insensitive term on a background goroutine, and streams matches,
// progress and a completion marker to the caller. This package is internal;
// external consumers should use the facade in pkg/core.
package engine
