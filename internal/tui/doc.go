// Package tui is the interactive front end: a folder and word input, a live
// results table fed by the engine's event stream, a progress bar, and a
// preview of the selected match in context.
package tui
