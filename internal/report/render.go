package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tisearch/tisearch/internal/types"
)

// PrintOptions controls the human-readable renderers.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	FilesSkipped int
	Cancelled    bool
}

// PrintTable renders matches as a bordered table followed by a summary footer.
// Matches are printed in the order they were found.
func PrintTable(w io.Writer, matches []types.Match, opts PrintOptions) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("FILE", "LINE", "TEXT")
		for _, m := range matches {
			_ = table.Append([]string{m.Path, strconv.Itoa(m.Line), m.Text})
		}
		_ = table.Render()
	}
	printFooter(w, len(matches), opts)
}

// PrintText renders matches in grep style, "path:line: text", one per line.
func PrintText(w io.Writer, matches []types.Match, opts PrintOptions) {
	pathColor := color.New(color.FgMagenta)
	lineColor := color.New(color.FgGreen)
	if opts.NoColor {
		pathColor.DisableColor()
		lineColor.DisableColor()
	}
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches found")
	}
	for _, m := range matches {
		fmt.Fprintf(w, "%s:%s: %s\n", pathColor.Sprint(m.Path), lineColor.Sprint(m.Line), m.Text)
	}
	printFooter(w, len(matches), opts)
}

func printFooter(w io.Writer, n int, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned == 0 && opts.FilesSkipped == 0 && !opts.Cancelled {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Matches: %d\n", n)
	if opts.FilesScanned > 0 || opts.FilesSkipped > 0 {
		fmt.Fprintf(w, "Files scanned: %d", opts.FilesScanned)
		if opts.FilesSkipped > 0 {
			fmt.Fprintf(w, " (%d unreadable)", opts.FilesSkipped)
		}
		fmt.Fprintln(w)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.Cancelled {
		warn := color.New(color.FgYellow)
		if opts.NoColor {
			warn.DisableColor()
		}
		fmt.Fprintln(w, warn.Sprint("Scan stopped early; results are partial"))
	}
}
