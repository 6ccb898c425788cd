package tisearch

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tisearch/tisearch/internal/audit"
	"github.com/tisearch/tisearch/internal/cache"
	"github.com/tisearch/tisearch/internal/engine"
	"github.com/tisearch/tisearch/internal/logger"
	"github.com/tisearch/tisearch/internal/report"
	"github.com/tisearch/tisearch/internal/types"
)

var (
	searchFlags   scanFlags
	flagJSON      bool
	flagText      bool
	flagTable     bool
	flagOutput    string
	flagDryRun    bool
	flagNoHistory bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "search <word>",
		Short: "Search .txt files under a folder for a word, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
		Example: `  tisearch search invoice -p ~/notes
  tisearch search "error 42" --ext .log --json
  tisearch search todo -o todo-results.txt`,
	}
	rootCmd.AddCommand(cmd)

	searchFlags.register(cmd)
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit matches as JSON")
	cmd.Flags().BoolVar(&flagText, "text", false, "emit matches as path:line: text")
	cmd.Flags().BoolVar(&flagTable, "table", false, "emit matches as a table (default)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "also export matches to this file (JSON when it ends in .json)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "list the files that would be searched without reading them")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not record this scan in history")
}

func runSearch(cmd *cobra.Command, args []string) error {
	s := loadSettings(searchFlags.path)
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	log := newLogger(stderr, s)

	req := engine.Request{Root: s.root, Term: args[0]}
	if err := validateRequest(req); err != nil {
		return err
	}
	cfg := s.engineConfig(cmd, &searchFlags)

	if flagDryRun {
		files := engine.Enumerate(cfg.EnumerateOptions(s.root))
		for _, f := range files {
			fmt.Fprintln(stdout, f)
		}
		fmt.Fprintf(stderr, "%d files would be searched\n", len(files))
		return nil
	}

	format := outputFormat(s)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(cfg, engine.WithLogger(log))
	events, err := eng.Start(ctx, req)
	if err != nil {
		return err
	}
	showProgress := format != "json" && isTerminal(stderr)
	matches, summary := consume(events, stderr, showProgress)
	if summary.Cancelled {
		log.Warnf("search interrupted after %d files; results are partial", summary.FilesScanned+summary.FilesSkipped)
	}
	log.Debugf("searched %s for %q: %d matches in %d files (%d skipped) in %s",
		s.root, req.Term, summary.Matches, summary.FilesScanned, summary.FilesSkipped, summary.Duration)

	opts := report.PrintOptions{
		NoColor:      s.noColor(),
		Duration:     summary.Duration,
		FilesScanned: summary.FilesScanned,
		FilesSkipped: summary.FilesSkipped,
		Cancelled:    summary.Cancelled,
	}
	switch format {
	case "json":
		if err := report.WriteJSON(stdout, matches); err != nil {
			return err
		}
	case "text":
		report.PrintText(stdout, matches, opts)
	default:
		report.PrintTable(stdout, matches, opts)
	}

	var exportPath string
	if flagOutput != "" {
		exportPath, _ = filepath.Abs(flagOutput)
		if err := report.ExportFile(exportPath, matches, exportFormatFor(exportPath)); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Exported %d matches to %s\n", len(matches), exportPath)
	}

	recordScan(log, s.historyEnabled(flagNoHistory), audit.Summary{
		Root:         s.root,
		Term:         req.Term,
		Suffix:       cfg.Suffix,
		Matches:      len(matches),
		FilesScanned: summary.FilesScanned,
		FilesSkipped: summary.FilesSkipped,
		Cancelled:    summary.Cancelled,
		Duration:     summary.Duration,
		Digest:       report.Digest(matches),
		ExportPath:   exportPath,
	}, matches)
	return nil
}

// consume drains a scan's events, drawing a one-line progress indicator on w
// when show is set.
func consume(events <-chan engine.Event, w io.Writer, show bool) ([]types.Match, engine.CompletionEvent) {
	var (
		matches []types.Match
		summary engine.CompletionEvent
	)
	for ev := range events {
		switch ev := ev.(type) {
		case engine.MatchEvent:
			matches = append(matches, ev.Match)
		case engine.ProgressEvent:
			if show {
				fmt.Fprintf(w, "\r[%d/%d] %3d%%  Matches: %d", ev.FilesDone, ev.FilesTotal, ev.Percent, len(matches))
			}
		case engine.CompletionEvent:
			summary = ev
		}
	}
	if show {
		fmt.Fprintln(w)
	}
	return matches, summary
}

func outputFormat(s settings) string {
	switch {
	case flagJSON:
		return "json"
	case flagText:
		return "text"
	case flagTable:
		return "table"
	}
	if f := strings.ToLower(pickString("", s.local.Format, s.global.Format)); f != "" {
		return f
	}
	return "table"
}

func exportFormatFor(path string) report.Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return report.FormatJSON
	}
	return report.FormatText
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// recordScan saves the result set for `tisearch export` and appends the scan
// to history. Failures are logged, never returned: the search itself succeeded.
func recordScan(log *logger.ConsoleLogger, history bool, sum audit.Summary, matches []types.Match) {
	dir, err := stateDir()
	if err != nil {
		log.Warnf("%v", err)
		return
	}
	rec := audit.CreateScanRecord(sum)
	if err := cache.SaveResults(dir, cache.ScanResults{
		ScanID:    rec.ScanID,
		Matches:   matches,
		Timestamp: rec.Timestamp,
		Root:      sum.Root,
		Term:      sum.Term,
		Cancelled: sum.Cancelled,
	}); err != nil {
		log.Warnf("save results: %v", err)
	}
	if !history {
		return
	}
	if err := audit.NewAuditLog(dir).LogScan(rec); err != nil {
		log.Warnf("record history: %v", err)
	}
}
