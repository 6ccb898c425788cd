package tisearch

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tisearch/tisearch/internal/audit"
	"github.com/tisearch/tisearch/internal/engine"
	"github.com/tisearch/tisearch/internal/logger"
	"github.com/tisearch/tisearch/internal/report"
	"github.com/tisearch/tisearch/internal/tui"
	"github.com/tisearch/tisearch/internal/types"
)

var tuiFlags scanFlags

func init() {
	cmd := &cobra.Command{
		Use:   "tui [word]",
		Short: "Search interactively",
		Long:  "Open the interactive search screen. Results stream into the table as files are read; esc stops a search and ctrl+w saves the results.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	rootCmd.AddCommand(cmd)
	tuiFlags.register(cmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s := loadSettings(tuiFlags.path)
	var term string
	if len(args) == 1 {
		term = args[0]
	}

	// the terminal belongs to the UI, so diagnostics go to a file
	dir, dirErr := stateDir()
	log := logger.Discard()
	if dirErr == nil {
		if f, err := openLogFile(dir); err == nil {
			defer f.Close()
			log = newLogger(f, s)
		}
	}

	root := ""
	if cmd.Flags().Changed("path") || len(args) == 1 {
		root = s.root
	}
	cfg := s.engineConfig(cmd, &tuiFlags)
	history := s.historyEnabled(false)

	opts := tui.Options{
		Root:   root,
		Term:   term,
		Config: cfg,
		Logger: log,
		OnComplete: func(req engine.Request, matches []types.Match, sum engine.CompletionEvent) {
			recordScan(log, history, audit.Summary{
				Root:         req.Root,
				Term:         req.Term,
				Suffix:       cfg.Suffix,
				Matches:      len(matches),
				FilesScanned: sum.FilesScanned,
				FilesSkipped: sum.FilesSkipped,
				Cancelled:    sum.Cancelled,
				Duration:     sum.Duration,
				Digest:       report.Digest(matches),
			}, matches)
		},
	}
	if dirErr == nil {
		opts.StateDir = dir
	}
	return tui.Run(opts)
}

func openLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
