package tisearch

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tisearch/tisearch/internal/cache"
	"github.com/tisearch/tisearch/internal/report"
)

var (
	flagExportOutput string
	flagExportJSON   bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the matches of the last search to a file",
		Long:  "Export re-reads the result set saved by the last search and writes it as \"<path> | Line <n> | <text>\" lines, or JSON with --json. Without -o it writes to stdout.",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "file to write (default stdout)")
	cmd.Flags().BoolVar(&flagExportJSON, "json", false, "write JSON instead of the line format")
}

func runExport(cmd *cobra.Command, _ []string) error {
	dir, err := stateDir()
	if err != nil {
		return err
	}
	res, err := cache.LoadResults(dir)
	if errors.Is(err, cache.ErrNoResults) {
		return errors.New("no saved results; run `tisearch search` first")
	}
	if err != nil {
		return err
	}

	format := report.FormatText
	if flagExportJSON {
		format = report.FormatJSON
	}
	if flagExportOutput == "" {
		if format == report.FormatJSON {
			return report.WriteJSON(cmd.OutOrStdout(), res.Matches)
		}
		return report.WriteExport(cmd.OutOrStdout(), res.Matches)
	}

	path, _ := filepath.Abs(flagExportOutput)
	if err := report.ExportFile(path, res.Matches, format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d matches for %q to %s\n", len(res.Matches), res.Term, path)
	return nil
}
