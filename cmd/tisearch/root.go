package tisearch

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tisearch/tisearch/internal/logger"
)

var (
	flagNoColor  bool
	flagLogLevel string

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the tisearch CLI.
var rootCmd = &cobra.Command{
	Use:           "tisearch",
	Short:         "Case-insensitive text search across a folder tree",
	Long:          "tisearch walks a folder, reads every .txt file line by line and reports each line containing the search word, ignoring case.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor {
			color.NoColor = true
		}
	},
}

// Execute runs the tisearch CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: trace|debug|info|warn|error (default warn)")
	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"trace", "debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// newLogger builds the diagnostics logger; CLI flag > local > global > warn.
func newLogger(w io.Writer, s settings) *logger.ConsoleLogger {
	level := pickString(flagLogLevel, s.local.LogLevel, s.global.LogLevel)
	if level == "" {
		level = "warn"
	}
	return logger.NewConsoleLogger(w, level)
}
