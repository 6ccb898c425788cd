package tisearch

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tisearch/tisearch/internal/config"
	"github.com/tisearch/tisearch/internal/engine"
)

var (
	cfgOutput          string
	cfgExt             string
	cfgInclude         string
	cfgExclude         string
	cfgMaxBytes        int64
	cfgFormat          string
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgHistory         bool
	cfgForce           bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .tisearch.yml with the selected options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().StringVar(&cfgExt, "ext", engine.DefaultSuffix, "file suffix to search")
	initCmd.Flags().StringVar(&cfgInclude, "include", "", "comma-separated include globs")
	initCmd.Flags().StringVar(&cfgExclude, "exclude", "", "comma-separated exclude globs")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	initCmd.Flags().StringVar(&cfgFormat, "format", "table", "default output: table | text | json")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "skip well-known vendored and VCS folders")
	initCmd.Flags().BoolVar(&cfgHistory, "history", true, "record searches in history")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	switch strings.ToLower(cfgFormat) {
	case "table", "text", "json":
	default:
		return fmt.Errorf("unknown format %q (want table, text or json)", cfgFormat)
	}
	if !cfgForce {
		if _, err := os.Stat(cfgOutput); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", cfgOutput)
		}
	}

	fc := config.FileConfig{
		Ext:             strPtr(cfgExt),
		Include:         optStrPtr(cfgInclude),
		Exclude:         optStrPtr(cfgExclude),
		MaxBytes:        int64Ptr(cfgMaxBytes),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		NoColor:         boolPtr(cfgNoColor),
		Format:          strPtr(strings.ToLower(cfgFormat)),
		History:         boolPtr(cfgHistory),
	}

	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }
