package tisearch

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tisearch/tisearch/internal/config"
	"github.com/tisearch/tisearch/internal/engine"
)

// scanFlags are the file selection flags shared by search and tui.
type scanFlags struct {
	path            string
	ext             string
	include         string
	exclude         string
	maxBytes        int64
	defaultExcludes bool
	noIgnore        bool
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "path", "p", ".", "folder to search")
	cmd.Flags().StringVar(&f.ext, "ext", "", `file suffix to search, "*" for all files (default .txt)`)
	cmd.Flags().StringVar(&f.include, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&f.maxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().BoolVar(&f.defaultExcludes, "default-excludes", true, "skip .git, node_modules, vendor and similar folders")
	cmd.Flags().BoolVar(&f.noIgnore, "no-ignore", false, "do not read .tisearchignore in the search folder")
	registerScanCompletions(cmd)
}

// settings merges config files for one invocation. Precedence is
// CLI > local (in the search root) > global.
type settings struct {
	root   string
	local  config.FileConfig
	global config.FileConfig
}

func loadSettings(path string) settings {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	s := settings{root: abs}
	if c, err := config.LoadGlobal(); err == nil {
		s.global = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		s.local = c
	}
	return s
}

func (s settings) engineConfig(cmd *cobra.Command, f *scanFlags) engine.Config {
	defaultExcludes := pickBoolDefault(cmd.Flags().Changed("default-excludes"), f.defaultExcludes,
		s.local.DefaultExcludes, s.global.DefaultExcludes, true)
	return engine.Config{
		Suffix:          pickString(f.ext, s.local.Ext, s.global.Ext),
		IncludeGlobs:    pickString(f.include, s.local.Include, s.global.Include),
		ExcludeGlobs:    pickString(f.exclude, s.local.Exclude, s.global.Exclude),
		MaxBytes:        pickInt64(f.maxBytes, s.local.MaxBytes, s.global.MaxBytes),
		DefaultExcludes: defaultExcludes,
		UseIgnoreFile:   !f.noIgnore,
	}
}

func (s settings) noColor() bool {
	return pickBool(flagNoColor, s.local.NoColor, s.global.NoColor)
}

func (s settings) historyEnabled(disabled bool) bool {
	if disabled {
		return false
	}
	return pickBoolDefault(false, false, s.local.History, s.global.History, true)
}

// validateRequest turns a Request validation failure into the message shown
// to users, keeping the cause for errors.Is.
func validateRequest(req engine.Request) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%s (%w)", engine.ValidationMessage, err)
	}
	return nil
}

func stateDir() (string, error) {
	dir, err := config.StateDir()
	if err != nil {
		return "", errors.New("cannot resolve state directory; set XDG_STATE_HOME")
	}
	return dir, nil
}
