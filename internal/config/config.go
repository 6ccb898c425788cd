package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when no config file exists at the searched locations.
var ErrNoConfig = errors.New("no config file")

// FileConfig is the on-disk YAML configuration shape for tisearch.
// Nil fields are unset and fall through to the next source.
type FileConfig struct {
	Ext             *string `yaml:"ext"`
	Include         *string `yaml:"include"`
	Exclude         *string `yaml:"exclude"`
	MaxBytes        *int64  `yaml:"max_bytes"`
	DefaultExcludes *bool   `yaml:"default_excludes"`
	NoColor         *bool   `yaml:"no_color"`
	LogLevel        *string `yaml:"log_level"`

	// Format is the default output format of `tisearch search`:
	// table, text or json.
	Format *string `yaml:"format"`

	// History toggles recording scans in the state directory.
	History *bool `yaml:"history"`
}

// LocalNames lists the repo-local config file names in search order.
var LocalNames = []string{".tisearch.yml", ".tisearch.yaml", "tisearch.yml", "tisearch.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a local config file in the given root.
func LoadLocal(root string) (FileConfig, error) {
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return FileConfig{}, ErrNoConfig
}

// GlobalPath returns the global config file path, or "" when neither
// XDG_CONFIG_HOME nor a home directory is available.
func GlobalPath() string {
	base := xdgDir("XDG_CONFIG_HOME", ".config")
	if base == "" {
		return ""
	}
	return filepath.Join(base, "tisearch", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return FileConfig{}, ErrNoConfig
}

// StateDir is where scan history and the last result set are kept:
// $XDG_STATE_HOME/tisearch, falling back to ~/.local/state/tisearch.
func StateDir() (string, error) {
	base := xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
	if base == "" {
		return "", errors.New("no state dir")
	}
	return filepath.Join(base, "tisearch"), nil
}

func xdgDir(env, homeRel string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, homeRel)
}
