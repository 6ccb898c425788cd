package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "tisearch.yaml", "ext: .md\nmax_bytes: 123\ndefault_excludes: true\nformat: json\n")
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.NotNil(t, cfg.Ext)
	assert.Equal(t, ".md", *cfg.Ext)
	require.NotNil(t, cfg.MaxBytes)
	assert.EqualValues(t, 123, *cfg.MaxBytes)
	require.NotNil(t, cfg.DefaultExcludes)
	assert.True(t, *cfg.DefaultExcludes)
	require.NotNil(t, cfg.Format)
	assert.Equal(t, "json", *cfg.Format)
	assert.Nil(t, cfg.Include)
	assert.Nil(t, cfg.History)
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "bad.yml", "ext: [unterminated\n")
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "tisearch.yaml", "ext: .log\n")
	writeTemp(t, dir, ".tisearch.yaml", "ext: .md\n")
	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.Ext)
	assert.Equal(t, ".md", *cfg.Ext)
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestLoadGlobal_XDG_Config(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "tisearch")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	writeTemp(t, cfgDir, "config.yml", "log_level: debug\n")
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg, err := LoadGlobal()
	require.NoError(t, err)
	require.NotNil(t, cfg.LogLevel)
	assert.Equal(t, "debug", *cfg.LogLevel)
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	assert.Error(t, err)
}

func TestStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := StateDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tisearch"), got)

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/someone")
	got, err = StateDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/someone", ".local", "state", "tisearch"), got)
}
