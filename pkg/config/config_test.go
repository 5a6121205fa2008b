// Test Type: Unit Test
// Description: Configuration layering - embedded defaults, user file,
// environment overrides

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/config"
	"github.com/arthur-debert/flavor/pkg/errors"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, 120*time.Second, cfg.Git.Timeout)
	assert.Equal(t, "vim", cfg.Vim.Binary)
	assert.True(t, cfg.Vim.Helptags)
	assert.Equal(t, 30*time.Second, cfg.Vim.Timeout)
	assert.Equal(t, 4, cfg.Install.Concurrency)
	assert.Empty(t, cfg.Locations.Vimfiles)
}

func TestUserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[git]
binary = "/opt/git/bin/git"
timeout = "10s"

[vim]
helptags = false

[locations]
vimfiles = "~/.config/nvim"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/git/bin/git", cfg.Git.Binary)
	assert.Equal(t, 10*time.Second, cfg.Git.Timeout)
	assert.False(t, cfg.Vim.Helptags)
	assert.Equal(t, "~/.config/nvim", cfg.Locations.Vimfiles)

	// Untouched sections keep their defaults.
	assert.Equal(t, "vim", cfg.Vim.Binary)
	assert.Equal(t, 4, cfg.Install.Concurrency)
}

func TestMissingUserFileIsSkipped(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, "git", cfg.Git.Binary)
}

func TestInvalidUserFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[git\nbinary = oops"), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[git]\ntimeout = \"10s\"\n"), 0644))

	t.Setenv("FLAVOR_GIT_TIMEOUT", "45s")
	t.Setenv("FLAVOR_INSTALL_CONCURRENCY", "9")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Git.Timeout)
	assert.Equal(t, 9, cfg.Install.Concurrency)
}

func TestFloorsRestoreUnusableValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[git]
binary = ""
timeout = "0s"

[install]
concurrency = -3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.Equal(t, 120*time.Second, cfg.Git.Timeout)
	assert.Equal(t, 4, cfg.Install.Concurrency)
}
