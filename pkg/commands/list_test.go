// Test Type: Unit Test
// Description: Joined manifest/lock/deployment view, including
// unlocked declarations and stale lock entries

package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/commands"
	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/lockfile"
)

func newListOptions(t *testing.T, manifestTOML string) commands.ListOptions {
	t.Helper()
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "Flavorfile.toml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifestTOML), 0644))

	return commands.ListOptions{
		ManifestPath: manifestPath,
		LockPath:     filepath.Join(dir, "Flavorfile.lock"),
		VimfilesDir:  filepath.Join(dir, "vimfiles"),
		FS:           filesystem.NewOS(),
	}
}

func TestListJoinsManifestLockAndTree(t *testing.T) {
	opts := newListOptions(t, twoFlavorManifest)

	lock := lockfile.New()
	lock.Set(altrURI, lockfile.Entry{
		Name: "kana/vim-altr", Groups: []string{"default"},
		Version: "1.3.0", Constraint: ">= 1.0",
	})
	require.NoError(t, lock.Save(opts.FS, opts.LockPath))
	require.NoError(t, os.MkdirAll(filepath.Join(opts.VimfilesDir, "flavors", "kana_vim-altr"), 0755))

	result, err := commands.List(opts)
	require.NoError(t, err)
	require.Len(t, result.Flavors, 2)

	altr := result.Flavors[0]
	assert.Equal(t, "kana/vim-altr", altr.Name)
	assert.Equal(t, ">= 1.0", altr.Constraint)
	assert.Equal(t, "1.3.0", altr.Version)
	assert.True(t, altr.Deployed)
	assert.False(t, altr.Stale)

	// Declared but never installed: no version, not deployed.
	vspec := result.Flavors[1]
	assert.Equal(t, "kana/vim-vspec", vspec.Name)
	assert.Equal(t, []string{"testing"}, vspec.Groups)
	assert.Empty(t, vspec.Version)
	assert.False(t, vspec.Deployed)
}

func TestListMarksUndeclaredLockEntriesStale(t *testing.T) {
	opts := newListOptions(t, `
[flavors."kana/vim-altr"]
constraint = ">= 1.0"
`)

	lock := lockfile.New()
	lock.Set(altrURI, lockfile.Entry{
		Name: "kana/vim-altr", Groups: []string{"default"},
		Version: "1.3.0", Constraint: ">= 1.0",
	})
	lock.Set("https://github.com/thinca/vim-quickrun.git", lockfile.Entry{
		Name: "thinca/vim-quickrun", Groups: []string{"default"},
		Version: "0.5.0", Constraint: ">= 0",
	})
	require.NoError(t, lock.Save(opts.FS, opts.LockPath))

	result, err := commands.List(opts)
	require.NoError(t, err)
	require.Len(t, result.Flavors, 2)

	assert.False(t, result.Flavors[0].Stale)

	stale := result.Flavors[1]
	assert.True(t, stale.Stale)
	assert.Equal(t, "thinca/vim-quickrun", stale.Name)
	assert.Equal(t, "0.5.0", stale.Version)
}

func TestListWithoutLockShowsUnlockedDeclarations(t *testing.T) {
	opts := newListOptions(t, twoFlavorManifest)

	result, err := commands.List(opts)
	require.NoError(t, err)
	require.Len(t, result.Flavors, 2)
	for _, state := range result.Flavors {
		assert.Empty(t, state.Version, state.Name)
		assert.False(t, state.Deployed, state.Name)
	}
}

func TestListRequiresManifest(t *testing.T) {
	opts := newListOptions(t, "")
	require.NoError(t, os.Remove(opts.ManifestPath))

	_, err := commands.List(opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileAccess), "got %v", err)
}

func TestListRejectsMissingInputs(t *testing.T) {
	_, err := commands.List(commands.ListOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
