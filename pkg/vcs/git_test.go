package vcs_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/vcs"
)

func TestGitClientFailureIsRepoAccess(t *testing.T) {
	client := vcs.NewGitClient("git", 30*time.Second)

	// No repository at this path, so whatever git does it fails.
	err := client.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing"))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoAccess),
		"want REPO_ACCESS, got %v", err)
}

func TestGitClientEndToEnd(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	ctx := context.Background()
	client := vcs.NewGitClient("git", time.Minute)
	tmp := t.TempDir()

	// Build an origin repository with two tagged releases.
	origin := filepath.Join(tmp, "origin")
	gitIn(t, origin, "init", "--initial-branch=main", ".")
	gitIn(t, origin, "config", "user.email", "test@example.com")
	gitIn(t, origin, "config", "user.name", "test")
	writeFile(t, filepath.Join(origin, "plugin", "thing.vim"), "\" release one\n")
	gitIn(t, origin, "add", ".")
	gitIn(t, origin, "commit", "-m", "first")
	gitIn(t, origin, "tag", "1.0")
	writeFile(t, filepath.Join(origin, "plugin", "thing.vim"), "\" release two\n")
	gitIn(t, origin, "add", ".")
	gitIn(t, origin, "commit", "-m", "second")
	gitIn(t, origin, "tag", "1.1")

	cache := filepath.Join(tmp, "cache")
	require.NoError(t, client.Clone(ctx, origin, cache))
	require.NoError(t, client.Fetch(ctx, cache))

	tags, err := client.Tags(ctx, cache)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1.0", "1.1"}, tags)

	out := filepath.Join(tmp, "deployed")
	require.NoError(t, os.MkdirAll(out, 0755))
	require.NoError(t, client.Checkout(ctx, cache, "1.0", out))

	content, err := os.ReadFile(filepath.Join(out, "plugin", "thing.vim"))
	require.NoError(t, err)
	assert.Equal(t, "\" release one\n", string(content))
}

func gitIn(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
