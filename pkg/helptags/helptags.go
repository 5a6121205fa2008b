// Package helptags rebuilds Vim's searchable help index for deployed
// plugin directories. Indexing is best-effort: callers log failures and
// carry on, so a plugin with broken help text never blocks deployment.
package helptags

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/logging"
)

// Indexer rebuilds the help index for one plugin directory.
type Indexer interface {
	Rebuild(ctx context.Context, dir string) error
}

// VimIndexer implements Indexer by running vim in silent ex mode.
type VimIndexer struct {
	bin     string
	timeout time.Duration
}

// NewVimIndexer creates an Indexer driving the given vim executable.
// timeout bounds each invocation, with zero meaning no bound.
func NewVimIndexer(bin string, timeout time.Duration) *VimIndexer {
	if bin == "" {
		bin = "vim"
	}
	return &VimIndexer{bin: bin, timeout: timeout}
}

// Rebuild regenerates dir/doc/tags. A directory without a doc/
// subdirectory has nothing to index and succeeds trivially.
func (ix *VimIndexer) Rebuild(ctx context.Context, dir string) error {
	docDir := filepath.Join(dir, "doc")
	info, err := os.Stat(docDir)
	if err != nil || !info.IsDir() {
		return nil
	}

	if ix.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ix.timeout)
		defer cancel()
	}

	args := []string{
		"-u", "NONE",
		"-i", "NONE",
		"-n", "-N", "-e", "-s",
		"-c", "helptags " + docDir,
		"-c", "qall!",
	}
	logging.LogCommand(ix.bin, args)

	cmd := exec.CommandContext(ctx, ix.bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "helptags failed for %s", dir).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	return nil
}

// Noop is an Indexer that does nothing. Used when help indexing is
// disabled and as a stand-in for tests.
type Noop struct{}

func (Noop) Rebuild(ctx context.Context, dir string) error {
	return nil
}
