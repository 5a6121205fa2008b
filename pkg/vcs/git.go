package vcs

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/logging"
)

// GitClient implements Client by shelling out to git. Every invocation
// runs under a bounded timeout so a hung remote cannot block forever.
type GitClient struct {
	bin     string
	timeout time.Duration
}

// NewGitClient creates a git-backed client. bin is the git executable
// ("git" resolves via PATH); timeout bounds each git invocation, with
// zero meaning no bound.
func NewGitClient(bin string, timeout time.Duration) *GitClient {
	if bin == "" {
		bin = "git"
	}
	return &GitClient{bin: bin, timeout: timeout}
}

func (g *GitClient) Clone(ctx context.Context, uri, dest string) error {
	_, err := g.run(ctx, "", "clone", uri, dest)
	return err
}

func (g *GitClient) Fetch(ctx context.Context, dest string) error {
	_, err := g.run(ctx, dest, "fetch", "origin", "--tags")
	return err
}

func (g *GitClient) Tags(ctx context.Context, dest string) ([]string, error) {
	out, err := g.run(ctx, dest, "tag")
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (g *GitClient) Checkout(ctx context.Context, dest, revision, outputDir string) error {
	if _, err := g.run(ctx, dest, "checkout", "-f", revision); err != nil {
		return err
	}
	// checkout-index requires the trailing separator to treat the prefix
	// as a directory.
	_, err := g.run(ctx, dest, "checkout-index", "-a", "-f", "--prefix="+outputDir+"/")
	return err
}

// run executes one git command, capturing combined output for
// diagnostics. dir is the working directory ("" for none).
func (g *GitClient) run(ctx context.Context, dir string, args ...string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	logging.LogCommand(g.bin, args)

	cmd := exec.CommandContext(ctx, g.bin, args...)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	output := strings.TrimSpace(string(out))
	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return output, errors.Wrapf(err, errors.ErrRepoAccess, "git %s failed", args[0]).
			WithDetail("output", output).
			WithDetail("exit_code", exitCode).
			WithDetail("dir", dir)
	}

	return output, nil
}
