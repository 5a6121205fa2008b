// pkg/testutil/fake_git.go
// PURPOSE: In-memory vcs.Client double so resolution and deployment
// logic is testable without a git binary or network access.

package testutil

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/flavor/pkg/errors"
)

// FakeGit implements vcs.Client against an in-memory set of
// repositories. Every call is recorded so tests can assert which
// repository operations ran (or that none did).
type FakeGit struct {
	mu        sync.Mutex
	repos     map[string][]string // uri -> available tags
	failures  map[string]error    // operation -> forced error
	destToURI map[string]string
	calls     []string
}

// NewFakeGit creates an empty fake.
func NewFakeGit() *FakeGit {
	return &FakeGit{
		repos:     make(map[string][]string),
		failures:  make(map[string]error),
		destToURI: make(map[string]string),
	}
}

// WithRepo registers a repository and the tags it publishes.
func (g *FakeGit) WithRepo(uri string, tags ...string) *FakeGit {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.repos[uri] = tags
	return g
}

// WithCloned marks uri as already cloned at dest, as if Clone had run
// in an earlier session. The caller is responsible for creating dest on
// disk when the code under test checks for its existence.
func (g *FakeGit) WithCloned(uri, dest string) *FakeGit {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.destToURI[dest] = uri
	return g
}

// FailWith forces the named operation ("clone", "fetch", "tags",
// "checkout") to return err.
func (g *FakeGit) FailWith(operation string, err error) *FakeGit {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[operation] = err
	return g
}

// Calls returns a snapshot of the recorded operations, in order.
func (g *FakeGit) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

// CallCount returns how many operations ran in total.
func (g *FakeGit) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *FakeGit) Clone(ctx context.Context, uri, dest string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "clone "+uri)

	if err := g.failures["clone"]; err != nil {
		return err
	}
	if _, ok := g.repos[uri]; !ok {
		return errors.Newf(errors.ErrRepoAccess, "unknown repository %s", uri)
	}
	g.destToURI[dest] = uri
	return nil
}

func (g *FakeGit) Fetch(ctx context.Context, dest string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "fetch "+filepath.Base(dest))

	if err := g.failures["fetch"]; err != nil {
		return err
	}
	if _, ok := g.destToURI[dest]; !ok {
		return errors.Newf(errors.ErrRepoAccess, "no repository at %s", dest)
	}
	return nil
}

func (g *FakeGit) Tags(ctx context.Context, dest string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "tags "+filepath.Base(dest))

	if err := g.failures["tags"]; err != nil {
		return nil, err
	}
	uri, ok := g.destToURI[dest]
	if !ok {
		return nil, errors.Newf(errors.ErrRepoAccess, "no repository at %s", dest)
	}
	return append([]string(nil), g.repos[uri]...), nil
}

// Checkout writes a REVISION marker file into outputDir so tests can
// assert which version landed where.
func (g *FakeGit) Checkout(ctx context.Context, dest, revision, outputDir string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, "checkout "+filepath.Base(dest)+" "+revision)

	if err := g.failures["checkout"]; err != nil {
		return err
	}
	uri, ok := g.destToURI[dest]
	if !ok {
		return errors.Newf(errors.ErrRepoAccess, "no repository at %s", dest)
	}
	if !containsTag(g.repos[uri], revision) {
		return errors.Newf(errors.ErrRepoAccess, "unknown revision %s in %s", revision, uri)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, "REVISION"), []byte(revision+"\n"), 0644)
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
