// Package vcs defines the version-control capability the resolver and
// deployer depend on, and its git implementation.
package vcs

import "context"

// Client is the contract against a version-controlled plugin repository.
// Every call either succeeds or returns an error carrying the captured
// diagnostic output of the underlying tool.
type Client interface {
	// Clone clones the remote at uri into dest.
	Clone(ctx context.Context, uri, dest string) error

	// Fetch updates dest's view of remote tags and refs without
	// altering its checked-out working state.
	Fetch(ctx context.Context, dest string) error

	// Tags lists the tag names present in dest.
	Tags(ctx context.Context, dest string) ([]string, error)

	// Checkout places revision's tree from the repository at dest into
	// outputDir, leaving dest checked out at that revision.
	Checkout(ctx context.Context, dest, revision, outputDir string) error
}
