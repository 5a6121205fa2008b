// Package reconcile decides a locked version for every flavor a
// manifest declares. Prior lock entries are kept verbatim when nothing
// about them changed; everything else is recomputed against freshly
// fetched repository tags. The package never persists anything: the
// caller saves the resulting lock only after the whole run succeeds,
// so a failure leaves any prior lock file untouched.
package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/flavor"
	"github.com/arthur-debert/flavor/pkg/lockfile"
	"github.com/arthur-debert/flavor/pkg/logging"
	"github.com/arthur-debert/flavor/pkg/manifest"
	"github.com/arthur-debert/flavor/pkg/vcs"
	"github.com/arthur-debert/flavor/pkg/version"
)

var log = logging.GetLogger("reconcile")

// Mode selects how prior lock entries are treated.
type Mode int

const (
	// ModeInstall keeps a prior locked version when its constraint is
	// unchanged, touching no repository for that flavor.
	ModeInstall Mode = iota

	// ModeUpgradeAll recomputes every flavor against fresh tags,
	// ignoring prior locked versions.
	ModeUpgradeAll
)

func (m Mode) String() string {
	if m == ModeUpgradeAll {
		return "upgrade-all"
	}
	return "install"
}

// DefaultConcurrency bounds parallel repository refreshes when Options
// leaves Concurrency unset.
const DefaultConcurrency = 4

// Options carries the inputs of one reconciliation run.
type Options struct {
	// Manifest holds the declared flavors, in declaration order.
	Manifest *manifest.Manifest

	// Lock is the prior lock. Nil means no lock exists yet.
	Lock *lockfile.Lock

	// Mode decides whether unchanged entries are kept or recomputed.
	Mode Mode

	// Git performs repository operations for recomputed flavors.
	Git vcs.Client

	// CacheRoot is the directory holding per-flavor repository caches.
	CacheRoot string

	// Concurrency caps parallel repository refreshes. Zero or negative
	// selects DefaultConcurrency.
	Concurrency int
}

// Reconcile resolves a version for every declared flavor and returns
// the new lock, which contains exactly the manifest's URIs. Entries
// absent from the manifest are dropped; entry groups and constraints
// always come from the manifest, never from the old lock. The
// manifest's flavors are annotated with their resolved versions, ready
// for deployment.
//
// A flavor keeps its locked version only in install mode, when a prior
// entry exists and its recorded constraint equals the declared one;
// keeping involves no repository access. Any failure aborts the whole
// run with no usable lock.
func Reconcile(ctx context.Context, opts Options) (*lockfile.Lock, error) {
	if opts.Manifest == nil || opts.Git == nil || opts.CacheRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"reconciliation needs a manifest, a git client, and a cache root")
	}
	defer logging.LogOperationStart(log, "reconcile")()

	prior := opts.Lock
	if prior == nil {
		prior = lockfile.New()
	}

	flavors := opts.Manifest.Flavors()
	pending := make([]*flavor.Flavor, 0, len(flavors))
	for _, fl := range flavors {
		if kept, ok := keptVersion(fl, prior, opts.Mode); ok {
			log.Debug().
				Str("flavor", fl.Name).
				Str("version", kept.String()).
				Msg("Keeping locked version")
			fl.LockedVersion = kept
			continue
		}
		pending = append(pending, fl)
	}

	log.Info().
		Str("mode", opts.Mode.String()).
		Int("declared", len(flavors)).
		Int("kept", len(flavors)-len(pending)).
		Int("recomputing", len(pending)).
		Msg("Reconciling flavors")

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	// URIs are unique within a manifest and directory-name collisions
	// are rejected at manifest build, so each goroutine has its cache
	// directory to itself.
	resolved := make(map[string]version.Version, len(pending))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, fl := range pending {
		eg.Go(func() error {
			best, err := resolve(ctx, fl, opts.Git, opts.CacheRoot)
			if err != nil {
				return err
			}
			mu.Lock()
			resolved[fl.URI] = best
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	lock := lockfile.New()
	for _, fl := range flavors {
		if best, ok := resolved[fl.URI]; ok {
			fl.LockedVersion = best
		}
		lock.Set(fl.URI, lockfile.Entry{
			Name:       fl.Name,
			Groups:     fl.Groups,
			Version:    fl.LockedVersion.String(),
			Constraint: fl.Constraint.String(),
		})
	}
	return lock, nil
}

// keptVersion reports whether fl's prior locked version survives this
// run, and what it is. The recorded constraint must compare equal to
// the declared one structurally; a constraint or version that no
// longer parses counts as drift and forces a recompute.
func keptVersion(fl *flavor.Flavor, prior *lockfile.Lock, mode Mode) (version.Version, bool) {
	if mode == ModeUpgradeAll {
		return version.Version{}, false
	}
	entry, ok := prior.Get(fl.URI)
	if !ok {
		return version.Version{}, false
	}
	locked, err := version.ParseConstraint(entry.Constraint)
	if err != nil || !locked.Equal(fl.Constraint) {
		return version.Version{}, false
	}
	v, err := version.Parse(entry.Version)
	if err != nil {
		log.Warn().
			Str("flavor", fl.Name).
			Str("locked_version", entry.Version).
			Msg("Locked version does not parse, recomputing")
		return version.Version{}, false
	}
	return v, true
}

// resolve refreshes fl's repository cache and picks the highest tag
// satisfying its constraint.
func resolve(ctx context.Context, fl *flavor.Flavor, git vcs.Client, cacheRoot string) (version.Version, error) {
	if err := fl.EnsureCloned(ctx, git, cacheRoot); err != nil {
		return version.Version{}, err
	}
	if err := fl.FetchUpdates(ctx, git, cacheRoot); err != nil {
		return version.Version{}, err
	}
	available, err := fl.AvailableVersions(ctx, git, cacheRoot)
	if err != nil {
		return version.Version{}, err
	}

	best, ok := fl.Constraint.BestMatch(available)
	if !ok {
		return version.Version{}, errors.Newf(errors.ErrUnresolvable,
			"no version of %s satisfies %q", fl.Name, fl.Constraint.String()).
			WithDetail("uri", fl.URI).
			WithDetail("available_versions", len(available))
	}

	log.Debug().
		Str("flavor", fl.Name).
		Str("version", best.String()).
		Msg("Resolved version")
	return best, nil
}
