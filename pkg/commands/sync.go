package commands

import (
	"context"

	"github.com/arthur-debert/flavor/pkg/deploy"
	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/flavor"
	"github.com/arthur-debert/flavor/pkg/helptags"
	"github.com/arthur-debert/flavor/pkg/lockfile"
	"github.com/arthur-debert/flavor/pkg/logging"
	"github.com/arthur-debert/flavor/pkg/manifest"
	"github.com/arthur-debert/flavor/pkg/reconcile"
	"github.com/arthur-debert/flavor/pkg/vcs"
)

var log = logging.GetLogger("commands")

// Action says what happened to one flavor during a sync, relative to
// the prior lock file.
type Action string

const (
	// ActionAdded means the flavor had no prior lock entry.
	ActionAdded Action = "added"

	// ActionKept means the locked version did not change.
	ActionKept Action = "kept"

	// ActionUpdated means the locked version changed.
	ActionUpdated Action = "updated"
)

// FlavorReport describes the outcome for one declared flavor.
type FlavorReport struct {
	// Name is the source name as declared in the manifest.
	Name string
	// URI is the canonical repository URI.
	URI string
	// Version is the locked version after the sync.
	Version string
	// Previous is the version locked before the sync, empty for added
	// flavors.
	Previous string
	// Groups the flavor belongs to.
	Groups []string
	// Action relates the new lock entry to the prior one.
	Action Action
	// Deployed is false when every group of the flavor was excluded
	// from deployment.
	Deployed bool
}

// SyncResult is the outcome of an Install or Upgrade run.
type SyncResult struct {
	// Flavors holds one report per declared flavor, in declaration
	// order.
	Flavors []FlavorReport
	// LockPath is the lock file that was written.
	LockPath string
}

// SyncOptions defines the options shared by Install and Upgrade.
type SyncOptions struct {
	// ManifestPath is the Flavorfile.toml to sync from.
	ManifestPath string
	// LockPath is the Flavorfile.lock read before and written after
	// reconciliation.
	LockPath string
	// VimfilesDir is the editor runtime directory flavors deploy into.
	VimfilesDir string
	// CacheRoot holds the per-flavor repository caches.
	CacheRoot string
	// Git performs repository operations.
	Git vcs.Client
	// Indexer rebuilds help indices after checkouts.
	Indexer helptags.Indexer
	// FS performs lock and deployment tree writes.
	FS filesystem.FS
	// Concurrency caps parallel repository refreshes. Zero selects the
	// reconciler's default.
	Concurrency int
	// Without lists group names excluded from deployment. Exclusion
	// never affects what gets locked.
	Without []string
}

// Install brings the editor runtime tree in sync with the manifest.
// Flavors whose constraint is unchanged keep their locked version;
// everything else is resolved against fresh repository tags. The lock
// file is written only after every flavor has resolved.
func Install(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	return runSync(ctx, opts, reconcile.ModeInstall)
}

// Upgrade re-resolves every declared flavor against fresh repository
// tags, ignoring previously locked versions, then deploys the result.
func Upgrade(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	return runSync(ctx, opts, reconcile.ModeUpgradeAll)
}

func runSync(ctx context.Context, opts SyncOptions, mode reconcile.Mode) (*SyncResult, error) {
	if opts.ManifestPath == "" || opts.LockPath == "" || opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput,
			"sync needs a manifest path, a lock path, and a filesystem")
	}
	log.Debug().
		Str("command", mode.String()).
		Str("manifest", opts.ManifestPath).
		Msg("Executing command")

	// 1. Parse the manifest.
	mf, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	// 2. Load the prior lock. A missing file loads as an empty lock.
	prior, err := lockfile.Load(opts.FS, opts.LockPath)
	if err != nil {
		return nil, err
	}

	// 3. Resolve a version for every declared flavor. Any failure
	// aborts before the lock is touched.
	lock, err := reconcile.Reconcile(ctx, reconcile.Options{
		Manifest:    mf,
		Lock:        prior,
		Mode:        mode,
		Git:         opts.Git,
		CacheRoot:   opts.CacheRoot,
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		return nil, err
	}

	// 4. Persist the new lock before deploying, so a later install can
	// redeploy the same versions without touching the network.
	if err := lock.Save(opts.FS, opts.LockPath); err != nil {
		return nil, err
	}

	// 5. Rebuild the deployment tree.
	flavors := mf.Flavors()
	if err := deploy.Deploy(ctx, deploy.Options{
		Flavors:      flavors,
		VimfilesRoot: opts.VimfilesDir,
		CacheRoot:    opts.CacheRoot,
		Git:          opts.Git,
		Indexer:      opts.Indexer,
		FS:           opts.FS,
		Without:      opts.Without,
	}); err != nil {
		return nil, err
	}

	return &SyncResult{
		Flavors:  buildReports(flavors, prior, opts.Without),
		LockPath: opts.LockPath,
	}, nil
}

// buildReports relates each synced flavor to its prior lock entry.
func buildReports(flavors []*flavor.Flavor, prior *lockfile.Lock, without []string) []FlavorReport {
	deployed := make(map[string]bool, len(flavors))
	for _, fl := range deploy.Select(flavors, without) {
		deployed[fl.URI] = true
	}

	reports := make([]FlavorReport, 0, len(flavors))
	for _, fl := range flavors {
		report := FlavorReport{
			Name:     fl.Name,
			URI:      fl.URI,
			Version:  fl.LockedVersion.String(),
			Groups:   fl.Groups,
			Action:   ActionAdded,
			Deployed: deployed[fl.URI],
		}
		if entry, ok := prior.Get(fl.URI); ok {
			report.Previous = entry.Version
			if entry.Version == report.Version {
				report.Action = ActionKept
			} else {
				report.Action = ActionUpdated
			}
		}
		reports = append(reports, report)
	}
	return reports
}
