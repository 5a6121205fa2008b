package commands

import (
	"path/filepath"

	"github.com/arthur-debert/flavor/pkg/deploy"
	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/flavor"
	"github.com/arthur-debert/flavor/pkg/lockfile"
	"github.com/arthur-debert/flavor/pkg/manifest"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	// ManifestPath is the Flavorfile.toml to read declarations from.
	ManifestPath string
	// LockPath is the Flavorfile.lock to read locked versions from.
	LockPath string
	// VimfilesDir is the editor runtime directory checked for deployed
	// flavors.
	VimfilesDir string
	// FS performs the reads.
	FS filesystem.FS
}

// FlavorState is one row of the joined manifest, lock and deployment
// view.
type FlavorState struct {
	// Name is the source name.
	Name string
	// URI is the canonical repository URI.
	URI string
	// Constraint is the declared constraint text. A declaration
	// without one reads as ">= 0".
	Constraint string
	// Version is the locked version, empty while unlocked.
	Version string
	// Groups the flavor belongs to.
	Groups []string
	// Deployed reports whether the flavor's directory exists under the
	// vimfiles tree.
	Deployed bool
	// Stale marks lock entries whose flavor is no longer declared in
	// the manifest.
	Stale bool
}

// ListResult is the outcome of the List command.
type ListResult struct {
	// Flavors holds declared flavors in declaration order, followed by
	// stale lock entries in URI order.
	Flavors []FlavorState
}

// List joins the manifest, the lock file and the deployment tree into
// one view: what is declared, what version it is pinned to, and
// whether it is currently deployed. Lock entries for flavors that were
// removed from the manifest show up as stale.
func List(opts ListOptions) (*ListResult, error) {
	if opts.ManifestPath == "" || opts.LockPath == "" || opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput,
			"list needs a manifest path, a lock path, and a filesystem")
	}
	log.Debug().Str("command", "list").Msg("Executing command")

	// 1. Read both sides of the join. A missing lock is simply empty.
	mf, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	lock, err := lockfile.Load(opts.FS, opts.LockPath)
	if err != nil {
		return nil, err
	}

	flavorsDir := filepath.Join(opts.VimfilesDir, deploy.FlavorsSubdir)
	isDeployed := func(dirName string) bool {
		if opts.VimfilesDir == "" {
			return false
		}
		_, err := opts.FS.Stat(filepath.Join(flavorsDir, dirName))
		return err == nil
	}

	// 2. Declared flavors, in declaration order.
	result := &ListResult{}
	declared := make(map[string]bool, mf.Len())
	for _, fl := range mf.Flavors() {
		declared[fl.URI] = true
		state := FlavorState{
			Name:       fl.Name,
			URI:        fl.URI,
			Constraint: fl.Constraint.String(),
			Groups:     fl.Groups,
			Deployed:   isDeployed(fl.DirName()),
		}
		if entry, ok := lock.Get(fl.URI); ok {
			state.Version = entry.Version
		}
		result.Flavors = append(result.Flavors, state)
	}

	// 3. Lock entries no longer declared, in URI order.
	for _, uri := range lock.URIs() {
		if declared[uri] {
			continue
		}
		entry, _ := lock.Get(uri)
		result.Flavors = append(result.Flavors, FlavorState{
			Name:       entry.Name,
			URI:        uri,
			Constraint: entry.Constraint,
			Version:    entry.Version,
			Groups:     entry.Groups,
			Deployed:   isDeployed(flavor.ZapName(entry.Name)),
			Stale:      true,
		})
	}

	log.Debug().Int("flavors", len(result.Flavors)).Msg("List assembled")
	return result, nil
}
