package flavor

import (
	"context"
	"os"
	"path/filepath"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/helptags"
	"github.com/arthur-debert/flavor/pkg/logging"
	"github.com/arthur-debert/flavor/pkg/vcs"
	"github.com/arthur-debert/flavor/pkg/version"
)

var log = logging.GetLogger("flavor")

// CachePath returns the flavor's local repository cache directory under
// cacheRoot.
func (f *Flavor) CachePath(cacheRoot string) string {
	return filepath.Join(cacheRoot, f.DirName())
}

// EnsureCloned clones the flavor's repository into its cache path if no
// cache exists yet. The cache lives on the real filesystem since git
// operates on it directly.
func (f *Flavor) EnsureCloned(ctx context.Context, git vcs.Client, cacheRoot string) error {
	cachePath := f.CachePath(cacheRoot)
	if _, err := os.Stat(cachePath); err == nil {
		return nil
	}

	log.Info().Str("flavor", f.Name).Str("uri", f.URI).Msg("Cloning repository")
	if err := git.Clone(ctx, f.URI, cachePath); err != nil {
		return errors.Wrapf(err, errors.ErrRepoAccess, "cloning %s", f.Name).
			WithDetail("uri", f.URI)
	}
	return nil
}

// FetchUpdates refreshes the cache's view of the remote's tags.
func (f *Flavor) FetchUpdates(ctx context.Context, git vcs.Client, cacheRoot string) error {
	log.Debug().Str("flavor", f.Name).Msg("Fetching updates")
	if err := git.Fetch(ctx, f.CachePath(cacheRoot)); err != nil {
		return errors.Wrapf(err, errors.ErrRepoAccess, "fetching %s", f.Name).
			WithDetail("uri", f.URI)
	}
	return nil
}

// AvailableVersions lists the versions published as tags in the
// flavor's cache. Tags that do not parse as versions are skipped.
func (f *Flavor) AvailableVersions(ctx context.Context, git vcs.Client, cacheRoot string) ([]version.Version, error) {
	tags, err := git.Tags(ctx, f.CachePath(cacheRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepoAccess, "listing tags of %s", f.Name).
			WithDetail("uri", f.URI)
	}

	versions := make([]version.Version, 0, len(tags))
	for _, tag := range tags {
		v, err := version.Parse(tag)
		if err != nil {
			log.Debug().Str("flavor", f.Name).Str("tag", tag).Msg("Skipping non-version tag")
			continue
		}
		versions = append(versions, v)
	}
	return versions, nil
}

// CheckoutTo materializes the locked version into outputPath and then
// rebuilds the help index. Indexing is best-effort: a failure is logged
// and swallowed, a plugin with broken help text still deploys.
func (f *Flavor) CheckoutTo(ctx context.Context, git vcs.Client, indexer helptags.Indexer, cacheRoot, outputPath string) error {
	if !f.Locked() {
		return errors.Newf(errors.ErrInternal, "flavor %s has no locked version to deploy", f.Name)
	}

	log.Info().
		Str("flavor", f.Name).
		Str("version", f.LockedVersion.String()).
		Str("path", outputPath).
		Msg("Deploying")

	if err := git.Checkout(ctx, f.CachePath(cacheRoot), f.LockedVersion.String(), outputPath); err != nil {
		return errors.Wrapf(err, errors.ErrDeployment, "deploying %s %s", f.Name, f.LockedVersion).
			WithDetail("uri", f.URI).
			WithDetail("path", outputPath)
	}

	if err := indexer.Rebuild(ctx, outputPath); err != nil {
		log.Warn().Err(err).Str("flavor", f.Name).Msg("Help indexing failed")
	}
	return nil
}

// RemoveFrom deletes the flavor's deployed directory. Removing an
// absent directory succeeds.
func (f *Flavor) RemoveFrom(fs filesystem.FS, outputPath string) error {
	if err := fs.RemoveAll(outputPath); err != nil {
		return errors.Wrapf(err, errors.ErrDeployment, "removing deployed %s", f.Name).
			WithDetail("path", outputPath)
	}
	return nil
}
