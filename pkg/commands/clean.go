package commands

import (
	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
)

// CleanOptions defines the options for the Clean command.
type CleanOptions struct {
	// CacheRoot is the directory holding per-flavor repository caches.
	CacheRoot string
	// FS performs the removal.
	FS filesystem.FS
}

// CleanResult is the outcome of the Clean command.
type CleanResult struct {
	// CacheRoot is the directory that was cleaned.
	CacheRoot string
	// Removed is false when there was no cache to remove.
	Removed bool
}

// Clean removes the repository cache root. The caches are pure
// derivations of remote repositories, so removing them loses nothing:
// the next install re-clones what it needs. Cleaning an absent cache
// is not an error.
func Clean(opts CleanOptions) (*CleanResult, error) {
	if opts.CacheRoot == "" || opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput,
			"clean needs a cache root and a filesystem")
	}
	log.Debug().Str("command", "clean").Str("cache", opts.CacheRoot).Msg("Executing command")

	result := &CleanResult{CacheRoot: opts.CacheRoot}
	if _, err := opts.FS.Stat(opts.CacheRoot); err != nil {
		log.Debug().Msg("No cache to remove")
		return result, nil
	}

	if err := opts.FS.RemoveAll(opts.CacheRoot); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot remove cache %s", opts.CacheRoot)
	}
	result.Removed = true

	log.Info().Str("cache", opts.CacheRoot).Msg("Repository cache removed")
	return result, nil
}
