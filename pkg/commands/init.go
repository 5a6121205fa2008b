package commands

import (
	"path/filepath"

	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/filesystem"
)

// starterManifest is the template Init writes. Everything is commented
// out, so the file loads as an empty manifest until the user declares
// something.
const starterManifest = `# Flavorfile.toml declares the Vim plugins flavor manages.
#
# A bare name resolves to the vim-scripts.org mirror on GitHub,
# owner/repo resolves to GitHub, and a name containing "://" is used
# as the repository URI directly:
#
#   [flavors."kana/vim-textobj-user"]
#   constraint = ">= 0.7"
#
#   [flavors.surround]
#
#   [flavors."git://git.example.com/foo.git"]
#   constraint = "~> 1.2"
#
# Flavors declared inside a group section can be excluded from
# deployment with --without:
#
#   [groups.testing.flavors."kana/vim-vspec"]
#   constraint = ">= 1.8"
#
# Run "flavor install" after editing this file.
`

// InitOptions defines the options for the Init command.
type InitOptions struct {
	// ManifestPath is where the starter Flavorfile.toml is written.
	ManifestPath string
	// FS performs the write.
	FS filesystem.FS
}

// InitResult is the outcome of the Init command.
type InitResult struct {
	// ManifestPath is the file that was created.
	ManifestPath string
}

// Init scaffolds a starter manifest with commented examples. An
// existing manifest is never overwritten.
func Init(opts InitOptions) (*InitResult, error) {
	if opts.ManifestPath == "" || opts.FS == nil {
		return nil, errors.New(errors.ErrInvalidInput,
			"init needs a manifest path and a filesystem")
	}
	log.Debug().Str("command", "init").Str("manifest", opts.ManifestPath).Msg("Executing command")

	if _, err := opts.FS.Stat(opts.ManifestPath); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists,
			"manifest %s already exists", opts.ManifestPath)
	}

	if err := opts.FS.MkdirAll(filepath.Dir(opts.ManifestPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot create directory for %s", opts.ManifestPath)
	}
	if err := opts.FS.WriteFile(opts.ManifestPath, []byte(starterManifest), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot write %s", opts.ManifestPath)
	}

	log.Info().Str("manifest", opts.ManifestPath).Msg("Starter manifest created")
	return &InitResult{ManifestPath: opts.ManifestPath}, nil
}
