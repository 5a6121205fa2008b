package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/flavor/pkg/commands"
	"github.com/arthur-debert/flavor/pkg/config"
	"github.com/arthur-debert/flavor/pkg/filesystem"
	"github.com/arthur-debert/flavor/pkg/helptags"
	"github.com/arthur-debert/flavor/pkg/paths"
	"github.com/arthur-debert/flavor/pkg/vcs"
)

// runtime bundles the collaborators every command runs with. It is
// assembled per invocation; nothing here is global.
type runtime struct {
	cfg     *config.Config
	paths   paths.Paths
	git     vcs.Client
	indexer helptags.Indexer
	fs      filesystem.FS
}

// runtimeFromCmd reads the persistent location flags off the root
// command and assembles the runtime.
func runtimeFromCmd(cmd *cobra.Command) (*runtime, error) {
	vimfilesDir, _ := cmd.Root().PersistentFlags().GetString("vimfiles-dir")
	manifestPath, _ := cmd.Root().PersistentFlags().GetString("manifest")
	return buildRuntime(vimfilesDir, manifestPath)
}

// buildRuntime resolves configuration and paths and wires the external
// collaborators. Explicit flag values win over configured locations,
// which win over environment fallbacks and defaults.
func buildRuntime(vimfilesDir, manifestPath string) (*runtime, error) {
	// The config file location is fixed by XDG, so resolve paths once
	// to find it, then again with any configured location overrides.
	boot, err := paths.New(vimfilesDir, manifestPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(boot.ConfigFilePath())
	if err != nil {
		return nil, err
	}

	if vimfilesDir == "" {
		vimfilesDir = cfg.Locations.Vimfiles
	}
	if manifestPath == "" {
		manifestPath = cfg.Locations.Manifest
	}
	p, err := paths.New(vimfilesDir, manifestPath)
	if err != nil {
		return nil, err
	}

	var indexer helptags.Indexer = helptags.Noop{}
	if cfg.Vim.Helptags {
		indexer = helptags.NewVimIndexer(cfg.Vim.Binary, cfg.Vim.Timeout)
	}

	return &runtime{
		cfg:     cfg,
		paths:   p,
		git:     vcs.NewGitClient(cfg.Git.Binary, cfg.Git.Timeout),
		indexer: indexer,
		fs:      filesystem.NewOS(),
	}, nil
}

// cacheRoot is the directory repository clones live under.
func (rt *runtime) cacheRoot() string {
	if rt.cfg.Locations.Cache != "" {
		return rt.cfg.Locations.Cache
	}
	return rt.paths.ReposDir()
}

// syncOptions assembles the options Install and Upgrade share.
func (rt *runtime) syncOptions(without []string) commands.SyncOptions {
	return commands.SyncOptions{
		ManifestPath: rt.paths.ManifestPath(),
		LockPath:     rt.paths.LockfilePath(),
		VimfilesDir:  rt.paths.VimfilesDir(),
		CacheRoot:    rt.cacheRoot(),
		Git:          rt.git,
		Indexer:      rt.indexer,
		FS:           rt.fs,
		Concurrency:  rt.cfg.Install.Concurrency,
		Without:      without,
	}
}
