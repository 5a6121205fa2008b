// Package paths centralizes every location flavor reads or writes:
// the manifest and the lock beside it, the repository cache under the
// XDG cache directory, and the vimfiles tree deployments target.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/flavor/pkg/deploy"
	"github.com/arthur-debert/flavor/pkg/errors"
	"github.com/arthur-debert/flavor/pkg/lockfile"
	"github.com/arthur-debert/flavor/pkg/manifest"
)

// Environment variable names
const (
	// EnvVimfilesDir overrides the deployment target directory.
	EnvVimfilesDir = "FLAVOR_VIMFILES"

	// EnvManifest overrides the manifest location.
	EnvManifest = "FLAVOR_MANIFEST"

	// EnvCacheDir overrides the XDG cache directory for flavor.
	EnvCacheDir = "FLAVOR_CACHE_DIR"

	// EnvConfigDir overrides the XDG config directory for flavor.
	EnvConfigDir = "FLAVOR_CONFIG_DIR"

	// EnvHome is the standard home directory variable.
	EnvHome = "HOME"
)

// Fixed names under the configurable roots. These are flavor's layout,
// not user-configurable; configurable locations belong in pkg/config.
const (
	// FlavorDirName is the directory name for flavor-specific files
	// under the XDG base directories.
	FlavorDirName = "flavor"

	// ReposDirName is the cache subdirectory holding one repository
	// clone per flavor.
	ReposDirName = "repos"

	// ConfigFileName is the optional configuration file under the
	// config directory.
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file.
	LogFileName = "flavor.log"
)

// Paths provides centralized path management for flavor.
type Paths interface {
	// VimfilesDir is the editor runtime directory deployments target.
	VimfilesDir() string
	// FlavorsDir is the deployment subtree under VimfilesDir.
	FlavorsDir() string
	// BootstrapPath is the generated script inside FlavorsDir.
	BootstrapPath() string
	// ManifestPath is the declaration file, Flavorfile.toml by default.
	ManifestPath() string
	// LockfilePath sits beside the manifest.
	LockfilePath() string
	// CacheDir is flavor's XDG cache directory.
	CacheDir() string
	// ReposDir holds the per-flavor repository caches.
	ReposDir() string
	// ConfigDir is flavor's XDG config directory.
	ConfigDir() string
	// ConfigFilePath is the optional config file inside ConfigDir.
	ConfigFilePath() string
	// StateDir is flavor's XDG state directory.
	StateDir() string
	// LogFilePath is the log file inside StateDir.
	LogFilePath() string
}

type paths struct {
	vimfilesDir  string
	manifestPath string
	xdgConfig    string
	xdgCache     string
	xdgState     string
}

// New resolves all paths from the given explicit values plus the
// environment. An empty vimfilesDir falls back to FLAVOR_VIMFILES and
// then to the conventional runtime directory under the home directory;
// an empty manifestPath falls back to FLAVOR_MANIFEST and then to
// Flavorfile.toml in the working directory.
func New(vimfilesDir, manifestPath string) (Paths, error) {
	p := &paths{}

	if vimfilesDir == "" {
		vimfilesDir = os.Getenv(EnvVimfilesDir)
	}
	if vimfilesDir == "" {
		vimfilesDir = defaultVimfilesDir()
	}
	if err := ValidatePath(vimfilesDir); err != nil {
		return nil, err
	}
	absVimfiles, err := filepath.Abs(SanitizePath(vimfilesDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to get absolute path for vimfiles dir")
	}
	p.vimfilesDir = absVimfiles

	if manifestPath == "" {
		manifestPath = os.Getenv(EnvManifest)
	}
	if manifestPath == "" {
		manifestPath = manifest.DefaultFileName
	}
	if err := ValidatePath(manifestPath); err != nil {
		return nil, err
	}
	absManifest, err := filepath.Abs(SanitizePath(manifestPath))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to get absolute path for manifest")
	}
	p.manifestPath = absManifest

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides.
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, FlavorDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, FlavorDirName)
	}

	// XDG state via env with a manual fallback, the library predates
	// broad state-dir support.
	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, FlavorDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", FlavorDirName)
	}
}

// defaultVimfilesDir picks the conventional runtime directory: ~/.vim,
// or ~/vimfiles when only that exists (the Windows convention).
func defaultVimfilesDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".vim"
	}

	dotVim := filepath.Join(homeDir, ".vim")
	vimfiles := filepath.Join(homeDir, "vimfiles")
	if _, err := os.Stat(dotVim); os.IsNotExist(err) {
		if _, err := os.Stat(vimfiles); err == nil {
			return vimfiles
		}
	}
	return dotVim
}

// expandHome expands ~ to the home directory.
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

func (p *paths) VimfilesDir() string {
	return p.vimfilesDir
}

func (p *paths) FlavorsDir() string {
	return filepath.Join(p.vimfilesDir, deploy.FlavorsSubdir)
}

func (p *paths) BootstrapPath() string {
	return filepath.Join(p.FlavorsDir(), deploy.BootstrapFileName)
}

func (p *paths) ManifestPath() string {
	return p.manifestPath
}

// LockfilePath returns the lock location: Flavorfile.lock beside a
// default-named manifest, <manifest>.lock beside a custom-named one.
func (p *paths) LockfilePath() string {
	dir := filepath.Dir(p.manifestPath)
	if filepath.Base(p.manifestPath) == manifest.DefaultFileName {
		return filepath.Join(dir, lockfile.DefaultFileName)
	}
	return p.manifestPath + ".lock"
}

func (p *paths) CacheDir() string {
	return p.xdgCache
}

func (p *paths) ReposDir() string {
	return filepath.Join(p.xdgCache, ReposDirName)
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
