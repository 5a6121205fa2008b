package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A version-aware Vim plugin manager"
	MsgInstallShort    = "Sync declared flavors and deploy them"
	MsgUpgradeShort    = "Upgrade every flavor to its newest satisfying version"
	MsgListShort       = "List declared flavors and their state"
	MsgListLong        = "List shows every declared flavor with its constraint, locked version, groups, and whether it is deployed. Lock entries no longer declared in the manifest are marked as not declared."
	MsgCleanShort      = "Remove the repository cache"
	MsgCleanLong       = "Clean removes the cached repository clones. The caches are rebuilt on demand, so the next install simply re-clones what it needs."
	MsgInitShort       = "Create a starter Flavorfile.toml"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgTopicsShort     = "List available help topics"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgCacheRemoved    = "Removed repository cache at %s\n"
	MsgNoCache         = "No repository cache at %s, nothing to do\n"
	MsgManifestCreated = "Created %s. Declare your plugins there and run \"flavor install\".\n"
	MsgNoCommand       = "no command specified"
	MsgVersionFormat   = "flavor version %s\n"
	MsgVersionCommit   = "Commit: %s\n"
	MsgVersionDate     = "Built:  %s\n"

	// Error messages
	MsgErrInstall = "install failed: %w"
	MsgErrUpgrade = "upgrade failed: %w"
	MsgErrList    = "failed to list flavors: %w"
	MsgErrClean   = "failed to clean cache: %w"
	MsgErrInit    = "failed to create manifest: %w"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVimfiles = "Vimfiles directory to deploy into (default ~/.vim)"
	MsgFlagManifest = "Manifest to read (default ./Flavorfile.toml)"
	MsgFlagWithout  = "Exclude flavors that are only in these groups from deployment"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimSpace(msgInstallExampleRaw)

	//go:embed msgs/upgrade-long.txt
	msgUpgradeLongRaw string
	MsgUpgradeLong    = strings.TrimSpace(msgUpgradeLongRaw)

	//go:embed msgs/upgrade-example.txt
	msgUpgradeExampleRaw string
	MsgUpgradeExample    = strings.TrimSpace(msgUpgradeExampleRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimSpace(msgListExampleRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
