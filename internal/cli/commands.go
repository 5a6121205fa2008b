// Package cli assembles flavor's command line interface: the cobra
// command tree, flag handling, and the wiring of configuration, paths
// and external tools into the command layer.
package cli

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/flavor/internal/version"
	"github.com/arthur-debert/flavor/pkg/cobrax/topics"
	"github.com/arthur-debert/flavor/pkg/commands"
	"github.com/arthur-debert/flavor/pkg/logging"
	"github.com/arthur-debert/flavor/pkg/manifest"
	"github.com/arthur-debert/flavor/pkg/style"
)

//go:embed topics
var topicFiles embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity    int
		vimfilesDir  string
		manifestPath string
	)

	rootCmd := &cobra.Command{
		Use:     "flavor",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&vimfilesDir, "vimfiles-dir", "", MsgFlagVimfiles)
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", MsgFlagManifest)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Add all commands
	rootCmd.AddCommand(newInstallCmd())
	rootCmd.AddCommand(newUpgradeCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help: embedded docs served through "flavor help".
	if sub, err := fs.Sub(topicFiles, "topics"); err == nil {
		_ = topics.Initialize(rootCmd, sub, topics.Options{Renderer: topicRenderer()})
	}

	return rootCmd
}

// groupNamesCompletion completes --without values with the group names
// declared in the manifest.
func groupNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	rt, err := runtimeFromCmd(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	mf, err := manifest.Load(rt.paths.ManifestPath())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	seen := make(map[string]bool)
	var groups []string
	for _, fl := range mf.Flavors() {
		for _, g := range fl.Groups {
			if g == manifest.DefaultGroup || seen[g] {
				continue
			}
			seen[g] = true
			groups = append(groups, g)
		}
	}
	sort.Strings(groups)
	return groups, cobra.ShellCompDirectiveNoFileComp
}

func newInstallCmd() *cobra.Command {
	var without []string

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCmd(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("manifest", rt.paths.ManifestPath()).
				Str("vimfiles", rt.paths.VimfilesDir()).
				Strs("without", without).
				Msg("Installing flavors")

			result, err := commands.Install(cmd.Context(), rt.syncOptions(without))
			if err != nil {
				return fmt.Errorf(MsgErrInstall, err)
			}

			renderer := newRenderer(os.Stdout)
			fmt.Println(renderer.RenderSyncReport(toChanges(result.Flavors)))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&without, "without", nil, MsgFlagWithout)
	_ = cmd.RegisterFlagCompletionFunc("without", groupNamesCompletion)

	return cmd
}

func newUpgradeCmd() *cobra.Command {
	var without []string

	cmd := &cobra.Command{
		Use:     "upgrade",
		Short:   MsgUpgradeShort,
		Long:    MsgUpgradeLong,
		Example: MsgUpgradeExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCmd(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("manifest", rt.paths.ManifestPath()).
				Str("vimfiles", rt.paths.VimfilesDir()).
				Strs("without", without).
				Msg("Upgrading flavors")

			result, err := commands.Upgrade(cmd.Context(), rt.syncOptions(without))
			if err != nil {
				return fmt.Errorf(MsgErrUpgrade, err)
			}

			renderer := newRenderer(os.Stdout)
			fmt.Println(renderer.RenderSyncReport(toChanges(result.Flavors)))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&without, "without", nil, MsgFlagWithout)
	_ = cmd.RegisterFlagCompletionFunc("without", groupNamesCompletion)

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCmd(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("manifest", rt.paths.ManifestPath()).Msg("Listing flavors")

			result, err := commands.List(commands.ListOptions{
				ManifestPath: rt.paths.ManifestPath(),
				LockPath:     rt.paths.LockfilePath(),
				VimfilesDir:  rt.paths.VimfilesDir(),
				FS:           rt.fs,
			})
			if err != nil {
				return fmt.Errorf(MsgErrList, err)
			}

			renderer := newRenderer(os.Stdout)
			fmt.Println(renderer.RenderFlavorList(toRows(result.Flavors)))
			return nil
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCmd(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("manifest", rt.paths.ManifestPath()).Msg("Creating starter manifest")

			result, err := commands.Init(commands.InitOptions{
				ManifestPath: rt.paths.ManifestPath(),
				FS:           rt.fs,
			})
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			fmt.Printf(MsgManifestCreated, result.ManifestPath)
			return nil
		},
	}
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		Long:    MsgCleanLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFromCmd(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("cache", rt.cacheRoot()).Msg("Cleaning repository cache")

			result, err := commands.Clean(commands.CleanOptions{
				CacheRoot: rt.cacheRoot(),
				FS:        rt.fs,
			})
			if err != nil {
				return fmt.Errorf(MsgErrClean, err)
			}

			if result.Removed {
				fmt.Printf(MsgCacheRemoved, result.CacheRoot)
			} else {
				fmt.Printf(MsgNoCache, result.CacheRoot)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf(MsgVersionFormat, version.Version)
			if version.Commit != "" {
				fmt.Printf(MsgVersionCommit, version.Commit)
			}
			if version.Date != "" {
				fmt.Printf(MsgVersionDate, version.Date)
			}
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd.Name() != "help" || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			helpCmd.Run(helpCmd, []string{"topics"})
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// toChanges converts sync reports into their display form. A flavor
// excluded from deployment shows as skipped, whatever its lock action.
func toChanges(reports []commands.FlavorReport) []style.FlavorChange {
	changes := make([]style.FlavorChange, 0, len(reports))
	for _, report := range reports {
		var status style.Status
		switch {
		case !report.Deployed:
			status = style.StatusSkipped
		case report.Action == commands.ActionAdded:
			status = style.StatusAdded
		case report.Action == commands.ActionUpdated:
			status = style.StatusUpdated
		default:
			status = style.StatusKept
		}
		changes = append(changes, style.FlavorChange{
			Name:     report.Name,
			Version:  report.Version,
			Previous: report.Previous,
			Status:   status,
		})
	}
	return changes
}

// toRows converts list states into their display form.
func toRows(states []commands.FlavorState) []style.FlavorRow {
	rows := make([]style.FlavorRow, 0, len(states))
	for _, state := range states {
		rows = append(rows, style.FlavorRow{
			Name:       state.Name,
			Constraint: state.Constraint,
			Version:    state.Version,
			Groups:     state.Groups,
			Deployed:   state.Deployed,
			Stale:      state.Stale,
		})
	}
	return rows
}
