package main

import (
	"fmt"
	"runtime"

	"github.com/cozysoft/reshader/internal/version"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "reshader",
		Short: "Install and manage ReShade for games running through Wine or Proton",
		Long: `reshader installs the ReShade post-processing injector into game
directories, keeps community shader packs synced into a shared tree, and
installs GShade preset packs. Game directories only ever receive symlinks
into reshader's data directory, so everything is removable in one step.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if runtime.GOOS != "linux" {
				return fmt.Errorf("reshader manages Wine/Proton installs and only runs on Linux")
			}
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand: run the interactive session
			return runSession(ui.New())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command and prints any resulting error
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.New().Error("Error: %v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(uninstallCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("reshader version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate shell completion script",
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}
