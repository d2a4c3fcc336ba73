package main

import (
	"github.com/cozysoft/reshader/pkg/commands/install"
	"github.com/cozysoft/reshader/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	installVanilla   bool
	installVersion   string
	installInstaller string
	installGames     []string
)

var installCmd = &cobra.Command{
	Use:   "install-reshade",
	Short: "Download ReShade and link it into game directories",
	Long: `Downloads the requested ReShade release, extracts the injector library
into reshader's data directory, and links it into each given game
directory as dxgi.dll next to the d3dcompiler_47.dll it needs.

Without --game flags the injector is only downloaded; run again or use
the interactive session to link it into games.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.New()

		result, err := install.Install(install.Options{
			Vanilla:       installVanilla,
			Version:       installVersion,
			InstallerPath: installInstaller,
			GamePaths:     installGames,
		})
		if err != nil {
			return err
		}

		for _, game := range result.Games {
			out.Success("Installed ReShade into %s", ui.Path(game))
		}
		if len(result.Games) == 0 {
			out.Info("ReShade downloaded. Use --game to link it into a game directory.")
		}
		return nil
	},
}

func init() {
	installCmd.Flags().BoolVar(&installVanilla, "vanilla", false, "Install the build without addon support")
	installCmd.Flags().StringVar(&installVersion, "version", "", "Pin a ReShade version instead of using the latest")
	installCmd.Flags().StringVar(&installInstaller, "installer", "", "Use a local ReShade setup executable instead of downloading")
	installCmd.Flags().StringArrayVar(&installGames, "game", nil, "Game directory to install into (repeatable)")
}
