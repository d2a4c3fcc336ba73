package main

import (
	"github.com/cozysoft/reshader/pkg/commands/uninstall"
	"github.com/cozysoft/reshader/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	uninstallGames []string
	uninstallAll   bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove ReShade from game directories",
	Long: `Removes the injector links, the compiler dependency, and the shader and
preset links from each game directory. The shared trees in reshader's
data directory and the per-game ReShade.ini are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.New()

		result, err := uninstall.Uninstall(uninstall.Options{
			GamePaths: uninstallGames,
			All:       uninstallAll,
		})
		if err != nil {
			return err
		}

		for _, game := range result.Games {
			out.Success("Removed ReShade from %s", ui.Path(game))
		}
		return nil
	},
}

func init() {
	uninstallCmd.Flags().StringArrayVar(&uninstallGames, "game", nil, "Game directory to clean (repeatable)")
	uninstallCmd.Flags().BoolVar(&uninstallAll, "all", false, "Clean every recorded game directory")
}
