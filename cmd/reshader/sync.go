package main

import (
	"github.com/cozysoft/reshader/pkg/commands/sync"
	"github.com/cozysoft/reshader/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	syncSkipCollections bool
	syncLinkGames       bool
)

var syncCmd = &cobra.Command{
	Use:   "sync-shaders",
	Short: "Clone or update shader sources into the shared shader tree",
	Long: `Clones every configured shader repository on first run and fast-forwards
it afterwards, then merges the results into the shared shader tree games
link against. Zip-distributed collections are downloaded on top unless
--skip-collections is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.New()

		result, err := sync.Sync(sync.Options{
			SkipCollections: syncSkipCollections,
			LinkGames:       syncLinkGames,
		})
		if err != nil {
			return err
		}

		out.Success("Synced %d shader sources and %d collections", result.Sources, result.Collections)
		for _, game := range result.Linked {
			out.Info("Shader tree linked into %s", ui.Path(game))
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncSkipCollections, "skip-collections", false, "Only sync git-hosted sources")
	syncCmd.Flags().BoolVar(&syncLinkGames, "link-games", false, "Link the shader tree into every recorded game directory")
}
