package main

import (
	"fmt"

	"github.com/cozysoft/reshader/pkg/commands/presets"
	"github.com/cozysoft/reshader/pkg/ui"
	"github.com/spf13/cobra"
)

var (
	presetsZip      string
	presetsShaders  string
	presetsGames    []string
	presetsAllGames bool
)

var presetsCmd = &cobra.Command{
	Use:   "install-presets",
	Short: "Install GShade preset and shader packs into game directories",
	Long: `Merges locally downloaded GShade preset and shader archives into
reshader's shared trees and links those trees into the given game
directories. See 'reshader guide' for where to get the archives.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := ui.New()

		result, err := presets.Install(presets.Options{
			PresetsZip: presetsZip,
			ShadersZip: presetsShaders,
			GamePaths:  presetsGames,
			All:        presetsAllGames,
		})
		if err != nil {
			return err
		}

		for _, game := range result.Games {
			out.Success("Linked presets into %s", ui.Path(game))
		}
		return nil
	},
}

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the GShade preset installation walkthrough",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(ui.New().PresetGuide())
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsZip, "presets", "", "Path to the GShade preset archive")
	presetsCmd.Flags().StringVar(&presetsShaders, "shaders", "", "Path to the GShade shader archive")
	presetsCmd.Flags().StringArrayVar(&presetsGames, "game", nil, "Game directory to link into (repeatable)")
	presetsCmd.Flags().BoolVar(&presetsAllGames, "all", false, "Link into every recorded game directory")
}
