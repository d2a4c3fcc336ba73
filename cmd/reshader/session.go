package main

import (
	"fmt"

	"github.com/cozysoft/reshader/pkg/commands/install"
	"github.com/cozysoft/reshader/pkg/commands/presets"
	"github.com/cozysoft/reshader/pkg/commands/sync"
	"github.com/cozysoft/reshader/pkg/commands/uninstall"
	"github.com/cozysoft/reshader/pkg/config"
	"github.com/cozysoft/reshader/pkg/paths"
	"github.com/cozysoft/reshader/pkg/ui"
)

const (
	menuInstallAddon   = "Install ReShade (with addon support)"
	menuInstallVanilla = "Install ReShade (vanilla)"
	menuSyncShaders    = "Sync shader sources"
	menuInstallPresets = "Install GShade presets"
	menuShowGuide      = "Show the GShade preset guide"
	menuUninstall      = "Uninstall ReShade from a game"
	menuQuit           = "Quit"
)

// runSession drives the interactive menu. Each action runs to completion
// and returns to the menu; errors are shown but never end the session.
func runSession(out *ui.UI) error {
	if !out.Interactive() {
		return fmt.Errorf("no terminal detected; use the subcommands instead (see reshader --help)")
	}

	for {
		choice, err := out.Select("What would you like to do?", []string{
			menuInstallAddon,
			menuInstallVanilla,
			menuSyncShaders,
			menuInstallPresets,
			menuShowGuide,
			menuUninstall,
			menuQuit,
		})
		if err != nil {
			return err
		}

		switch choice {
		case menuInstallAddon:
			err = sessionInstall(out, false)
		case menuInstallVanilla:
			err = sessionInstall(out, true)
		case menuSyncShaders:
			err = sessionSync(out)
		case menuInstallPresets:
			err = sessionPresets(out)
		case menuShowGuide:
			fmt.Print(out.PresetGuide())
		case menuUninstall:
			err = sessionUninstall(out)
		case menuQuit:
			return nil
		}

		if err != nil {
			out.Error("%v", err)
		}
	}
}

// pickGames lets the user choose among recorded game directories or type
// a new one. An empty answer means the user backed out.
func pickGames(out *ui.UI, prompt string) ([]string, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return nil, err
	}

	if len(cfg.GamePaths) == 0 {
		game, err := out.Input(prompt)
		if err != nil {
			return nil, err
		}
		if game == "" {
			return nil, nil
		}
		return []string{game}, nil
	}

	const otherOption = "Somewhere else..."
	options := append(append([]string{}, cfg.GamePaths...), otherOption)
	selected, err := out.MultiSelect(prompt, options, nil)
	if err != nil {
		return nil, err
	}

	var games []string
	for _, entry := range selected {
		if entry != otherOption {
			games = append(games, entry)
			continue
		}
		game, err := out.Input("Game directory")
		if err != nil {
			return nil, err
		}
		if game != "" {
			games = append(games, game)
		}
	}
	return games, nil
}

func sessionInstall(out *ui.UI, vanilla bool) error {
	games, err := pickGames(out, "Which game directories should get ReShade?")
	if err != nil || len(games) == 0 {
		return err
	}

	result, err := install.Install(install.Options{
		Vanilla:   vanilla,
		GamePaths: games,
	})
	if err != nil {
		return err
	}
	for _, game := range result.Games {
		out.Success("Installed ReShade into %s", ui.Path(game))
	}
	return nil
}

func sessionSync(out *ui.UI) error {
	linkGames, err := out.Confirm("Link the synced shader tree into your games?", true)
	if err != nil {
		return err
	}

	result, err := sync.Sync(sync.Options{LinkGames: linkGames})
	if err != nil {
		return err
	}
	out.Success("Synced %d shader sources and %d collections", result.Sources, result.Collections)
	return nil
}

func sessionPresets(out *ui.UI) error {
	fmt.Print(out.PresetGuide())

	presetsZip, err := out.Input("Path to the GShade preset archive (empty to reuse existing)")
	if err != nil {
		return err
	}

	var shadersZip string
	if presetsZip != "" {
		shadersZip, err = out.Input("Path to the GShade shader archive")
		if err != nil {
			return err
		}
	}

	games, err := pickGames(out, "Which game directories should get the presets?")
	if err != nil || len(games) == 0 {
		return err
	}

	result, err := presets.Install(presets.Options{
		PresetsZip: presetsZip,
		ShadersZip: shadersZip,
		GamePaths:  games,
	})
	if err != nil {
		return err
	}
	for _, game := range result.Games {
		out.Success("Linked presets into %s", ui.Path(game))
	}
	return nil
}

func sessionUninstall(out *ui.UI) error {
	games, err := pickGames(out, "Which game directories should be cleaned?")
	if err != nil || len(games) == 0 {
		return err
	}

	confirmed, err := out.Confirm(fmt.Sprintf("Remove ReShade from %d director(ies)?", len(games)), false)
	if err != nil || !confirmed {
		return err
	}

	result, err := uninstall.Uninstall(uninstall.Options{GamePaths: games})
	if err != nil {
		return err
	}
	for _, game := range result.Games {
		out.Success("Removed ReShade from %s", ui.Path(game))
	}
	return nil
}
