// Package uninstall implements the removal command.
package uninstall

import (
	"github.com/cozysoft/reshader/pkg/config"
	"github.com/cozysoft/reshader/pkg/installer"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/paths"
)

// Options defines the options for the Uninstall command.
type Options struct {
	// GamePaths lists the game directories to remove the injector from.
	GamePaths []string
	// All removes from every game directory recorded in the config.
	All bool
}

// Result reports what Uninstall did.
type Result struct {
	// Games holds the game directories that were cleaned.
	Games []string
}

// Uninstall removes the injector links and asset trees from each game
// directory and drops the directories from the config. The shared data
// trees the links pointed at are kept.
func Uninstall(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.uninstall")
	log.Debug().Msg("Executing command")

	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return nil, err
	}

	gamePaths := opts.GamePaths
	if opts.All {
		gamePaths = append([]string{}, cfg.GamePaths...)
	}

	result := &Result{}
	for _, gamePath := range gamePaths {
		normalized, err := paths.NormalizePath(gamePath)
		if err != nil {
			return result, err
		}

		if err := installer.Uninstall(normalized); err != nil {
			return result, err
		}
		result.Games = append(result.Games, normalized)
		cfg.RemoveGamePath(normalized)
	}

	if err := cfg.Save(p.ConfigFilePath()); err != nil {
		return result, err
	}

	log.Info().Int("games", len(result.Games)).Msg("Command finished")
	return result, nil
}
