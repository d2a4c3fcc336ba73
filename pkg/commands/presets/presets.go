// Package presets implements the GShade preset installation command.
package presets

import (
	"os"

	"github.com/cozysoft/reshader/pkg/config"
	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/installer"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/paths"
)

// Options defines the options for the Install command.
type Options struct {
	// PresetsZip is the local GShade preset archive to install from.
	// Empty means the shared preset tree is already populated.
	PresetsZip string
	// ShadersZip is the local GShade shader archive to install from.
	ShadersZip string
	// GamePaths lists the game directories to link the trees into.
	GamePaths []string
	// All links into every game directory recorded in the config.
	All bool
}

// Result reports what Install did.
type Result struct {
	// Games holds the game directories the preset trees were linked into.
	Games []string
}

// Install merges the given preset and shader archives into the shared
// trees and links both trees into the selected game directories.
func Install(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.presets")
	log.Debug().Msg("Executing command")

	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	if (opts.PresetsZip == "") != (opts.ShadersZip == "") {
		return nil, errors.New(errors.ErrInvalidInput, "preset and shader archives must be given together")
	}
	if opts.PresetsZip != "" {
		if err := installer.InstallPresetArchives(p, opts.PresetsZip, opts.ShadersZip); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return nil, err
	}

	gamePaths := opts.GamePaths
	if opts.All {
		gamePaths = cfg.GamePaths
	}

	result := &Result{}
	for _, gamePath := range gamePaths {
		normalized, err := paths.NormalizePath(gamePath)
		if err != nil {
			return result, err
		}

		info, err := os.Stat(normalized)
		if err != nil || !info.IsDir() {
			return result, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", normalized)
		}

		if err := installer.InstallPresets(p, normalized); err != nil {
			return result, err
		}
		result.Games = append(result.Games, normalized)
		cfg.AddGamePath(normalized)
	}

	if err := cfg.Save(p.ConfigFilePath()); err != nil {
		return result, err
	}

	log.Info().Int("games", len(result.Games)).Msg("Command finished")
	return result, nil
}
