// Package install implements the injector installation command.
package install

import (
	"os"

	"github.com/cozysoft/reshader/pkg/config"
	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/fetch"
	"github.com/cozysoft/reshader/pkg/installer"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/paths"
)

// Options defines the options for the Install command.
type Options struct {
	// Vanilla selects the injector build without addon support.
	Vanilla bool
	// Version pins an injector version instead of resolving the latest tag.
	Version string
	// InstallerPath uses a local installer executable instead of downloading.
	InstallerPath string
	// GamePaths lists the game directories to install into.
	GamePaths []string
	// Releases describes where installers and tags are fetched from.
	// The zero value means the public release endpoints.
	Releases fetch.Releases
}

// Result reports what Install did.
type Result struct {
	// Games holds the normalized game directories the injector was linked into.
	Games []string
}

// Install downloads the requested injector variant into the data directory
// and links it into each game directory. Game directories are recorded in
// the config so later preset and uninstall runs can offer them.
func Install(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.install")
	log.Debug().Bool("vanilla", opts.Vanilla).Str("version", opts.Version).Msg("Executing command")

	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	rel := opts.Releases
	if rel == (fetch.Releases{}) {
		rel = fetch.DefaultReleases()
	}

	client := fetch.NewClient()
	if err := installer.DownloadReshade(client, rel, p, opts.Vanilla, opts.Version, opts.InstallerPath); err != nil {
		log.Error().Err(err).Msg("Injector download failed")
		return nil, err
	}

	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, gamePath := range opts.GamePaths {
		normalized, err := paths.NormalizePath(gamePath)
		if err != nil {
			return result, err
		}

		info, err := os.Stat(normalized)
		if err != nil || !info.IsDir() {
			return result, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", normalized)
		}

		if err := installer.InstallInjector(p, normalized, opts.Vanilla); err != nil {
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
