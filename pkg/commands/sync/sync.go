// Package sync implements the shader synchronization command.
package sync

import (
	"github.com/cozysoft/reshader/pkg/config"
	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/fetch"
	"github.com/cozysoft/reshader/pkg/git"
	"github.com/cozysoft/reshader/pkg/installer"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/paths"
	"github.com/cozysoft/reshader/pkg/shaders"
)

// Options defines the options for the Sync command.
type Options struct {
	// SkipCollections leaves the zip-distributed shader collections alone
	// and only syncs the git-hosted sources.
	SkipCollections bool
	// LinkGames links the merged shader tree into every recorded game
	// directory after syncing.
	LinkGames bool
}

// Result reports what Sync did.
type Result struct {
	// Sources is the number of git-hosted shader sources synced.
	Sources int
	// Collections is the number of zip collections installed.
	Collections int
	// Linked holds the game directories the merged tree was linked into.
	Linked []string
}

// Sync clones or updates every shader source, merges them into the shared
// shader tree, and installs the enabled zip collections on top.
func Sync(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.sync")
	log.Debug().Msg("Executing command")

	if !git.IsInstalled() {
		return nil, errors.New(errors.ErrGitMissing, "git is required to sync shader sources")
	}

	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}

	syncer := shaders.NewSyncer(p, fetch.NewClient())
	sources := shaders.Sources()

	if err := syncer.SyncRepos(sources); err != nil {
		return nil, err
	}
	result := &Result{Sources: len(sources)}

	if !opts.SkipCollections {
		cols, err := shaders.LoadCollections()
		if err != nil {
			return result, err
		}
		enabled := shaders.EnabledCollections(cols)
		if err := syncer.DownloadCollections(enabled); err != nil {
			return result, err
		}
		result.Collections = len(enabled)
	}

	if opts.LinkGames {
		cfg, err := config.Load(p.ConfigFilePath())
		if err != nil {
			return result, err
		}
		for _, gamePath := range cfg.GamePaths {
			if err := installer.InstallShaders(p, gamePath); err != nil {
				return result, err
			}
			result.Linked = append(result.Linked, gamePath)
		}
	}

	log.Info().Int("sources", result.Sources).Int("collections", result.Collections).Msg("Command finished")
	return result, nil
}
