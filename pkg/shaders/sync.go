package shaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cozysoft/reshader/pkg/archive"
	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/fetch"
	"github.com/cozysoft/reshader/pkg/git"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/paths"
)

const (
	shadersSubdir  = "Shaders"
	texturesSubdir = "Textures"
)

// Syncer rebuilds the merged shader tree from its configured sources
type Syncer struct {
	paths  *paths.Paths
	client *fetch.Client
}

// NewSyncer creates a Syncer over the given path layout and HTTP client
func NewSyncer(p *paths.Paths, client *fetch.Client) *Syncer {
	return &Syncer{paths: p, client: client}
}

// SyncRepos clones or updates every source repository and merges their
// Shaders/Textures subtrees into the merged tree. Later sources overwrite
// same-named files from earlier ones.
func (s *Syncer) SyncRepos(sources []Source) error {
	log := logging.GetLogger("shaders.sync")

	if err := os.MkdirAll(s.paths.ReposDir(), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", s.paths.ReposDir())
	}

	for _, src := range sources {
		repoDir := s.paths.RepoDir(src.Name)

		if _, err := os.Stat(repoDir); os.IsNotExist(err) {
			if err := git.Clone(src.URL, repoDir, src.Branch); err != nil {
				return err
			}
		} else {
			if err := git.Pull(repoDir, src.Branch); err != nil {
				return err
			}
		}

		if err := s.mergeSource(src, repoDir); err != nil {
			return err
		}
		log.Info().Str("source", src.Name).Msg("Source merged")
	}

	return s.ensureIntermediate()
}

// mergeSource copies a source's Shaders and Textures subtrees into the
// merged tree. Essential sources land at the tree root; optional sources
// get a name-scoped Shaders subdirectory while textures stay shared.
func (s *Syncer) mergeSource(src Source, repoDir string) error {
	shadersDst := filepath.Join(s.paths.MergedDir(), shadersSubdir)
	if !src.Essential {
		shadersDst = filepath.Join(shadersDst, src.Name)
	}

	shadersSrc := filepath.Join(repoDir, shadersSubdir)
	if _, err := os.Stat(shadersSrc); err == nil {
		if err := os.MkdirAll(shadersDst, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", shadersDst)
		}
		if err := CopyTree(shadersSrc, shadersDst); err != nil {
			return err
		}
	}

	texturesSrc := filepath.Join(repoDir, texturesSubdir)
	texturesDst := filepath.Join(s.paths.MergedDir(), texturesSubdir)
	if _, err := os.Stat(texturesSrc); err == nil {
		if err := os.MkdirAll(texturesDst, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", texturesDst)
		}
		if err := CopyTree(texturesSrc, texturesDst); err != nil {
			return err
		}
	}

	return nil
}

// DownloadCollections downloads each collection archive to a cleared zips
// scratch directory, unpacks it, and copies its Shaders/Textures folders
// to the manifest-declared install paths under the data directory.
func (s *Syncer) DownloadCollections(cols []Collection) error {
	log := logging.GetLogger("shaders.collections")

	zipsDir := s.paths.ZipsDir()
	if err := os.RemoveAll(zipsDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to clear %s", zipsDir)
	}
	if err := os.MkdirAll(zipsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", zipsDir)
	}

	for _, col := range cols {
		zipPath := filepath.Join(zipsDir, fmt.Sprintf("%s.zip", col.Name))
		if err := s.client.Download(col.DownloadURL, zipPath); err != nil {
			return err
		}

		rootDir, err := archive.Unpack(zipPath, zipsDir)
		if err != nil {
			return err
		}

		if err := s.installCollection(col, filepath.Join(zipsDir, rootDir)); err != nil {
			return err
		}
		log.Info().Str("collection", col.Name).Msg("Collection installed")
	}

	return s.ensureIntermediate()
}

// installCollection copies the unpacked collection's Shaders and Textures
// folders to their install paths, overwriting existing files.
func (s *Syncer) installCollection(col Collection, rootDir string) error {
	shadersDst := filepath.Join(s.paths.DataDir(), col.InstallPath)
	texturesDst := filepath.Join(s.paths.DataDir(), col.TextureInstallPath)

	for _, dst := range []string{shadersDst, texturesDst} {
		if err := os.MkdirAll(dst, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dst)
		}
	}

	shadersSrc := filepath.Join(rootDir, shadersSubdir)
	if _, err := os.Stat(shadersSrc); err == nil {
		if err := CopyTree(shadersSrc, shadersDst); err != nil {
			return err
		}
	}

	texturesSrc := filepath.Join(rootDir, texturesSubdir)
	if _, err := os.Stat(texturesSrc); err == nil {
		if err := CopyTree(texturesSrc, texturesDst); err != nil {
			return err
		}
	}

	return nil
}

// ensureIntermediate makes sure the merged tree carries its Intermediate
// working directory
func (s *Syncer) ensureIntermediate() error {
	intermediate := filepath.Join(s.paths.MergedDir(), "Intermediate")
	if err := os.MkdirAll(intermediate, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", intermediate)
	}
	return nil
}
