// Package installer places the injector and its companion assets into
// game directories via symlinks, and removes them again. Everything it
// links points back into the program's data directory; the game directory
// only ever holds links, the config ini, and whatever the game shipped
// with.
package installer

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/cozysoft/reshader/pkg/archive"
	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/fetch"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/cozysoft/reshader/pkg/paths"
	"github.com/cozysoft/reshader/pkg/shaders"
)

//go:embed reshade.ini
var defaultIni []byte

// DownloadReshade fetches the injector setup executable (or uses a local
// installer override), carves the injector library out of its embedded
// archive, and stores it in the data directory under the variant-specific
// name. The shared compiler dependency is downloaded next to it. Both
// variants can coexist on disk; only the game-side symlink decides which
// one is active.
func DownloadReshade(client *fetch.Client, rel fetch.Releases, p *paths.Paths, vanilla bool, explicitVersion, specificInstaller string) error {
	log := logging.GetLogger("installer.download")

	tmpDir, err := os.MkdirTemp("", "reshader-downloads")
	if err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create download directory")
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	installerPath := specificInstaller
	if installerPath == "" {
		version, err := client.ResolveVersion(rel, explicitVersion)
		if err != nil {
			return err
		}
		url := rel.InstallerURL(version, vanilla)
		log.Info().Str("version", version).Bool("vanilla", vanilla).Msg("Downloading injector installer")

		installerPath = filepath.Join(tmpDir, "reshade.exe")
		if err := client.Download(url, installerPath); err != nil {
			return err
		}
	}

	data, err := archive.ExtractEntry(installerPath, paths.InjectorEntryName)
	if err != nil {
		return err
	}

	libraryPath := p.LibraryPath(vanilla)
	if err := os.WriteFile(libraryPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", libraryPath)
	}
	log.Debug().Str("path", libraryPath).Msg("Injector library stored")

	// the compiler dependency is a plain download, not part of the installer
	if err := client.Download(rel.DependencyURL, p.DependencyPath()); err != nil {
		return err
	}

	return nil
}

// linkAsset creates a symlink at linkPath pointing to target. An existing
// symlink in the slot is replaced; anything else in the slot is a conflict
// and is left untouched.
func linkAsset(target, linkPath string, replace bool) error {
	info, err := os.Lstat(linkPath)
	switch {
	case err == nil && info.Mode()&os.ModeSymlink == 0:
		return errors.Newf(errors.ErrSymlinkConflict, "%s already exists and is not a symlink", linkPath).
			WithDetail("path", linkPath)
	case err == nil && !replace:
		// already linked: no-op
		return nil
	case err == nil:
		if err := os.Remove(linkPath); err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to replace link %s", linkPath)
		}
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", linkPath)
	}

	if err := os.Symlink(target, linkPath); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "could not symlink %s to %s", target, linkPath)
	}
	return nil
}

// InstallInjector links the variant-specific injector library into the
// game directory's loader slot and links the shared compiler dependency
// beside it. A default config ini is written if the game has none yet.
// Repeating the install for the same variant is a no-op; an existing
// symlink of the other variant is swapped out.
func InstallInjector(p *paths.Paths, gamePath string, vanilla bool) error {
	log := logging.GetLogger("installer")

	if err := linkAsset(p.LibraryPath(vanilla), filepath.Join(gamePath, paths.LoaderName), true); err != nil {
		return err
	}
	if err := linkAsset(p.DependencyPath(), filepath.Join(gamePath, paths.DependencyName), true); err != nil {
		return err
	}

	iniPath := filepath.Join(gamePath, paths.IniFileName)
	if _, err := os.Stat(iniPath); os.IsNotExist(err) {
		if err := os.WriteFile(iniPath, defaultIni, 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", iniPath)
		}
		log.Debug().Str("path", iniPath).Msg("Default config written")
	}

	log.Info().Str("game", gamePath).Bool("vanilla", vanilla).Msg("Injector installed")
	return nil
}

// InstallShaders links the merged shader tree into the game directory
func InstallShaders(p *paths.Paths, gamePath string) error {
	return linkAsset(p.MergedDir(), filepath.Join(gamePath, paths.ShadersLinkName), false)
}

// InstallPresets links the GShade preset and shader trees into the game
// directory
func InstallPresets(p *paths.Paths, gamePath string) error {
	if err := linkAsset(p.PresetsDir(), filepath.Join(gamePath, paths.PresetsLinkName), false); err != nil {
		return err
	}
	return linkAsset(p.ShadersDir(), filepath.Join(gamePath, paths.ShadersLinkName), false)
}

// InstallPresetArchives extracts locally provided GShade preset and shader
// zips into the data directory and merges them into the reshade-presets
// and reshade-shaders trees the game-side links point at.
func InstallPresetArchives(p *paths.Paths, presetsZip, shadersZip string) error {
	log := logging.GetLogger("installer.presets")

	shadersDir := p.ShadersDir()

	for _, job := range []struct {
		zipPath string
		destDir string
	}{
		{presetsZip, p.PresetsDir()},
		{shadersZip, shadersDir},
	} {
		root, err := archive.Unpack(job.zipPath, p.DataDir())
		if err != nil {
			return err
		}
		extracted := filepath.Join(p.DataDir(), root)

		if err := os.MkdirAll(job.destDir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", job.destDir)
		}
		if err := shaders.CopyTree(extracted, job.destDir); err != nil {
			return err
		}
		if err := os.RemoveAll(extracted); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", extracted)
		}
		log.Debug().Str("zip", job.zipPath).Str("dest", job.destDir).Msg("Archive merged")
	}

	intermediate := filepath.Join(shadersDir, "Intermediate")
	if err := os.MkdirAll(intermediate, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", intermediate)
	}

	return nil
}

// Uninstall removes the injector and asset links from a game directory.
// Symlinked asset directories are removed as links — the shared trees they
// point at are never followed into. The config ini is kept. Removing from
// a directory with nothing installed succeeds.
func Uninstall(gamePath string) error {
	log := logging.GetLogger("installer")

	for _, name := range []string{paths.LoaderName, paths.DependencyName} {
		path := filepath.Join(gamePath, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path)
		}
	}

	assetNames := []string{
		paths.PresetsLinkName,
		paths.ShadersLinkName,
		paths.GShadePresetsName,
		paths.GShadeShadersName,
	}
	for _, name := range assetNames {
		path := filepath.Join(gamePath, name)
		info, err := os.Lstat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
		}

		if info.Mode()&os.ModeSymlink != 0 {
			err = os.Remove(path)
		} else {
			err = os.RemoveAll(path)
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path)
		}
	}

	log.Info().Str("game", gamePath).Msg("Uninstalled")
	return nil
}
