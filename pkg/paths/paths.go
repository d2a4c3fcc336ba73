// Package paths provides centralized path handling for reshader.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cozysoft/reshader/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for reshader
	EnvDataDir = "RESHADER_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for reshader
	EnvConfigDir = "RESHADER_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the data and game directories.
// These are wire-level names probed by the game's loader and by ReShade
// itself and must not change between installations.
const (
	// AppDirName is the directory name for reshader-specific files
	AppDirName = "reshader"

	// ConfigFileName is the name of the persisted config record
	ConfigFileName = "config.toml"

	// LoaderName is the dynamic-library slot the game's loader probes
	LoaderName = "dxgi.dll"

	// DependencyName is the shader compiler ReShade depends on
	DependencyName = "d3dcompiler_47.dll"

	// VanillaLibraryName is the data-dir copy of the vanilla injector
	VanillaLibraryName = "ReShade64.Vanilla.dll"

	// AddonLibraryName is the data-dir copy of the addon-enabled injector
	AddonLibraryName = "ReShade64.Addon.dll"

	// InjectorEntryName is the archive entry carved out of the installer
	InjectorEntryName = "ReShade64.dll"

	// IniFileName is the injector's config file written into game dirs
	IniFileName = "ReShade.ini"

	// MergedDirName is the root of the combined shader tree
	MergedDirName = "Merged"

	// ZipsDirName is the scratch directory for collection archives
	ZipsDirName = "zips"

	// ReposDirName holds clones of shader source repositories
	ReposDirName = "repos"

	// PresetsDirName is the data-dir copy of the preset tree
	PresetsDirName = "reshade-presets"

	// ShadersLinkName is the game-side link for the shader tree
	ShadersLinkName = "reshade-shaders"

	// PresetsLinkName is the game-side link for the preset tree
	PresetsLinkName = "reshade-presets"

	// GShadeShadersName is the legacy GShade shader link name
	GShadeShadersName = "gshade-shaders"

	// GShadePresetsName is the legacy GShade preset link name
	GShadePresetsName = "gshade-presets"
)

// Paths provides centralized path management for reshader
type Paths struct {
	dataDir   string
	configDir string
}

// New creates a Paths instance from XDG defaults, honoring the
// RESHADER_DATA_DIR and RESHADER_CONFIG_DIR environment overrides.
func New() (*Paths, error) {
	p := &Paths{}

	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		p.dataDir = expandHome(dataDir)
	} else {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}

	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.configDir = expandHome(configDir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return p, nil
}

// EnsureDirs creates the data and config directories if they do not exist
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{p.dataDir, p.configDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}
	return nil
}

// DataDir returns the XDG data directory for reshader
func (p *Paths) DataDir() string {
	return p.dataDir
}

// ConfigDir returns the XDG config directory for reshader
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the path of the persisted config record
func (p *Paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// dataSubdir returns a subdirectory path under the data directory
func (p *Paths) dataSubdir(name string) string {
	return filepath.Join(p.dataDir, name)
}

// MergedDir returns the root of the merged shader tree
func (p *Paths) MergedDir() string {
	return p.dataSubdir(MergedDirName)
}

// ZipsDir returns the scratch directory for downloaded collection archives
func (p *Paths) ZipsDir() string {
	return p.dataSubdir(ZipsDirName)
}

// ReposDir returns the directory holding shader source clones
func (p *Paths) ReposDir() string {
	return p.dataSubdir(ReposDirName)
}

// RepoDir returns the clone path for a named shader source
func (p *Paths) RepoDir(name string) string {
	return filepath.Join(p.ReposDir(), name)
}

// PresetsDir returns the data-dir copy of the preset tree
func (p *Paths) PresetsDir() string {
	return p.dataSubdir(PresetsDirName)
}

// ShadersDir returns the data-dir copy of the GShade shader tree. This is
// distinct from MergedDir, which the repository/collection sync flows
// maintain.
func (p *Paths) ShadersDir() string {
	return p.dataSubdir(ShadersLinkName)
}

// LibraryName returns the data-dir injector filename for a variant
func LibraryName(vanilla bool) string {
	if vanilla {
		return VanillaLibraryName
	}
	return AddonLibraryName
}

// LibraryPath returns the data-dir injector path for a variant
func (p *Paths) LibraryPath(vanilla bool) string {
	return p.dataSubdir(LibraryName(vanilla))
}

// DependencyPath returns the data-dir path of the shared compiler library
func (p *Paths) DependencyPath() string {
	return p.dataSubdir(DependencyName)
}

// NormalizePath normalizes a path by expanding home, making it absolute,
// and cleaning it
func NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	expanded := expandHome(path)

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}

	return filepath.Clean(abs), nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = os.Getenv(EnvHome)
			if homeDir == "" {
				return path
			}
		}

		if len(path) == 1 {
			return homeDir
		}

		if path[1] == '/' || path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:])
		}

		// ~something (not the user's home)
		return path
	}

	return path
}

// ExpandHome is the exported form of expandHome
func ExpandHome(path string) string {
	return expandHome(path)
}
