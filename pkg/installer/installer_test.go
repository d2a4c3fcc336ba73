package installer

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/fetch"
	"github.com/cozysoft/reshader/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaths(t *testing.T) *paths.Paths {
	t.Helper()
	t.Setenv(paths.EnvDataDir, t.TempDir())
	t.Setenv(paths.EnvConfigDir, t.TempDir())

	p, err := paths.New()
	require.NoError(t, err)
	return p
}

// seedLibraries puts both injector variants and the dependency into the
// data dir so install can link them.
func seedLibraries(t *testing.T, p *paths.Paths) {
	t.Helper()
	require.NoError(t, os.WriteFile(p.LibraryPath(true), []byte("vanilla dll"), 0644))
	require.NoError(t, os.WriteFile(p.LibraryPath(false), []byte("addon dll"), 0644))
	require.NoError(t, os.WriteFile(p.DependencyPath(), []byte("compiler dll"), 0644))
}

func TestInstallInjector(t *testing.T) {
	p := newTestPaths(t)
	seedLibraries(t, p)
	game := t.TempDir()

	require.NoError(t, InstallInjector(p, game, false))

	target, err := os.Readlink(filepath.Join(game, "dxgi.dll"))
	require.NoError(t, err)
	assert.Equal(t, p.LibraryPath(false), target)

	target, err = os.Readlink(filepath.Join(game, "d3dcompiler_47.dll"))
	require.NoError(t, err)
	assert.Equal(t, p.DependencyPath(), target)

	// the default config is written when none exists
	data, err := os.ReadFile(filepath.Join(game, "ReShade.ini"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "EffectSearchPaths")
}

func TestInstallInjectorIsIdempotent(t *testing.T) {
	p := newTestPaths(t)
	seedLibraries(t, p)
	game := t.TempDir()

	require.NoError(t, InstallInjector(p, game, false))
	require.NoError(t, InstallInjector(p, game, false))

	target, err := os.Readlink(filepath.Join(game, "dxgi.dll"))
	require.NoError(t, err)
	assert.Equal(t, p.LibraryPath(false), target)
}

func TestInstallInjectorSwitchesVariant(t *testing.T) {
	p := newTestPaths(t)
	seedLibraries(t, p)
	game := t.TempDir()

	require.NoError(t, InstallInjector(p, game, false))
	require.NoError(t, InstallInjector(p, game, true))

	target, err := os.Readlink(filepath.Join(game, "dxgi.dll"))
	require.NoError(t, err)
	assert.Equal(t, p.LibraryPath(true), target)
}

func TestInstallInjectorPlainFileConflict(t *testing.T) {
	p := newTestPaths(t)
	seedLibraries(t, p)
	game := t.TempDir()

	// a real dxgi.dll shipped by the game must not be clobbered
	loaderPath := filepath.Join(game, "dxgi.dll")
	require.NoError(t, os.WriteFile(loaderPath, []byte("game's own dll"), 0644))

	err := InstallInjector(p, game, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkConflict))

	data, err := os.ReadFile(loaderPath)
	require.NoError(t, err)
	assert.Equal(t, "game's own dll", string(data), "conflicting file must be left untouched")
}

func TestInstallInjectorKeepsExistingIni(t *testing.T) {
	p := newTestPaths(t)
	seedLibraries(t, p)
	game := t.TempDir()

	iniPath := filepath.Join(game, "ReShade.ini")
	require.NoError(t, os.WriteFile(iniPath, []byte("user tuned"), 0644))

	require.NoError(t, InstallInjector(p, game, false))

	data, err := os.ReadFile(iniPath)
	require.NoError(t, err)
	assert.Equal(t, "user tuned", string(data))
}

func TestInstallShaders(t *testing.T) {
	p := newTestPaths(t)
	require.NoError(t, os.MkdirAll(p.MergedDir(), 0755))
	game := t.TempDir()

	require.NoError(t, InstallShaders(p, game))

	target, err := os.Readlink(filepath.Join(game, "reshade-shaders"))
	require.NoError(t, err)
	assert.Equal(t, p.MergedDir(), target)

	// already linked: no-op, and the target is unchanged
	require.NoError(t, InstallShaders(p, game))
	target, err = os.Readlink(filepath.Join(game, "reshade-shaders"))
	require.NoError(t, err)
	assert.Equal(t, p.MergedDir(), target)
}

func TestInstallShadersConflict(t *testing.T) {
	p := newTestPaths(t)
	game := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(game, "reshade-shaders"), 0755))

	err := InstallShaders(p, game)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkConflict))
}

func TestInstallPresets(t *testing.T) {
	p := newTestPaths(t)
	require.NoError(t, os.MkdirAll(p.PresetsDir(), 0755))
	require.NoError(t, os.MkdirAll(p.ShadersDir(), 0755))
	game := t.TempDir()

	require.NoError(t, InstallPresets(p, game))

	target, err := os.Readlink(filepath.Join(game, "reshade-presets"))
	require.NoError(t, err)
	assert.Equal(t, p.PresetsDir(), target)

	target, err = os.Readlink(filepath.Join(game, "reshade-shaders"))
	require.NoError(t, err)
	assert.Equal(t, p.ShadersDir(), target)
}

func TestUninstallEmptyGameDir(t *testing.T) {
	require.NoError(t, Uninstall(t.TempDir()))
}

func TestUninstallRemovesEverything(t *testing.T) {
	p := newTestPaths(t)
	seedLibraries(t, p)
	require.NoError(t, os.MkdirAll(p.PresetsDir(), 0755))
	require.NoError(t, os.MkdirAll(p.ShadersDir(), 0755))
	game := t.TempDir()

	require.NoError(t, InstallInjector(p, game, false))
	require.NoError(t, InstallPresets(p, game))
	require.NoError(t, Uninstall(game))

	for _, name := range []string{"dxgi.dll", "d3dcompiler_47.dll", "reshade-presets", "reshade-shaders"} {
		_, err := os.Lstat(filepath.Join(game, name))
		assert.True(t, os.IsNotExist(err), "%s should be removed", name)
	}

	// the config ini survives uninstall
	_, err := os.Stat(filepath.Join(game, "ReShade.ini"))
	require.NoError(t, err)
}

func TestUninstallNeverFollowsSymlinks(t *testing.T) {
	p := newTestPaths(t)
	sharedFile := filepath.Join(p.PresetsDir(), "Default.ini")
	require.NoError(t, os.MkdirAll(p.PresetsDir(), 0755))
	require.NoError(t, os.MkdirAll(p.ShadersDir(), 0755))
	require.NoError(t, os.WriteFile(sharedFile, []byte("shared preset"), 0644))
	game := t.TempDir()

	require.NoError(t, InstallPresets(p, game))
	require.NoError(t, Uninstall(game))

	// the shared tree behind the link must be intact
	_, err := os.Stat(sharedFile)
	require.NoError(t, err)
}

func TestUninstallRemovesGShadeNamedAssets(t *testing.T) {
	game := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(game, "gshade-presets"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(game, "gshade-shaders"), 0755))

	require.NoError(t, Uninstall(game))

	_, err := os.Lstat(filepath.Join(game, "gshade-presets"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Lstat(filepath.Join(game, "gshade-shaders"))
	assert.True(t, os.IsNotExist(err))
}

// buildInstallerExe fabricates a self-extracting-installer-shaped file: a
// stub followed by a zip with the injector dll entry.
func buildInstallerExe(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("ReShade64.dll")
	require.NoError(t, err)
	_, err = w.Write([]byte("injector payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "ReShade_Setup_1.2.0_Addon.exe")
	data := append([]byte("MZ setup stub without magic"), buf.Bytes()...)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDownloadReshadeFromLocalInstaller(t *testing.T) {
	p := newTestPaths(t)
	installerPath := buildInstallerExe(t, t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("compiler payload"))
	}))
	defer srv.Close()

	rel := fetch.Releases{DependencyURL: srv.URL}
	require.NoError(t, DownloadReshade(fetch.NewClient(), rel, p, false, "", installerPath))

	data, err := os.ReadFile(p.LibraryPath(false))
	require.NoError(t, err)
	assert.Equal(t, "injector payload", string(data))

	data, err = os.ReadFile(p.DependencyPath())
	require.NoError(t, err)
	assert.Equal(t, "compiler payload", string(data))
}

func TestDownloadReshadeResolvesAndDownloads(t *testing.T) {
	p := newTestPaths(t)

	var installerBytes []byte
	{
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("ReShade64.dll")
		require.NoError(t, err)
		_, err = w.Write([]byte("downloaded injector"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		installerBytes = append([]byte("MZ stub"), buf.Bytes()...)
	}

	var requestedInstaller string
	mux := http.NewServeMux()
	mux.HandleFunc("/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"v1.0.0"},{"name":"v1.2.0"},{"name":"v1.1.0"}]`))
	})
	mux.HandleFunc("/downloads/", func(w http.ResponseWriter, r *http.Request) {
		requestedInstaller = r.URL.Path
		_, _ = w.Write(installerBytes)
	})
	mux.HandleFunc("/d3dcompiler_47.dll", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("compiler"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rel := fetch.Releases{
		TagsURL:             srv.URL + "/tags",
		DownloadURLTemplate: srv.URL + "/downloads/ReShade_Setup_%s%s.exe",
		DependencyURL:       srv.URL + "/d3dcompiler_47.dll",
	}

	require.NoError(t, DownloadReshade(fetch.NewClient(), rel, p, false, "", ""))

	assert.Equal(t, "/downloads/ReShade_Setup_1.2.0_Addon.exe", requestedInstaller)

	data, err := os.ReadFile(p.LibraryPath(false))
	require.NoError(t, err)
	assert.Equal(t, "downloaded injector", string(data))
}

func TestInstallPresetArchives(t *testing.T) {
	p := newTestPaths(t)

	presetsZip := writeZip(t, "GShade-Presets.zip", map[string]string{
		"GShade-Presets-master/Preset1.ini": "preset one",
	})
	shadersZip := writeZip(t, "gshade-shaders.zip", map[string]string{
		"gshade-shaders/Shaders/GShade.fx": "gshade shader",
	})

	require.NoError(t, InstallPresetArchives(p, presetsZip, shadersZip))

	data, err := os.ReadFile(filepath.Join(p.PresetsDir(), "Preset1.ini"))
	require.NoError(t, err)
	assert.Equal(t, "preset one", string(data))

	data, err = os.ReadFile(filepath.Join(p.ShadersDir(), "Shaders", "GShade.fx"))
	require.NoError(t, err)
	assert.Equal(t, "gshade shader", string(data))

	// extraction roots are cleaned up, Intermediate is ensured
	_, err = os.Stat(filepath.Join(p.DataDir(), "GShade-Presets-master"))
	assert.True(t, os.IsNotExist(err))
	info, err := os.Stat(filepath.Join(p.ShadersDir(), "Intermediate"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func writeZip(t *testing.T, name string, entries map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for entryName, content := range entries {
		w, err := zw.Create(entryName)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}
