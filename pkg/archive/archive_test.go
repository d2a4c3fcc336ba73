package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip returns an in-memory zip archive with the given entries
func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFindZipOffset(t *testing.T) {
	signature := []byte{0x50, 0x4B, 0x03, 0x04}

	tests := []struct {
		name   string
		stream []byte
		offset int64
	}{
		{"at start", append(append([]byte{}, signature...), 0xAA, 0xBB), 0},
		{"after stub", append(bytes.Repeat([]byte{0x00}, 117), signature...), 117},
		{"partial magic before real one", append([]byte{0x50, 0x4B, 0x03, 0x05, 0x50}, append([]byte{0x4B}, append(signature, 0x01)...)...), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, err := FindZipOffset(bytes.NewReader(tt.stream))
			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)
		})
	}
}

func TestFindZipOffsetNoMatch(t *testing.T) {
	streams := [][]byte{
		{},
		{0x50},
		{0x50, 0x4B, 0x03},
		bytes.Repeat([]byte{0x50, 0x4B}, 512),
	}

	for _, stream := range streams {
		_, err := FindZipOffset(bytes.NewReader(stream))
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoArchive))
	}
}

// writeInstaller writes an executable-shaped file: an arbitrary stub
// followed by a real zip archive.
func writeInstaller(t *testing.T, stub []byte, entries map[string][]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ReShade_Setup.exe")
	data := append(append([]byte{}, stub...), buildZip(t, entries)...)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestExtractEntry(t *testing.T) {
	payload := []byte("fake dll bytes \x00\x01\x02")
	installer := writeInstaller(t, []byte("MZ this is a setup stub, no magic here"), map[string][]byte{
		"ReShade64.dll": payload,
		"ReShade32.dll": []byte("other"),
	})

	data, err := ExtractEntry(installer, "ReShade64.dll")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestExtractEntryNotFound(t *testing.T) {
	installer := writeInstaller(t, []byte("MZ"), map[string][]byte{
		"ReShade32.dll": []byte("only 32-bit here"),
	})

	_, err := ExtractEntry(installer, "ReShade64.dll")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEntryNotFound))
}

func TestExtractEntryNoArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-installer.exe")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0x4D, 0x5A}, 64), 0644))

	_, err := ExtractEntry(path, "ReShade64.dll")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoArchive))
}

func TestUnpackWithRootDir(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "qUINT.zip")
	require.NoError(t, os.WriteFile(zipPath, buildZip(t, map[string][]byte{
		"qUINT-master/Shaders/qUINT_mxao.fx": []byte("shader"),
		"qUINT-master/Textures/noise.png":    []byte("texture"),
	}), 0644))

	destDir := t.TempDir()
	root, err := Unpack(zipPath, destDir)
	require.NoError(t, err)
	assert.Equal(t, "qUINT-master", root)

	data, err := os.ReadFile(filepath.Join(destDir, "qUINT-master", "Shaders", "qUINT_mxao.fx"))
	require.NoError(t, err)
	assert.Equal(t, "shader", string(data))
}

func TestUnpackSynthesizesRootDir(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "SweetFX.zip")
	require.NoError(t, os.WriteFile(zipPath, buildZip(t, map[string][]byte{
		"Shaders/SweetFX.fx": []byte("shader"),
		"Textures/lut.png":   []byte("texture"),
	}), 0644))

	destDir := t.TempDir()
	root, err := Unpack(zipPath, destDir)
	require.NoError(t, err)
	assert.Equal(t, "SweetFX.zip", root)

	_, err = os.Stat(filepath.Join(destDir, "SweetFX.zip", "Shaders", "SweetFX.fx"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(destDir, "SweetFX.zip", "Textures", "lut.png"))
	require.NoError(t, err)
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "evil.zip")
	require.NoError(t, os.WriteFile(zipPath, buildZip(t, map[string][]byte{
		"../outside.txt": []byte("nope"),
	}), 0644))

	_, err := Unpack(zipPath, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrZipExtract))
}

func TestUnpackNotAZip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("not a zip"), 0644))

	_, err := Unpack(zipPath, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrZipRead))
}
