package shaders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCollections(t *testing.T) {
	cols, err := LoadCollections()
	require.NoError(t, err)
	require.NotEmpty(t, cols)

	for _, c := range cols {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.DownloadURL)
		assert.True(t, strings.HasPrefix(c.InstallPath, "Merged/"),
			"%s: install path %q must live under the merged tree", c.Name, c.InstallPath)
		assert.True(t, strings.HasPrefix(c.TextureInstallPath, "Merged/"),
			"%s: texture path %q must live under the merged tree", c.Name, c.TextureInstallPath)
	}
}

func TestLoadCollectionsHasRequiredDefault(t *testing.T) {
	cols, err := LoadCollections()
	require.NoError(t, err)

	var foundRequired bool
	for _, c := range cols {
		if c.Required {
			foundRequired = true
			assert.True(t, c.Enabled, "required collection %s must be enabled", c.Name)
		}
	}
	assert.True(t, foundRequired, "manifest must carry at least one required collection")
}

func TestEnabledCollections(t *testing.T) {
	cols := []Collection{
		{Name: "a", Enabled: true},
		{Name: "b", Enabled: false},
		{Name: "c", Enabled: true},
	}

	enabled := EnabledCollections(cols)
	require.Len(t, enabled, 2)
	assert.Equal(t, "a", enabled[0].Name)
	assert.Equal(t, "c", enabled[1].Name)
}

func TestSourcesTable(t *testing.T) {
	sources := Sources()
	require.NotEmpty(t, sources)

	var essentials int
	seen := map[string]bool{}
	for _, s := range sources {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.URL)
		assert.False(t, seen[s.Name], "duplicate source name %s", s.Name)
		seen[s.Name] = true
		if s.Essential {
			essentials++
		}
	}
	assert.Equal(t, 1, essentials, "exactly one essential source merges into the tree root")
}

func TestSourcesReturnsFreshSlice(t *testing.T) {
	a := Sources()
	a[0].Name = "mutated"
	b := Sources()
	assert.NotEqual(t, "mutated", b[0].Name)
}
