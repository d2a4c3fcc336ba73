package shaders

import (
	_ "embed"

	"github.com/cozysoft/reshader/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed collections.yaml
var collectionsYAML []byte

// Collection describes one downloadable shader/texture bundle from the
// collection manifest. Install paths are relative to the data directory
// and rooted under the merged tree.
type Collection struct {
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	Enabled            bool   `yaml:"enabled"`
	Required           bool   `yaml:"required"`
	InstallPath        string `yaml:"install_path"`
	TextureInstallPath string `yaml:"texture_install_path"`
	DownloadURL        string `yaml:"download_url"`
}

type collectionManifest struct {
	Collections []Collection `yaml:"collections"`
}

// LoadCollections parses the embedded collection manifest
func LoadCollections() ([]Collection, error) {
	var manifest collectionManifest
	if err := yaml.Unmarshal(collectionsYAML, &manifest); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse embedded collection manifest")
	}
	return manifest.Collections, nil
}

// EnabledCollections filters a manifest down to the enabled-by-default
// entries
func EnabledCollections(cols []Collection) []Collection {
	var enabled []Collection
	for _, c := range cols {
		if c.Enabled {
			enabled = append(enabled, c)
		}
	}
	return enabled
}
