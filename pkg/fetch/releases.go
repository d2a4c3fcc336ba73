package fetch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/logging"
	"golang.org/x/mod/semver"
)

// Releases describes the upstream endpoints for the injector. The table is
// constructed once and passed explicitly so tests can point it at a fake
// server.
type Releases struct {
	// TagsURL lists the upstream release tags as JSON
	TagsURL string

	// DownloadURLTemplate is the per-version installer URL. It receives
	// the bare version string and the variant suffix.
	DownloadURLTemplate string

	// DependencyURL is the fixed location of the shared compiler library
	DependencyURL string
}

// DefaultReleases returns the production endpoint table
func DefaultReleases() Releases {
	return Releases{
		TagsURL:             "https://api.github.com/repos/crosire/reshade/tags",
		DownloadURLTemplate: "https://reshade.me/downloads/ReShade_Setup_%s%s.exe",
		DependencyURL:       "https://lutris.net/files/tools/dll/d3dcompiler_47.dll",
	}
}

// tag mirrors the one field of the upstream tag listing we care about
type tag struct {
	Name string `json:"name"`
}

// ResolveVersion returns the version to install. An explicit version is
// passed through unvalidated; otherwise the tags endpoint is queried and
// the highest semver tag wins. Tags that do not parse as semver are
// skipped.
func (c *Client) ResolveVersion(rel Releases, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	log := logging.GetLogger("fetch")

	resp, err := c.get(rel.TagsURL)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFetchVersion, "error while fetching tags")
	}
	defer func() { _ = resp.Body.Close() }()

	var tags []tag
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return "", errors.Wrap(err, errors.ErrFetchVersion, "invalid json returned by tags endpoint")
	}

	latest := ""
	for _, t := range tags {
		v := t.Name
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if !semver.IsValid(v) {
			log.Debug().Str("tag", t.Name).Msg("Skipping non-semver tag")
			continue
		}
		if latest == "" || semver.Compare(v, latest) > 0 {
			latest = v
		}
	}
	if latest == "" {
		return "", errors.New(errors.ErrFetchVersion, "no usable tags available")
	}

	resolved := strings.TrimPrefix(latest, "v")
	log.Debug().Str("version", resolved).Msg("Resolved latest version")
	return resolved, nil
}

// InstallerURL builds the setup-executable URL for a version and variant
func (rel Releases) InstallerURL(version string, vanilla bool) string {
	suffix := "_Addon"
	if vanilla {
		suffix = ""
	}
	return fmt.Sprintf(rel.DownloadURLTemplate, version, suffix)
}
