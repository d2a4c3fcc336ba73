// Package config persists the list of managed game directories.
package config

import (
	"os"

	"github.com/cozysoft/reshader/pkg/errors"
	"github.com/cozysoft/reshader/pkg/logging"
	"github.com/pelletier/go-toml/v2"
)

// Config is the persisted record. GamePaths is the ordered list of game
// install directories the injector has been attached to.
type Config struct {
	GamePaths []string `toml:"game_paths"`
}

// Load reads the config record at path. A missing file yields an empty
// default which is immediately written back so the file always exists
// after startup. A present but unparsable file is a hard error.
func Load(path string) (*Config, error) {
	log := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Debug().Str("path", path).Msg("No config found, writing empty default")
		cfg := &Config{}
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config at %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config at %s", path)
	}

	log.Debug().Int("gamePaths", len(cfg.GamePaths)).Msg("Config loaded")
	return &cfg, nil
}

// Save serializes the record to path
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "failed to serialize config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "failed to write config to %s", path)
	}
	return nil
}

// AddGamePath appends a path to the managed list. Exact duplicates are
// rejected so the list stays unique; order of existing entries is preserved.
func (c *Config) AddGamePath(path string) bool {
	if c.HasGamePath(path) {
		return false
	}
	c.GamePaths = append(c.GamePaths, path)
	return true
}

// RemoveGamePath filters every occurrence of path from the managed list
func (c *Config) RemoveGamePath(path string) {
	kept := c.GamePaths[:0]
	for _, p := range c.GamePaths {
		if p != path {
			kept = append(kept, p)
		}
	}
	c.GamePaths = kept
}

// HasGamePath reports whether path is already managed
func (c *Config) HasGamePath(path string) bool {
	for _, p := range c.GamePaths {
		if p == path {
			return true
		}
	}
	return false
}
