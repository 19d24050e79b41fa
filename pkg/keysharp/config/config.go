/*
Package config loads keysharp settings from YAML or TOML files.

The format follows the file extension: .yaml/.yml or .toml. Fields absent
from the file keep the values of Default().
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/keysharp/internal/logger"
	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/search"
	"github.com/cognicore/keysharp/pkg/keysharp/store/open"
)

// Config holds the entire config structure
type Config struct {
	Filters analytics.FilterSettings `yaml:"filters" toml:"filters"`
	Search  SearchConfig             `yaml:"search" toml:"search"`
	Corpus  CorpusConfig             `yaml:"corpus" toml:"corpus"`
	Store   StoreConfig              `yaml:"store" toml:"store"`
	Engine  EngineConfig             `yaml:"engine" toml:"engine"`
	Log     LogConfig                `yaml:"log" toml:"log"`
}

// SearchConfig holds the default query options.
type SearchConfig struct {
	Query    string `yaml:"query" toml:"query"`
	UseRegex bool   `yaml:"use_regex" toml:"use_regex"`
	Limit    int    `yaml:"limit" toml:"limit"`
}

// CorpusConfig points at the preset corpora.
type CorpusConfig struct {
	PresetDir string `yaml:"preset_dir" toml:"preset_dir"`
}

// StoreConfig selects the raw-table cache.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	Path   string `yaml:"path" toml:"path"`
}

// EngineConfig tunes extraction and matching.
type EngineConfig struct {
	Shards         int `yaml:"shards" toml:"shards"`
	RegexCacheSize int `yaml:"regex_cache_size" toml:"regex_cache_size"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Default returns the builtin settings.
func Default() *Config {
	return &Config{
		Corpus: CorpusConfig{PresetDir: "corpora"},
		Store:  StoreConfig{Driver: open.Memory},
		Engine: EngineConfig{Shards: 1, RegexCacheSize: search.DefaultCacheSize},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over Default() and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, internalerr.ErrNotFound)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse toml %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unknown extension %q: %w", path, ext, internalerr.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	var errs []error
	if !open.Known(c.Store.Driver) {
		errs = append(errs, fmt.Errorf("store.driver %q not one of %v", c.Store.Driver, open.Drivers()))
	}
	if c.Store.Driver != "" && !strings.EqualFold(c.Store.Driver, open.Memory) && c.Store.Path == "" {
		errs = append(errs, fmt.Errorf("store.path is required for driver %q", c.Store.Driver))
	}
	if c.Engine.Shards < 0 {
		errs = append(errs, fmt.Errorf("engine.shards must be >= 0, got %d", c.Engine.Shards))
	}
	if c.Engine.RegexCacheSize < 0 {
		errs = append(errs, fmt.Errorf("engine.regex_cache_size must be >= 0, got %d", c.Engine.RegexCacheSize))
	}
	if c.Search.Limit < 0 {
		errs = append(errs, fmt.Errorf("search.limit must be >= 0, got %d", c.Search.Limit))
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
}

// SearchSettings combines the search defaults with the filter settings.
func (c *Config) SearchSettings() search.Settings {
	return search.Settings{
		Query:    c.Search.Query,
		UseRegex: c.Search.UseRegex,
		Filters:  c.Filters,
		Limit:    c.Search.Limit,
	}
}

// Encode renders c in the format implied by the extension of path.
func (c *Config) Encode(path string) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Marshal(c)
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown config extension %q: %w", ext, internalerr.ErrInvalidConfig)
	}
}

// InitFile writes the default config to path unless a file already exists.
// It reports whether a file was written.
func InitFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := Default().Encode(path)
	if err != nil {
		return false, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config %s: %w", path, err)
	}
	return true, nil
}
