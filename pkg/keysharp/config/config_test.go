package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 1, cfg.Engine.Shards)
	assert.Equal(t, analytics.FilterSettings{}, cfg.Filters)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "keysharp.yaml", `
filters:
  filter_whitespace: true
  case_sensitive: true
search:
  query: "^th"
  use_regex: true
  limit: 10
engine:
  shards: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, analytics.FilterSettings{FilterWhitespace: true, CaseSensitive: true}, cfg.Filters)
	assert.Equal(t, 4, cfg.Engine.Shards)
	assert.Equal(t, 128, cfg.Engine.RegexCacheSize, "unset fields keep defaults")
	assert.Equal(t, "corpora", cfg.Corpus.PresetDir)

	s := cfg.SearchSettings()
	assert.Equal(t, "^th", s.Query)
	assert.True(t, s.UseRegex)
	assert.Equal(t, 10, s.Limit)
	assert.True(t, s.Filters.CaseSensitive)
}

func TestLoadTOML(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	path := writeConfig(t, "keysharp.toml", `
[filters]
filter_punctuation = true

[store]
driver = "sqlite"
path = "`+filepath.ToSlash(dbPath)+`"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Filters.FilterPunctuation)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, internalerr.ErrNotFound)

	_, err = Load(writeConfig(t, "keysharp.json", `{}`))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)

	_, err = Load(writeConfig(t, "bad.yaml", "filters: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.toml", "[store]\ndriver = \"redis\"\n"))
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"negative shards": func(c *Config) { c.Engine.Shards = -1 },
		"negative limit":  func(c *Config) { c.Search.Limit = -5 },
		"negative cache":  func(c *Config) { c.Engine.RegexCacheSize = -1 },
		"bolt no path":    func(c *Config) { c.Store.Driver = "bolt" },
		"bad level":       func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		assert.ErrorIs(t, cfg.Validate(), internalerr.ErrInvalidConfig, name)
	}
}

func TestInitFileRoundTrip(t *testing.T) {
	for _, name := range []string{"keysharp.yaml", "keysharp.toml"} {
		path := filepath.Join(t.TempDir(), "sub", name)

		wrote, err := InitFile(path)
		require.NoError(t, err)
		assert.True(t, wrote)

		cfg, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, Default(), cfg, name)

		wrote, err = InitFile(path)
		require.NoError(t, err)
		assert.False(t, wrote, "existing file must not be overwritten")
	}
}

func TestLoaderBuildsComponents(t *testing.T) {
	ctx := context.Background()

	comp, err := (&Loader{}).Load(ctx)
	require.NoError(t, err)
	defer comp.Close()

	require.NotNil(t, comp.Engine)
	require.NotNil(t, comp.Corpora)
	require.NotNil(t, comp.Matcher)
	assert.Equal(t, "corpora", comp.Corpora.Dir)

	r, err := comp.Engine.Analyze(ctx, "abc", comp.Config.Filters)
	require.NoError(t, err)
	assert.Equal(t, int64(3), r.Totals.Monograms)
}

func TestLoaderBoltStore(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, "keysharp.yaml", "store:\n  driver: bolt\n  path: "+filepath.ToSlash(filepath.Join(dir, "cache.bolt"))+"\n")

	comp, err := (&Loader{ConfigPath: path}).Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, comp.Close())

	_, err = os.Stat(filepath.Join(dir, "cache.bolt"))
	assert.NoError(t, err)
}

func TestLoaderMissingConfig(t *testing.T) {
	_, err := (&Loader{ConfigPath: "/nonexistent/keysharp.yaml"}).Load(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}
