package config

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cognicore/keysharp/internal/logger"
	"github.com/cognicore/keysharp/pkg/keysharp"
	"github.com/cognicore/keysharp/pkg/keysharp/corpus"
	"github.com/cognicore/keysharp/pkg/keysharp/search"
	"github.com/cognicore/keysharp/pkg/keysharp/store/open"
)

// Loader loads the configuration file and constructs components
type Loader struct {
	ConfigPath string
	Logger     *log.Logger
}

// Components holds everything a command needs to run an analysis.
type Components struct {
	Config  *Config
	Engine  *keysharp.Engine
	Corpora *corpus.Loader
	Matcher *search.Matcher
}

// Close releases the engine's store.
func (c *Components) Close() error {
	if c.Engine == nil {
		return nil
	}
	return c.Engine.Close()
}

// Load reads the config (defaults when ConfigPath is empty) and builds the
// engine, corpus loader and matcher from it.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	return Build(ctx, cfg, l.Logger)
}

// Build constructs components from an already loaded config.
func Build(ctx context.Context, cfg *Config, l *log.Logger) (*Components, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		l = logger.Discard()
	}

	st, err := open.Open(ctx, cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	matcher := search.NewMatcher(cfg.Engine.RegexCacheSize)
	engine := keysharp.New(keysharp.Options{
		Store:   st,
		Shards:  cfg.Engine.Shards,
		Matcher: matcher,
		Logger:  l.WithPrefix("engine"),
	})

	return &Components{
		Config:  cfg,
		Engine:  engine,
		Corpora: corpus.NewLoader(cfg.Corpus.PresetDir, l.WithPrefix("corpus")),
		Matcher: matcher,
	}, nil
}
