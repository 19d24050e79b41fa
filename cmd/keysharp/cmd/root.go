package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cognicore/keysharp/internal/logger"
	"github.com/cognicore/keysharp/pkg/keysharp/config"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "keysharp",
		Short:         "Character n-gram and word statistics for a text corpus",
		Long:          "Counts monograms, bigrams, trigrams and words, ranks them by frequency and filters the ranked rows with literal or regex queries.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newPresetsCmd(opts))
	root.AddCommand(newCacheCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

// Execute runs the root command.
func Execute() error {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

// loadConfig reads --config, falling back to the builtin defaults.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	if o.configPath == "" {
		return config.Default(), nil
	}
	return config.Load(o.configPath)
}

// components loads the config and builds the engine, writing logs to the
// command's stderr.
func (o *rootOptions) components(cmd *cobra.Command) (*config.Components, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if o.logLevel != "" {
		level = o.logLevel
	}
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logger.NewWithConfig(cmd.ErrOrStderr(), "keysharp", lvl, false, true, log.TextFormatter)

	return config.Build(cmd.Context(), cfg, l)
}
