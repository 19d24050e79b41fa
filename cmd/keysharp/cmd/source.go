package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
	"github.com/cognicore/keysharp/pkg/keysharp/config"
	"github.com/cognicore/keysharp/pkg/keysharp/corpus"
)

// sourceFlags selects the corpus: a preset by name, a file path argument,
// or "-" for stdin.
type sourceFlags struct {
	preset string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.preset, "preset", "p", "", "Preset corpus name (see 'keysharp presets')")
}

func (s *sourceFlags) load(cmd *cobra.Command, comp *config.Components, path string) (corpus.Corpus, error) {
	switch {
	case s.preset != "" && path != "":
		return corpus.Corpus{}, fmt.Errorf("give either a file or --preset, not both")
	case s.preset != "":
		return comp.Corpora.LoadPreset(s.preset)
	case path == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return corpus.Corpus{}, fmt.Errorf("read stdin: %w", err)
		}
		return corpus.New("stdin", string(data), true), nil
	case path != "":
		return comp.Corpora.LoadCustom(path)
	}
	return corpus.Corpus{}, fmt.Errorf("no corpus: pass a file, '-' for stdin, or --preset")
}

// filterFlags override the config's filter settings when set.
type filterFlags struct {
	whitespace    bool
	punctuation   bool
	caseSensitive bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVar(&f.whitespace, "filter-whitespace", false, "Drop sequences containing whitespace")
	fs.BoolVar(&f.punctuation, "filter-punctuation", false, "Drop sequences containing punctuation")
	fs.BoolVar(&f.caseSensitive, "case-sensitive", false, "Keep case distinctions")
}

func (f *filterFlags) apply(cmd *cobra.Command, base analytics.FilterSettings) analytics.FilterSettings {
	fs := cmd.Flags()
	if fs.Changed("filter-whitespace") {
		base.FilterWhitespace = f.whitespace
	}
	if fs.Changed("filter-punctuation") {
		base.FilterPunctuation = f.punctuation
	}
	if fs.Changed("case-sensitive") {
		base.CaseSensitive = f.caseSensitive
	}
	return base
}

// analyze loads the corpus named by args/flags and runs the analysis.
func analyze(cmd *cobra.Command, opts *rootOptions, src *sourceFlags, filters *filterFlags, args []string) (*config.Components, analytics.Result, analytics.FilterSettings, error) {
	comp, err := opts.components(cmd)
	if err != nil {
		return nil, analytics.Result{}, analytics.FilterSettings{}, err
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	c, err := src.load(cmd, comp, path)
	if err != nil {
		comp.Close()
		return nil, analytics.Result{}, analytics.FilterSettings{}, err
	}

	f := filters.apply(cmd, comp.Config.Filters)
	r, err := comp.Engine.AnalyzeCorpus(cmd.Context(), c, f)
	if err != nil {
		comp.Close()
		return nil, analytics.Result{}, analytics.FilterSettings{}, err
	}
	return comp, r, f, nil
}
