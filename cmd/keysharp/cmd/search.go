package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
	"github.com/cognicore/keysharp/pkg/keysharp/search"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var (
		src      sourceFlags
		filters  filterFlags
		class    string
		useRegex bool
		limit    int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "search <query> [file|-]",
		Short: "Filter ranked rows by a literal or regex query",
		Long: "Runs an analysis and keeps the rows of one class whose text matches the query. " +
			"Rows keep their global rank. An invalid regex matches nothing.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := ngram.ParseClass(class)
			if err != nil {
				return err
			}

			comp, r, f, err := analyze(cmd, opts, &src, &filters, args[1:])
			if err != nil {
				return err
			}
			defer comp.Close()

			s := comp.Config.SearchSettings()
			s.Query = args[0]
			s.Filters = f
			if cmd.Flags().Changed("regex") {
				s.UseRegex = useRegex
			}
			if cmd.Flags().Changed("limit") {
				s.Limit = limit
			}
			if err := search.Valid(s); err != nil {
				cmd.PrintErrf("warning: pattern does not compile, nothing will match: %v\n", err)
			}

			rows := comp.Engine.Search(r, c, s)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			fmt.Fprintf(out, "%d matches for %q\n", len(rows), s.Query)
			return writeTable(out, c, rows, r.Total(c), 0)
		},
	}

	src.register(cmd)
	filters.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&class, "class", "c", "words", "Class to search: monograms, bigrams, trigrams, words")
	f.BoolVarP(&useRegex, "regex", "E", false, "Treat the query as a regular expression")
	f.IntVarP(&limit, "limit", "n", 0, "Keep at most N matching rows (0 = no limit)")
	f.BoolVar(&asJSON, "json", false, "Print matches as JSON")
	return cmd
}
