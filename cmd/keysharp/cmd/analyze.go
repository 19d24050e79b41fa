package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/keysharp/pkg/keysharp/export"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		src     sourceFlags
		filters filterFlags
		class   string
		top     int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "analyze [file|-]",
		Short: "Rank the n-grams and words of a corpus",
		Long:  "Extracts monograms, bigrams, trigrams and words from a corpus and prints them ranked by frequency.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classes, err := parseClasses(class)
			if err != nil {
				return err
			}

			comp, r, _, err := analyze(cmd, opts, &src, &filters, args)
			if err != nil {
				return err
			}
			defer comp.Close()

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return export.WriteJSON(out, r)
			case "table":
				for i, c := range classes {
					if i > 0 {
						fmt.Fprintln(out)
					}
					if err := writeTable(out, c, r.Ranked(c), r.Total(c), top); err != nil {
						return err
					}
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (table or json)", format)
			}
		},
	}

	src.register(cmd)
	filters.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&class, "class", "c", "", "Classes to print: monograms, bigrams, trigrams, words (comma-separated, default all)")
	f.IntVarP(&top, "top", "n", 20, "Rows per class (0 = all)")
	f.StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}
