package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the raw-table cache",
		Long:  "Lists or removes cached raw tables. Only the sqlite and bolt drivers keep entries between runs.",
	}

	cache.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List cached corpora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := opts.components(cmd)
			if err != nil {
				return err
			}
			defer comp.Close()

			entries, err := comp.Engine.Store().List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tCHARS\tCREATED")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", e.Key, e.Name, e.Chars, e.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	})

	cache.AddCommand(&cobra.Command{
		Use:   "rm <key>...",
		Short: "Remove cached corpora by key",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comp, err := opts.components(cmd)
			if err != nil {
				return err
			}
			defer comp.Close()

			for _, key := range args {
				if err := comp.Engine.Store().Delete(cmd.Context(), key); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", key)
			}
			return nil
		},
	})

	return cache
}
