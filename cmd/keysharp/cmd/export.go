package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/keysharp/pkg/keysharp/export"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		src     sourceFlags
		filters filterFlags
		format  string
		outPath string
		class   string
	)

	cmd := &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write the ranked tables as CSV or JSON",
		Long:  "Writes one class (--class) or every class of an analysis. Rows are written in rank order.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmtName, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			var only *ngram.Class
			if class != "" {
				c, err := ngram.ParseClass(class)
				if err != nil {
					return err
				}
				only = &c
			}

			comp, r, _, err := analyze(cmd, opts, &src, &filters, args)
			if err != nil {
				return err
			}
			defer comp.Close()

			write := func(w io.Writer) error {
				switch {
				case fmtName == export.JSON:
					return export.WriteJSON(w, r)
				case only != nil:
					return export.WriteCSV(w, r.Ranked(*only), *only)
				default:
					return export.WriteAllCSV(w, r)
				}
			}

			if outPath == "" || outPath == "-" {
				return write(cmd.OutOrStdout())
			}
			if err := writeFile(outPath, write); err != nil {
				return err
			}
			cmd.PrintErrf("wrote %s\n", outPath)
			return nil
		},
	}

	src.register(cmd)
	filters.register(cmd)
	f := cmd.Flags()
	f.StringVar(&format, "format", "csv", "Output format: csv or json")
	f.StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	f.StringVarP(&class, "class", "c", "", "Export a single class as CSV")
	return cmd
}

// writeFile creates path and runs write against it. A failed close is
// returned as an error.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
