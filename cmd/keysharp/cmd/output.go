package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

// displaySequence makes whitespace visible in a table cell.
func displaySequence(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteString("␣")
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case ngram.IsWhitespace(r):
			fmt.Fprintf(&b, "<%U>", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// writeTable prints one class of rows. top caps the printed rows; 0 prints
// all of them.
func writeTable(w io.Writer, class ngram.Class, rows []analytics.NGram, total int64, top int) error {
	fmt.Fprintf(w, "%s: %d distinct, %d total\n", class, len(rows), total)

	shown := rows
	if top > 0 && len(shown) > top {
		shown = shown[:top]
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, row := range shown {
		share := 0.0
		if total > 0 {
			share = 100 * float64(row.Frequency) / float64(total)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f%%\t\n", row.Rank, displaySequence(row.Sequence), row.Frequency, share)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(shown) < len(rows) {
		fmt.Fprintf(w, "  ... and %d more\n", len(rows)-len(shown))
	}
	return nil
}

// parseClasses turns --class into the classes to print. Empty means all.
func parseClasses(s string) ([]ngram.Class, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return ngram.Classes(), nil
	}
	var out []ngram.Class
	for _, part := range strings.Split(s, ",") {
		c, err := ngram.ParseClass(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
