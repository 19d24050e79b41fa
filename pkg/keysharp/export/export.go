// Package export writes analysis rows to CSV or JSON. Rows are written in
// the order given and never re-sorted.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

// Format is an output encoding.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat accepts csv or json, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	}
	return "", fmt.Errorf("export format %q: %w", s, internalerr.ErrInvalidInput)
}

// Header returns the CSV header for class. Columns follow the JSON field
// order: sequence (or word), frequency, rank.
func Header(class ngram.Class) []string {
	if class == ngram.Word {
		return []string{"word", "frequency", "rank"}
	}
	return []string{"sequence", "frequency", "rank"}
}

// WriteCSV writes one class of rows with a header line.
func WriteCSV(w io.Writer, rows []analytics.NGram, class ngram.Class) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(class)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		rec := []string{
			row.Sequence,
			strconv.FormatInt(row.Frequency, 10),
			strconv.Itoa(row.Rank),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.Rank, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAllCSV writes every class of r into one table with a leading class
// column.
func WriteAllCSV(w io.Writer, r analytics.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"class", "sequence", "frequency", "rank"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, class := range ngram.Classes() {
		name := class.String()
		for _, row := range r.Ranked(class) {
			rec := []string{
				name,
				row.Sequence,
				strconv.FormatInt(row.Frequency, 10),
				strconv.Itoa(row.Rank),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("write csv %s row %d: %w", name, row.Rank, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the whole result as indented JSON.
func WriteJSON(w io.Writer, r analytics.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(r)); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// normalize turns nil row slices into empty ones so JSON shows [] not null.
func normalize(r analytics.Result) analytics.Result {
	if r.Monograms == nil {
		r.Monograms = []analytics.NGram{}
	}
	if r.Bigrams == nil {
		r.Bigrams = []analytics.NGram{}
	}
	if r.Trigrams == nil {
		r.Trigrams = []analytics.NGram{}
	}
	if r.Words == nil {
		r.Words = []analytics.Word{}
	}
	return r
}
