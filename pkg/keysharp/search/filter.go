package search

import "github.com/cognicore/keysharp/pkg/keysharp/analytics"

// FilterNGrams keeps the rows whose sequence matches s, in their original
// order, stopping once s.Limit rows are kept. Ranks are left untouched.
func (m *Matcher) FilterNGrams(rows []analytics.NGram, s Settings) []analytics.NGram {
	out := make([]analytics.NGram, 0, capHint(len(rows), s.Limit))
	for _, row := range rows {
		if s.Limit > 0 && len(out) >= s.Limit {
			break
		}
		if m.Matches(row.Sequence, s) {
			out = append(out, row)
		}
	}
	return out
}

// FilterWords is FilterNGrams for word rows.
func (m *Matcher) FilterWords(rows []analytics.Word, s Settings) []analytics.Word {
	out := make([]analytics.Word, 0, capHint(len(rows), s.Limit))
	for _, row := range rows {
		if s.Limit > 0 && len(out) >= s.Limit {
			break
		}
		if m.Matches(row.Word, s) {
			out = append(out, row)
		}
	}
	return out
}

// FilterNGrams filters with the Default matcher.
func FilterNGrams(rows []analytics.NGram, s Settings) []analytics.NGram {
	return Default.FilterNGrams(rows, s)
}

// FilterWords filters with the Default matcher.
func FilterWords(rows []analytics.Word, s Settings) []analytics.Word {
	return Default.FilterWords(rows, s)
}

func capHint(n, limit int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}
