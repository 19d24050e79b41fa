package analytics

import (
	"strings"

	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

// FilterSettings controls which n-grams survive aggregation and whether
// case variants are merged.
type FilterSettings struct {
	FilterWhitespace  bool `json:"filter_whitespace" yaml:"filter_whitespace" toml:"filter_whitespace"`
	FilterPunctuation bool `json:"filter_punctuation" yaml:"filter_punctuation" toml:"filter_punctuation"`
	CaseSensitive     bool `json:"case_sensitive" yaml:"case_sensitive" toml:"case_sensitive"`
}

// dropSequence reports whether any rune of seq is excluded by f.
// Sequences are dropped whole, never trimmed.
func dropSequence(seq string, f FilterSettings) bool {
	if !f.FilterWhitespace && !f.FilterPunctuation {
		return false
	}
	for _, r := range seq {
		ws := ngram.IsWhitespace(r)
		if f.FilterWhitespace && ws {
			return true
		}
		if f.FilterPunctuation && !ws && !isWordChar(r) {
			return true
		}
	}
	return false
}

// isWordChar matches the ASCII word class [A-Za-z0-9_], the same set as `\w`
// in Go's regexp package.
func isWordChar(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

func normalize(seq string, caseSensitive bool) string {
	if caseSensitive {
		return seq
	}
	return strings.ToLower(seq)
}
