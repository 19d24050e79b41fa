// Package ngram extracts raw character n-gram and word frequency tables
// from text in a single pass.
//
// Text is indexed by Unicode code point (rune), not by UTF-16 code unit:
// a character outside the BMP is one monogram, never two surrogate halves.
package ngram

import (
	"strings"
	"unicode"
)

// IsWhitespace reports whether r separates words. The set is the Unicode
// White_Space property without U+0085 (NEL), plus U+FEFF (BOM), which is the
// classifier the frequency tables were originally defined against.
func IsWhitespace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}
	return unicode.IsSpace(r)
}

// Extract counts every monogram, bigram, trigram and whitespace-delimited
// word in text. Empty input yields four empty tables.
func Extract(text string) Counts {
	runes := []rune(text)
	counts := NewCounts()
	countRange(runes, 0, len(runes), counts)
	return counts
}

// countRange counts n-grams starting at positions [lo, hi) against the whole
// rune slice, and the words contained in [lo, hi). Callers must place lo and
// hi on text boundaries or whitespace so no word is cut.
func countRange(runes []rune, lo, hi int, c Counts) {
	n := len(runes)
	var word strings.Builder

	for i := lo; i < hi; i++ {
		r := runes[i]

		c.Monograms[string(r)]++
		if i+1 < n {
			c.Bigrams[string(runes[i:i+2])]++
		}
		if i+2 < n {
			c.Trigrams[string(runes[i:i+3])]++
		}

		if IsWhitespace(r) {
			if word.Len() > 0 {
				c.Words[word.String()]++
				word.Reset()
			}
			continue
		}
		word.WriteRune(r)
	}

	// Don't forget the last word
	if word.Len() > 0 {
		c.Words[word.String()]++
	}
}
