package analytics

import (
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

// Totals holds the retained occurrence count per token class.
type Totals struct {
	Monograms int64 `json:"monograms"`
	Bigrams   int64 `json:"bigrams"`
	Trigrams  int64 `json:"trigrams"`
	Words     int64 `json:"words"`
}

// Result is one complete analysis. It is built fresh for every request.
type Result struct {
	Monograms []NGram `json:"monograms"`
	Bigrams   []NGram `json:"bigrams"`
	Trigrams  []NGram `json:"trigrams"`
	Words     []Word  `json:"words"`
	Totals    Totals  `json:"totals"`
}

// Analyze aggregates all four raw tables with the same filter settings.
func Analyze(counts ngram.Counts, f FilterSettings) Result {
	var r Result
	r.Monograms, r.Totals.Monograms = Aggregate(counts.Monograms, f)
	r.Bigrams, r.Totals.Bigrams = Aggregate(counts.Bigrams, f)
	r.Trigrams, r.Totals.Trigrams = Aggregate(counts.Trigrams, f)
	r.Words, r.Totals.Words = AggregateWords(counts.Words, f)
	return r
}

// Total returns the retained count for class.
func (r Result) Total(class ngram.Class) int64 {
	switch class {
	case ngram.Monogram:
		return r.Totals.Monograms
	case ngram.Bigram:
		return r.Totals.Bigrams
	case ngram.Trigram:
		return r.Totals.Trigrams
	case ngram.Word:
		return r.Totals.Words
	}
	return 0
}

// Ranked returns the rows for class as NGram values. Word rows get their
// position as rank so every class can be displayed or exported uniformly.
func (r Result) Ranked(class ngram.Class) []NGram {
	switch class {
	case ngram.Monogram:
		return r.Monograms
	case ngram.Bigram:
		return r.Bigrams
	case ngram.Trigram:
		return r.Trigrams
	case ngram.Word:
		out := make([]NGram, len(r.Words))
		for i, w := range r.Words {
			out[i] = NGram{Sequence: w.Word, Frequency: w.Frequency, Rank: i + 1}
		}
		return out
	}
	return nil
}
