package analytics

import (
	"reflect"
	"testing"

	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

func TestAggregateCaseReaggregation(t *testing.T) {
	raw := ngram.Table{"A": 3, "a": 2}

	got, total := Aggregate(raw, FilterSettings{CaseSensitive: false})
	want := []NGram{{Sequence: "a", Frequency: 5, Rank: 1}}
	if !reflect.DeepEqual(got, want) || total != 5 {
		t.Errorf("case-insensitive: got %v (total %d), want %v (total 5)", got, total, want)
	}

	got, total = Aggregate(raw, FilterSettings{CaseSensitive: true})
	want = []NGram{
		{Sequence: "A", Frequency: 3, Rank: 1},
		{Sequence: "a", Frequency: 2, Rank: 2},
	}
	if !reflect.DeepEqual(got, want) || total != 5 {
		t.Errorf("case-sensitive: got %v (total %d), want %v (total 5)", got, total, want)
	}
}

func TestAggregateTieBreak(t *testing.T) {
	got, _ := Aggregate(ngram.Table{"b": 2, "a": 2}, FilterSettings{CaseSensitive: true})
	want := []NGram{
		{Sequence: "a", Frequency: 2, Rank: 1},
		{Sequence: "b", Frequency: 2, Rank: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAggregateOrdinalTieBreak(t *testing.T) {
	// Ordinal order puts uppercase before lowercase and ASCII before accents,
	// unlike locale collation.
	got, _ := Aggregate(ngram.Table{"é": 1, "b": 1, "B": 1, "a": 1}, FilterSettings{CaseSensitive: true})
	var seqs []string
	for _, e := range got {
		seqs = append(seqs, e.Sequence)
	}
	want := []string{"B", "a", "b", "é"}
	if !reflect.DeepEqual(seqs, want) {
		t.Errorf("order = %v, want %v", seqs, want)
	}
}

func TestAggregateDenseRanks(t *testing.T) {
	raw := ngram.Table{"x": 5, "y": 5, "z": 1, "w": 3}
	got, _ := Aggregate(raw, FilterSettings{CaseSensitive: true})
	for i, e := range got {
		if e.Rank != i+1 {
			t.Errorf("entry %d has rank %d", i, e.Rank)
		}
		if e.Frequency <= 0 {
			t.Errorf("entry %q has non-positive frequency", e.Sequence)
		}
		if i > 0 && got[i-1].Frequency < e.Frequency {
			t.Errorf("entries not sorted by frequency: %v", got)
		}
	}
}

func TestAggregatePunctuationDrop(t *testing.T) {
	raw := ngram.Extract("a,a b").Bigrams
	// raw bigrams: "a,", ",a", "a ", " b"
	got, total := Aggregate(raw, FilterSettings{FilterPunctuation: true, CaseSensitive: true})

	for _, e := range got {
		if e.Sequence == ",a" || e.Sequence == "a," {
			t.Errorf("bigram %q with a comma should be dropped", e.Sequence)
		}
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 (\"a \" and \" b\")", total)
	}

	// The comma alone is also punctuation.
	mono, _ := Aggregate(ngram.Extract("a,a").Monograms, FilterSettings{FilterPunctuation: true})
	if len(mono) != 1 || mono[0].Sequence != "a" || mono[0].Frequency != 2 {
		t.Errorf("monograms = %v", mono)
	}
}

func TestAggregateWhitespaceDrop(t *testing.T) {
	raw := ngram.Extract("ab cd").Trigrams
	got, total := Aggregate(raw, FilterSettings{FilterWhitespace: true, CaseSensitive: true})
	if total != 0 || len(got) != 0 {
		t.Errorf("every trigram of %q spans the space, got %v total %d", "ab cd", got, total)
	}

	bi, total := Aggregate(ngram.Extract("ab cd").Bigrams, FilterSettings{FilterWhitespace: true, CaseSensitive: true})
	want := []NGram{{"ab", 1, 1}, {"cd", 1, 2}}
	if !reflect.DeepEqual(bi, want) || total != 2 {
		t.Errorf("bigrams = %v total %d, want %v total 2", bi, total, want)
	}
}

func TestAggregateNonASCIILettersArePunctuation(t *testing.T) {
	got, _ := Aggregate(ngram.Table{"é": 4, "e": 1}, FilterSettings{FilterPunctuation: true})
	if len(got) != 1 || got[0].Sequence != "e" {
		t.Errorf("got %v, want only \"e\"", got)
	}
}

func TestAggregateFilterIdempotence(t *testing.T) {
	raw := ngram.Extract("abcabcxyz").Trigrams
	f := FilterSettings{FilterWhitespace: true, CaseSensitive: true}

	filtered, _ := Aggregate(raw, f)
	plain, _ := Aggregate(raw, FilterSettings{CaseSensitive: true})
	if !reflect.DeepEqual(filtered, plain) {
		t.Errorf("filtering text with no whitespace should be a no-op")
	}
}

func TestAggregateEverythingFiltered(t *testing.T) {
	got, total := Aggregate(ngram.Table{" ": 4, "\t": 1}, FilterSettings{FilterWhitespace: true})
	if len(got) != 0 || total != 0 {
		t.Errorf("got %v total %d, want empty and 0", got, total)
	}

	got, total = Aggregate(nil, FilterSettings{})
	if len(got) != 0 || total != 0 {
		t.Errorf("nil table: got %v total %d", got, total)
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	raw := ngram.Table{"A": 3, "a": 2, ",": 1}
	before := raw.Clone()
	Aggregate(raw, FilterSettings{FilterPunctuation: true})
	if !reflect.DeepEqual(raw, before) {
		t.Errorf("input table changed: %v", raw)
	}
}

func TestAggregateWordsIgnoresCharacterFilters(t *testing.T) {
	raw := ngram.Table{"it's.": 2, "Don't": 1, "don't": 1}
	f := FilterSettings{FilterWhitespace: true, FilterPunctuation: true}

	got, total := AggregateWords(raw, f)
	want := []Word{{"don't", 2}, {"it's.", 2}}
	if !reflect.DeepEqual(got, want) || total != 4 {
		t.Errorf("got %v total %d, want %v total 4", got, total, want)
	}
}

func TestAnalyzeRoundTripScenario(t *testing.T) {
	counts := ngram.Extract("The cat sat. The CAT ran.")
	f := FilterSettings{FilterPunctuation: true}

	r := Analyze(counts, f)

	wantWords := []Word{
		{"cat", 2},
		{"the", 2},
		{"ran.", 1},
		{"sat.", 1},
	}
	if !reflect.DeepEqual(r.Words, wantWords) {
		t.Errorf("words = %v, want %v", r.Words, wantWords)
	}
	if r.Totals.Words != 6 {
		t.Errorf("word total = %d, want 6", r.Totals.Words)
	}

	// Monograms: 25 chars, minus the two periods.
	if r.Totals.Monograms != 23 {
		t.Errorf("monogram total = %d, want 23", r.Totals.Monograms)
	}
	if r.Monograms[0].Sequence != " " {
		t.Errorf("space should be the most frequent monogram, got %v", r.Monograms[0])
	}

	for _, class := range ngram.Classes() {
		var sum int64
		for _, e := range r.Ranked(class) {
			sum += e.Frequency
		}
		if sum != r.Total(class) {
			t.Errorf("%s: sum of frequencies %d != total %d", class, sum, r.Total(class))
		}
	}
}

func TestResultRankedWords(t *testing.T) {
	r := Result{Words: []Word{{"b", 3}, {"a", 1}}}
	got := r.Ranked(ngram.Word)
	want := []NGram{{"b", 3, 1}, {"a", 1, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
