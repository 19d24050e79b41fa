// Package analytics turns raw frequency tables into filtered, case-normalized,
// ranked lists.
package analytics

import (
	"sort"

	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

// NGram is one ranked monogram, bigram or trigram.
type NGram struct {
	Sequence  string `json:"sequence"`
	Frequency int64  `json:"frequency"`
	Rank      int    `json:"rank"`
}

// Word is one ranked word. Its rank is its position in the list.
type Word struct {
	Word      string `json:"word"`
	Frequency int64  `json:"frequency"`
}

// countMap is a reaggregated table plus the sum of the counts folded into it.
type countMap struct {
	counts map[string]int64
	total  int64
}

// Aggregate filters, normalizes and reaggregates an n-gram table and returns
// the ranked entries with the total retained count.
func Aggregate(table ngram.Table, f FilterSettings) ([]NGram, int64) {
	cm := fold(table, f, true)
	entries := sortedEntries(cm.counts)

	out := make([]NGram, len(entries))
	for i, e := range entries {
		out[i] = NGram{Sequence: e.key, Frequency: e.count, Rank: i + 1}
	}
	return out, cm.total
}

// AggregateWords normalizes and reaggregates a word table. Words are never
// dropped; only f.CaseSensitive applies.
func AggregateWords(table ngram.Table, f FilterSettings) ([]Word, int64) {
	cm := fold(table, f, false)
	entries := sortedEntries(cm.counts)

	out := make([]Word, len(entries))
	for i, e := range entries {
		out[i] = Word{Word: e.key, Frequency: e.count}
	}
	return out, cm.total
}

func fold(table ngram.Table, f FilterSettings, filter bool) countMap {
	cm := countMap{counts: make(map[string]int64, len(table))}
	for seq, count := range table {
		if count <= 0 {
			continue
		}
		if filter && dropSequence(seq, f) {
			continue
		}
		cm.counts[normalize(seq, f.CaseSensitive)] += count
		cm.total += count
	}
	return cm
}

type entry struct {
	key   string
	count int64
}

// sortedEntries orders by count descending, then key ascending by byte
// comparison, which for UTF-8 is code point order.
func sortedEntries(counts map[string]int64) []entry {
	entries := make([]entry, 0, len(counts))
	for k, c := range counts {
		entries = append(entries, entry{key: k, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].key < entries[j].key
		}
		return entries[i].count > entries[j].count
	})
	return entries
}
