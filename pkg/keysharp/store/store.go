package store

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
)

// Store caches the raw n-gram tables of a corpus under its content key.
// Aggregated results are never stored; they depend on the filter settings.
type Store interface {
	Close() error

	PutCounts(ctx context.Context, e Entry) error
	GetCounts(ctx context.Context, key string) (ngram.Counts, bool, error)
	// List returns entry metadata ordered by key. Counts are left empty.
	List(ctx context.Context) ([]Entry, error)
	Delete(ctx context.Context, key string) error
}

// Entry is one cached corpus.
type Entry struct {
	Key       string
	Name      string
	Counts    ngram.Counts
	Chars     int64
	CreatedAt time.Time
}

// Validate checks the fields every implementation relies on.
func (e Entry) Validate() error {
	if e.Key == "" {
		return fmt.Errorf("entry key is empty: %w", internalerr.ErrInvalidInput)
	}
	return nil
}

// Meta returns e without its tables.
func (e Entry) Meta() Entry {
	e.Counts = ngram.Counts{}
	return e
}

// countsPayload is the on-disk form of ngram.Counts.
type countsPayload struct {
	Monograms map[string]int64 `msgpack:"m"`
	Bigrams   map[string]int64 `msgpack:"b"`
	Trigrams  map[string]int64 `msgpack:"t"`
	Words     map[string]int64 `msgpack:"w"`
}

// EncodeCounts serializes the four tables with msgpack.
func EncodeCounts(c ngram.Counts) ([]byte, error) {
	data, err := msgpack.Marshal(countsPayload{
		Monograms: c.Monograms,
		Bigrams:   c.Bigrams,
		Trigrams:  c.Trigrams,
		Words:     c.Words,
	})
	if err != nil {
		return nil, fmt.Errorf("encode counts: %w", err)
	}
	return data, nil
}

// DecodeCounts is the inverse of EncodeCounts. Missing tables decode as
// empty, never nil.
func DecodeCounts(data []byte) (ngram.Counts, error) {
	var p countsPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return ngram.Counts{}, fmt.Errorf("decode counts: %w", err)
	}

	out := ngram.NewCounts()
	for k, v := range p.Monograms {
		out.Monograms[k] = v
	}
	for k, v := range p.Bigrams {
		out.Bigrams[k] = v
	}
	for k, v := range p.Trigrams {
		out.Trigrams[k] = v
	}
	for k, v := range p.Words {
		out.Words[k] = v
	}
	return out, nil
}
