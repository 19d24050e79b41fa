// Package keysharp analyzes the character and word statistics of a corpus.
//
// The Engine extracts raw n-gram and word tables from text, aggregates
// them under the caller's filter settings and filters the ranked rows with
// a literal or regex query. Raw tables of named corpora are cached in a
// store.Store keyed by content, so changing filters never re-reads the text.
package keysharp

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cognicore/keysharp/internal/logger"
	"github.com/cognicore/keysharp/pkg/keysharp/analytics"
	"github.com/cognicore/keysharp/pkg/keysharp/corpus"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
	"github.com/cognicore/keysharp/pkg/keysharp/search"
	"github.com/cognicore/keysharp/pkg/keysharp/store"
	"github.com/cognicore/keysharp/pkg/keysharp/store/memstore"
)

// Engine is the main analysis facade
type Engine struct {
	store   store.Store
	shards  int
	matcher *search.Matcher
	log     *log.Logger
}

// Options configures an Engine. Zero values select an in-memory store,
// single-pass extraction, the shared matcher and no logging.
type Options struct {
	Store   store.Store
	Shards  int
	Matcher *search.Matcher
	Logger  *log.Logger
}

// New creates an Engine with the given dependencies
func New(opts Options) *Engine {
	e := &Engine{
		store:   opts.Store,
		shards:  opts.Shards,
		matcher: opts.Matcher,
		log:     opts.Logger,
	}
	if e.store == nil {
		e.store = memstore.New()
	}
	if e.matcher == nil {
		e.matcher = search.Default
	}
	if e.log == nil {
		e.log = logger.Discard()
	}
	return e
}

// Close releases the store.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Store returns the raw-table cache.
func (e *Engine) Store() store.Store { return e.store }

// Extract builds the raw tables for text, sharded when configured.
func (e *Engine) Extract(ctx context.Context, text string) (ngram.Counts, error) {
	start := time.Now()
	var (
		counts ngram.Counts
		err    error
	)
	if e.shards > 1 {
		counts, err = ngram.ExtractSharded(ctx, text, e.shards)
		if err != nil {
			return ngram.Counts{}, fmt.Errorf("extract: %w", err)
		}
	} else {
		counts = ngram.Extract(text)
	}
	e.log.Debug("extracted", "chars", counts.Monograms.Total(), "words", counts.Words.Total(), "took", time.Since(start))
	return counts, nil
}

// Analyze extracts and aggregates text. Nothing is cached.
func (e *Engine) Analyze(ctx context.Context, text string, f analytics.FilterSettings) (analytics.Result, error) {
	counts, err := e.Extract(ctx, text)
	if err != nil {
		return analytics.Result{}, err
	}
	return analytics.Analyze(counts, f), nil
}

// Counts returns the raw tables of c, reading them from the store when an
// entry for c.Key() exists and saving them after extraction otherwise.
// Store failures are logged and never stop the analysis.
func (e *Engine) Counts(ctx context.Context, c corpus.Corpus) (ngram.Counts, error) {
	key := c.Key()

	cached, ok, err := e.store.GetCounts(ctx, key)
	if err != nil {
		e.log.Warn("cache read failed", "corpus", c.Name, "err", err)
	} else if ok {
		e.log.Debug("cache hit", "corpus", c.Name)
		return cached, nil
	}

	counts, err := e.Extract(ctx, c.Text)
	if err != nil {
		return ngram.Counts{}, err
	}

	entry := store.Entry{
		Key:       key,
		Name:      c.Name,
		Counts:    counts,
		Chars:     c.Chars(),
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.PutCounts(ctx, entry); err != nil {
		e.log.Warn("cache write failed", "corpus", c.Name, "err", err)
	}
	return counts, nil
}

// AnalyzeCorpus aggregates the (possibly cached) raw tables of c.
func (e *Engine) AnalyzeCorpus(ctx context.Context, c corpus.Corpus, f analytics.FilterSettings) (analytics.Result, error) {
	counts, err := e.Counts(ctx, c)
	if err != nil {
		return analytics.Result{}, err
	}
	r := analytics.Analyze(counts, f)
	e.log.Info("analyzed", "corpus", c.Name, "id", c.ID,
		"monograms", len(r.Monograms), "bigrams", len(r.Bigrams),
		"trigrams", len(r.Trigrams), "words", len(r.Words))
	return r, nil
}

// Search returns the rows of class that match s, in rank order and capped
// at s.Limit. Rows keep their global rank.
func (e *Engine) Search(r analytics.Result, class ngram.Class, s search.Settings) []analytics.NGram {
	return e.matcher.FilterNGrams(r.Ranked(class), s)
}

// SearchWords is Search for the word list in its native row type.
func (e *Engine) SearchWords(r analytics.Result, s search.Settings) []analytics.Word {
	return e.matcher.FilterWords(r.Words, s)
}
