package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
	"github.com/cognicore/keysharp/pkg/keysharp/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]store.Entry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]store.Entry)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// PutCounts stores a copy of e, replacing any entry with the same key.
func (s *Store) PutCounts(ctx context.Context, e store.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	e.Counts = copyCounts(e.Counts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Key] = e
	return nil
}

// GetCounts returns a copy of the cached tables.
func (s *Store) GetCounts(ctx context.Context, key string) (ngram.Counts, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return ngram.Counts{}, false, nil
	}
	return copyCounts(e.Counts), true, nil
}

// List returns entry metadata sorted by key.
func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Meta())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Delete removes an entry.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return fmt.Errorf("entry %q: %w", key, internalerr.ErrNotFound)
	}
	delete(s.entries, key)
	return nil
}

func copyCounts(c ngram.Counts) ngram.Counts {
	out := ngram.NewCounts()
	for _, class := range ngram.Classes() {
		dst := out.Table(class)
		for k, v := range c.Table(class) {
			dst[k] = v
		}
	}
	return out
}
