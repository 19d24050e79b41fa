// Package bolt implements store.Store on bbolt. Tables live in the
// "counts" bucket as msgpack blobs, and entry metadata lives in "meta" so
// List never decodes a table.
package bolt

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	bbolt "go.etcd.io/bbolt"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
	"github.com/cognicore/keysharp/pkg/keysharp/store"
)

var (
	bucketCounts = []byte("counts")
	bucketMeta   = []byte("meta")
)

// Store implements store.Store backed by bbolt.
type Store struct {
	db *bbolt.DB
}

type meta struct {
	Name      string    `msgpack:"name"`
	Chars     int64     `msgpack:"chars"`
	CreatedAt time.Time `msgpack:"created_at"`
}

// Open opens (or creates) a bbolt database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketCounts); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init buckets: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutCounts writes the tables and metadata in one transaction.
func (s *Store) PutCounts(ctx context.Context, e store.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	payload, err := store.EncodeCounts(e.Counts)
	if err != nil {
		return err
	}
	m, err := msgpack.Marshal(meta{Name: e.Name, Chars: e.Chars, CreatedAt: e.CreatedAt.UTC()})
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}

	key := []byte(e.Key)
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketCounts).Put(key, payload); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put(key, m)
	})
}

// GetCounts returns the cached tables for key.
func (s *Store) GetCounts(ctx context.Context, key string) (ngram.Counts, bool, error) {
	if err := ctx.Err(); err != nil {
		return ngram.Counts{}, false, err
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := tx.Bucket(bucketCounts).Get([]byte(key)); v != nil {
			payload = bytes.Clone(v)
		}
		return nil
	})
	if err != nil {
		return ngram.Counts{}, false, fmt.Errorf("get counts %q: %w", key, err)
	}
	if payload == nil {
		return ngram.Counts{}, false, nil
	}

	counts, err := store.DecodeCounts(payload)
	if err != nil {
		return ngram.Counts{}, false, fmt.Errorf("entry %q: %w", key, err)
	}
	return counts, true, nil
}

// List returns entry metadata in key order.
func (s *Store) List(ctx context.Context) ([]store.Entry, error) {
	var out []store.Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketMeta).ForEach(func(k, v []byte) error {
			var m meta
			if err := msgpack.Unmarshal(v, &m); err != nil {
				return fmt.Errorf("decode meta %q: %w", k, err)
			}
			out = append(out, store.Entry{
				Key:       string(k),
				Name:      m.Name,
				Chars:     m.Chars,
				CreatedAt: m.CreatedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

// Delete removes the entry from both buckets.
func (s *Store) Delete(ctx context.Context, key string) error {
	k := []byte(key)
	return s.db.Update(func(tx *bbolt.Tx) error {
		cb := tx.Bucket(bucketCounts)
		if cb.Get(k) == nil {
			return fmt.Errorf("entry %q: %w", key, internalerr.ErrNotFound)
		}
		if err := cb.Delete(k); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Delete(k)
	})
}
