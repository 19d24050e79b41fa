// Package storetest holds the behavior every store.Store implementation
// must share. Implementation packages call Run from their tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/ngram"
	"github.com/cognicore/keysharp/pkg/keysharp/store"
)

// Factory returns a fresh, empty store. The test closes it.
type Factory func(t *testing.T) store.Store

// Run exercises the store.Store contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, newStore(t)) })
	t.Run("Miss", func(t *testing.T) { testMiss(t, newStore(t)) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, newStore(t)) })
	t.Run("ListAndDelete", func(t *testing.T) { testListAndDelete(t, newStore(t)) })
	t.Run("EmptyKey", func(t *testing.T) { testEmptyKey(t, newStore(t)) })
	t.Run("EmptyTables", func(t *testing.T) { testEmptyTables(t, newStore(t)) })
}

// Sample is the entry used by the contract tests.
func Sample(key string) store.Entry {
	return store.Entry{
		Key:       key,
		Name:      "cat.txt",
		Counts:    ngram.Extract("The cat sat. The CAT ran."),
		Chars:     25,
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func testRoundTrip(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()
	e := Sample("cat.txt:abc")

	require.NoError(t, s.PutCounts(ctx, e))

	got, ok, err := s.GetCounts(ctx, e.Key)
	require.NoError(t, err)
	require.True(t, ok)
	for _, class := range ngram.Classes() {
		assert.Equal(t, e.Counts.Table(class), got.Table(class), "%s table", class)
	}

	// Mutating the returned tables must not reach the store.
	got.Words["The"] = 99
	again, _, err := s.GetCounts(ctx, e.Key)
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.Words["The"])
}

func testMiss(t *testing.T, s store.Store) {
	defer s.Close()
	_, ok, err := s.GetCounts(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func testOverwrite(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	e := Sample("k")
	require.NoError(t, s.PutCounts(ctx, e))

	e.Counts = ngram.Extract("zz")
	e.Chars = 2
	require.NoError(t, s.PutCounts(ctx, e))

	got, ok, err := s.GetCounts(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ngram.Table{"zz": 1}, got.Words)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(2), list[0].Chars)
}

func testListAndDelete(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.PutCounts(ctx, Sample("b")))
	require.NoError(t, s.PutCounts(ctx, Sample("a")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Key)
	assert.Equal(t, "b", list[1].Key)
	assert.Equal(t, "cat.txt", list[0].Name)
	assert.Equal(t, int64(25), list[0].Chars)
	assert.True(t, list[0].CreatedAt.Equal(Sample("a").CreatedAt), "created_at = %v", list[0].CreatedAt)
	assert.Nil(t, list[0].Counts.Words, "List must not carry tables")

	require.NoError(t, s.Delete(ctx, "a"))
	_, ok, err := s.GetCounts(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	err = s.Delete(ctx, "a")
	assert.ErrorIs(t, err, internalerr.ErrNotFound)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Key)
}

func testEmptyKey(t *testing.T, s store.Store) {
	defer s.Close()
	err := s.PutCounts(context.Background(), store.Entry{Name: "x"})
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func testEmptyTables(t *testing.T, s store.Store) {
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.PutCounts(ctx, store.Entry{Key: "empty", Counts: ngram.Extract("")}))
	got, ok, err := s.GetCounts(ctx, "empty")
	require.NoError(t, err)
	require.True(t, ok)
	for _, class := range ngram.Classes() {
		require.NotNil(t, got.Table(class), "%s table", class)
		assert.Equal(t, 0, got.Table(class).Len())
	}
}
