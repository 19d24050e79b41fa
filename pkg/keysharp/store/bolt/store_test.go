package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/keysharp/pkg/keysharp/store"
	"github.com/cognicore/keysharp/pkg/keysharp/store/storetest"
)

// newTestStore creates a bbolt store in a temporary directory.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	return s, path
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, _ := newTestStore(t)
		return s
	})
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	e := storetest.Sample("cat.txt:1")
	require.NoError(t, s.PutCounts(ctx, e))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	got, ok, err := s2.GetCounts(ctx, e.Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, e.Counts.Bigrams, got.Bigrams)

	list, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cat.txt", list[0].Name)
}

func TestCancelledContext(t *testing.T) {
	s, _ := newTestStore(t)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.PutCounts(ctx, storetest.Sample("k")), context.Canceled)
}
