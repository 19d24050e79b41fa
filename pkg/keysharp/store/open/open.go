// Package open picks a store implementation by driver name.
package open

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/keysharp/pkg/keysharp/internalerr"
	"github.com/cognicore/keysharp/pkg/keysharp/store"
	"github.com/cognicore/keysharp/pkg/keysharp/store/bolt"
	"github.com/cognicore/keysharp/pkg/keysharp/store/memstore"
	"github.com/cognicore/keysharp/pkg/keysharp/store/sqlite"
)

// Driver names accepted by Open.
const (
	Memory = "memory"
	SQLite = "sqlite"
	Bolt   = "bolt"
)

// Drivers lists the known driver names.
func Drivers() []string { return []string{Memory, SQLite, Bolt} }

// Known reports whether driver names an implementation. Empty means memory.
func Known(driver string) bool {
	switch strings.ToLower(driver) {
	case "", Memory, SQLite, Bolt:
		return true
	}
	return false
}

// Open returns the store for driver. The file-backed drivers need a path;
// its parent directory is created if missing.
func Open(ctx context.Context, driver, path string) (store.Store, error) {
	switch strings.ToLower(driver) {
	case "", Memory:
		return memstore.New(), nil
	case SQLite, Bolt:
	default:
		return nil, fmt.Errorf("store driver %q: %w", driver, internalerr.ErrInvalidConfig)
	}

	if path == "" {
		return nil, fmt.Errorf("store driver %q needs a path: %w", driver, internalerr.ErrInvalidConfig)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	var (
		s   store.Store
		err error
	)
	if strings.ToLower(driver) == SQLite {
		s, err = sqlite.OpenSQLite(ctx, path)
	} else {
		s, err = bolt.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	return s, nil
}
