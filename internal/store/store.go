// Package store resolves a pipeline destination to an output store backend.
//
// Destinations starting with postgres:// or postgresql:// are written to a
// PostgreSQL server; any other destination is a SQLite database file that is
// created when missing.
package store

import (
	"context"

	"github.com/vvka-141/catload/internal/store/postgres"
	"github.com/vvka-141/catload/internal/store/sqlite"
	"github.com/vvka-141/catload/pkg/catload"
)

// Backend names a store implementation.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// BackendFor returns the backend that serves destination.
func BackendFor(destination string) Backend {
	if postgres.IsURL(destination) {
		return BackendPostgres
	}
	return BackendSQLite
}

// Open opens the store for destination. The caller owns the returned handle.
// It satisfies catload.StoreOpener.
func Open(ctx context.Context, destination string) (catload.StoreHandle, error) {
	if BackendFor(destination) == BackendPostgres {
		h, err := postgres.OpenHandle(ctx, destination)
		if err != nil {
			return nil, err
		}
		return h, nil
	}

	h, err := sqlite.OpenHandle(ctx, destination)
	if err != nil {
		return nil, err
	}
	return h, nil
}

var _ catload.StoreOpener = Open
