package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Handle couples a Store with the database it owns.
type Handle struct {
	*Store
	db *sql.DB
}

// OpenHandle opens the database at path and wraps it in a Store.
func OpenHandle(ctx context.Context, path string) (*Handle, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Handle{Store: New(db), db: db}, nil
}

// DB exposes the underlying database for inspection.
func (h *Handle) DB() *sql.DB {
	return h.db
}

// Close releases the database connection.
func (h *Handle) Close() error {
	return h.db.Close()
}

// Count returns the number of rows stored in relation.
func (h *Handle) Count(ctx context.Context, relation string) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(relation)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", relation, err)
	}
	return n, nil
}
