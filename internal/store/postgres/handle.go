package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/catload/pkg/catload"
)

// Handle couples a Store with the connection it owns.
type Handle struct {
	*Store
	conn *pgx.Conn
}

// IsURL reports whether destination names a PostgreSQL server.
func IsURL(destination string) bool {
	return strings.HasPrefix(destination, "postgres://") || strings.HasPrefix(destination, "postgresql://")
}

// OpenHandle connects to the database named by connString.
func OpenHandle(ctx context.Context, connString string) (*Handle, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %v: %w", err, catload.ErrStorage)
	}
	return &Handle{Store: New(conn), conn: conn}, nil
}

// Conn exposes the underlying connection for inspection.
func (h *Handle) Conn() *pgx.Conn {
	return h.conn
}

// Close releases the connection.
func (h *Handle) Close() error {
	return h.conn.Close(context.Background())
}

// Count returns the number of rows stored in relation.
func (h *Handle) Count(ctx context.Context, relation string) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{relation}.Sanitize()
	if err := h.conn.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", relation, err)
	}
	return n, nil
}
