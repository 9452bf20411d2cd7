// Package postgres replaces relations in a PostgreSQL database using pgx.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/catload/pkg/catload"
)

// Conn is the part of *pgx.Conn the store needs.
type Conn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store implements catload.Store on a caller-owned connection.
type Store struct {
	conn Conn
}

// New creates a Store writing through conn.
func New(conn Conn) *Store {
	return &Store{conn: conn}
}

// Replace drops relation if it exists, recreates it and copies t into it,
// all inside one transaction.
func (s *Store) Replace(ctx context.Context, relation string, t *catload.Table) (err error) {
	if relation == "" {
		return fmt.Errorf("relation name is empty: %w", catload.ErrStorage)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%s: %v: %w", relation, err, catload.ErrStorage)
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v: %w", err, catload.ErrStorage)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	ident := pgx.Identifier{relation}.Sanitize()
	if _, err = tx.Exec(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop %s: %v: %w", relation, err, catload.ErrStorage)
	}
	if _, err = tx.Exec(ctx, createTableSQL(ident, t.Columns)); err != nil {
		return fmt.Errorf("failed to create %s: %v: %w", relation, err, catload.ErrStorage)
	}

	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = copyValue(v, t.Columns[j].Kind)
		}
		rows[i] = vals
	}

	copied, err := tx.CopyFrom(ctx, pgx.Identifier{relation}, t.ColumnNames(), pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy rows into %s: %v: %w", relation, err, catload.ErrStorage)
	}
	if copied != int64(len(rows)) {
		err = fmt.Errorf("copied %d of %d rows into %s: %w", copied, len(rows), relation, catload.ErrStorage)
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %v: %w", relation, err, catload.ErrStorage)
	}
	return nil
}

// copyValue converts a cell for the binary COPY protocol, which does not
// widen integers into float columns on its own.
func copyValue(v catload.Value, column catload.Kind) any {
	if n, ok := v.Int64(); ok && column == catload.KindReal {
		return float64(n)
	}
	return v.SQL()
}

func sqlType(k catload.Kind) string {
	switch k {
	case catload.KindInteger:
		return "BIGINT"
	case catload.KindReal:
		return "DOUBLE PRECISION"
	}
	return "TEXT"
}

func createTableSQL(ident string, cols []catload.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = pgx.Identifier{c.Name}.Sanitize() + " " + sqlType(c.Kind)
	}
	return "CREATE TABLE " + ident + " (" + strings.Join(defs, ", ") + ")"
}
