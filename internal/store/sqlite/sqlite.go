// Package sqlite replaces relations in an embedded SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/vvka-141/catload/pkg/catload"
)

// Open opens (or creates) the SQLite database at path with a single connection.
// The caller owns the returned handle and must Close it.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %v: %w", path, err, catload.ErrStorage)
	}

	// Pragmas are per connection, so the pool is pinned to one.
	db.SetMaxOpenConns(1)

	// DELETE journal keeps the output a single file once the writer closes.
	// FULL sync makes COMMIT durable before Replace returns.
	pragmas := []string{
		"PRAGMA journal_mode = DELETE",
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to open database %s: %v: %w", path, err, catload.ErrStorage)
		}
	}

	return db, nil
}

// Store implements catload.Store on a caller-owned *sql.DB.
type Store struct {
	db *sql.DB
}

// New creates a Store writing through db.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Replace drops relation if it exists and recreates it with the contents of t.
// Everything runs in one transaction: on failure the previous relation is untouched.
func (s *Store) Replace(ctx context.Context, relation string, t *catload.Table) (err error) {
	if relation == "" {
		return fmt.Errorf("relation name is empty: %w", catload.ErrStorage)
	}
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%s: %v: %w", relation, err, catload.ErrStorage)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v: %w", err, catload.ErrStorage)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(relation)); err != nil {
		return fmt.Errorf("failed to drop %s: %v: %w", relation, err, catload.ErrStorage)
	}
	if _, err = tx.ExecContext(ctx, createTableSQL(relation, t.Columns)); err != nil {
		return fmt.Errorf("failed to create %s: %v: %w", relation, err, catload.ErrStorage)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(relation, t.Columns))
	if err != nil {
		return fmt.Errorf("failed to prepare insert into %s: %v: %w", relation, err, catload.ErrStorage)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for i, row := range t.Rows {
		for j, v := range row {
			args[j] = v.SQL()
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %v: %w", i+1, relation, err, catload.ErrStorage)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %v: %w", relation, err, catload.ErrStorage)
	}
	return nil
}

// Relation describes a stored relation.
type Relation struct {
	Columns []catload.Column
	Rows    int
}

// Describe returns the declared columns and row count of relation.
func Describe(ctx context.Context, db *sql.DB, relation string) (*Relation, error) {
	rows, err := db.QueryContext(ctx, "SELECT name, type FROM pragma_table_info(?) ORDER BY cid", relation)
	if err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", relation, err)
	}
	defer rows.Close()

	rel := &Relation{}
	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("failed to describe %s: %w", relation, err)
		}
		rel.Columns = append(rel.Columns, catload.Column{Name: name, Kind: kindForType(typ)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to describe %s: %w", relation, err)
	}
	if len(rel.Columns) == 0 {
		return nil, fmt.Errorf("relation %s does not exist", relation)
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(relation)).Scan(&rel.Rows); err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", relation, err)
	}
	return rel, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sqlType(k catload.Kind) string {
	switch k {
	case catload.KindInteger:
		return "INTEGER"
	case catload.KindReal:
		return "REAL"
	}
	return "TEXT"
}

func kindForType(typ string) catload.Kind {
	switch strings.ToUpper(typ) {
	case "INTEGER":
		return catload.KindInteger
	case "REAL":
		return catload.KindReal
	}
	return catload.KindText
}

func createTableSQL(relation string, cols []catload.Column) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c.Name) + " " + sqlType(c.Kind)
	}
	return "CREATE TABLE " + quoteIdent(relation) + " (" + strings.Join(defs, ", ") + ")"
}

func insertSQL(relation string, cols []catload.Column) string {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c.Name)
		marks[i] = "?"
	}
	return "INSERT INTO " + quoteIdent(relation) + " (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}
