package catload

import "context"

// Source describes one loaded input file.
type Source struct {
	Path     string
	Rows     int
	Checksum string

	// Fingerprint ignores BOM and line-ending differences; empty for spreadsheets.
	Fingerprint string
}

// Loaded is the output of the Loader stage.
type Loaded struct {
	Table      *Table
	Messages   Source
	Categories Source
}

// Loader reads the two input sources and left-joins them on the id column.
type Loader interface {
	Load(ctx context.Context, messagesPath, categoriesPath string) (*Loaded, error)
}

// CleanResult is the output of the Cleaner stage.
type CleanResult struct {
	Table         *Table
	Categories    []string
	RowsIn        int
	FilteredOut   int
	DuplicatesOut int
	FilterSkipped bool
}

// Cleaner decodes, filters and deduplicates a joined table.
// Implementations must not modify their input.
type Cleaner interface {
	Clean(t *Table) (*CleanResult, error)
}

// Store replaces a named relation with the contents of a table.
type Store interface {
	Replace(ctx context.Context, relation string, t *Table) error
}

// StoreHandle is an open output store whose lifetime is owned by the caller.
type StoreHandle interface {
	Store
	Close() error
}

// StoreOpener opens the output store for a destination.
type StoreOpener func(ctx context.Context, destination string) (StoreHandle, error)
