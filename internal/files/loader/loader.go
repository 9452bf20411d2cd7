package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/catload/internal/checksum"
	"github.com/vvka-141/catload/internal/files/filesystem"
	"github.com/vvka-141/catload/pkg/catload"
)

// Loader implements catload.Loader over a FileSystemProvider.
type Loader struct {
	fs         filesystem.FileSystemProvider
	calculator checksum.Calculator
	opts       catload.CleanOptions
}

// NewLoader creates a loader reading through fsProvider.
// Only IDColumn and CategoriesColumn of opts are used.
func NewLoader(fsProvider filesystem.FileSystemProvider, calculator checksum.Calculator, opts catload.CleanOptions) *Loader {
	return &Loader{
		fs:         fsProvider,
		calculator: calculator,
		opts:       opts,
	}
}

// Load reads both sources and left-joins them on the id column.
func (l *Loader) Load(ctx context.Context, messagesPath, categoriesPath string) (*catload.Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	messages, messagesSrc, err := l.readSource(messagesPath)
	if err != nil {
		return nil, fmt.Errorf("messages: %w", err)
	}
	if messages.ColumnIndex(l.opts.IDColumn) < 0 {
		return nil, fmt.Errorf("messages %s: missing %q column: %w", messagesPath, l.opts.IDColumn, catload.ErrParse)
	}
	// A second copy would be renamed by the join and never decoded.
	if messages.ColumnIndex(l.opts.CategoriesColumn) >= 0 {
		return nil, fmt.Errorf("messages %s: unexpected %q column, it belongs to the categories source: %w",
			messagesPath, l.opts.CategoriesColumn, catload.ErrParse)
	}

	categories, categoriesSrc, err := l.readSource(categoriesPath)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	for _, required := range []string{l.opts.IDColumn, l.opts.CategoriesColumn} {
		if categories.ColumnIndex(required) < 0 {
			return nil, fmt.Errorf("categories %s: missing %q column: %w", categoriesPath, required, catload.ErrParse)
		}
	}

	joined, err := LeftJoin(messages, categories, l.opts.IDColumn)
	if err != nil {
		return nil, err
	}

	return &catload.Loaded{
		Table:      joined,
		Messages:   messagesSrc,
		Categories: categoriesSrc,
	}, nil
}

// readSource reads and parses one source file into a typed table.
func (l *Loader) readSource(path string) (*catload.Table, catload.Source, error) {
	content, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, catload.Source{}, fmt.Errorf("%s: %w", path, catload.ErrNotFound)
		}
		return nil, catload.Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var header []string
	var records [][]string
	if isSpreadsheet(path) {
		header, records, err = parseXLSX(content)
	} else {
		header, records, err = parseCSV(content)
	}
	if err != nil {
		return nil, catload.Source{}, fmt.Errorf("%s: %w", path, err)
	}

	if err := validateHeader(header); err != nil {
		return nil, catload.Source{}, fmt.Errorf("%s: %w", path, err)
	}

	src := catload.Source{
		Path:     path,
		Rows:     len(records),
		Checksum: l.calculator.CalculateRaw(content),
	}
	if !isSpreadsheet(path) {
		src.Fingerprint = l.calculator.CalculateNormalized(content)
	}
	return BuildTable(header, records), src, nil
}

func isSpreadsheet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func validateHeader(header []string) error {
	if len(header) == 0 {
		return fmt.Errorf("missing header row: %w", catload.ErrParse)
	}
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("header column %d is empty: %w", i+1, catload.ErrParse)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate header column %q: %w", name, catload.ErrParse)
		}
		seen[name] = struct{}{}
	}
	return nil
}
