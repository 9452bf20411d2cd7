package cleaner

import (
	"fmt"

	"github.com/vvka-141/catload/pkg/catload"
)

// Cleaner implements catload.Cleaner.
type Cleaner struct {
	opts catload.CleanOptions
}

// New creates a Cleaner. CategoriesColumn, Separator, FilterColumn and
// FilterValue of opts are used.
func New(opts catload.CleanOptions) *Cleaner {
	return &Cleaner{opts: opts}
}

// Clean decodes, filters and deduplicates t into a new table.
// A table whose categories column is already gone is only filtered and deduplicated,
// so cleaning a clean table returns an identical table.
func (c *Cleaner) Clean(t *catload.Table) (*catload.CleanResult, error) {
	if c.opts.Separator == "" {
		return nil, fmt.Errorf("separator is empty: %w", catload.ErrInvalidConfig)
	}

	res := &catload.CleanResult{RowsIn: t.Len()}

	decoded := t
	if ci := t.ColumnIndex(c.opts.CategoriesColumn); ci >= 0 {
		var err error
		decoded, res.Categories, err = decode(t, ci, c.opts.Separator)
		if err != nil {
			return nil, err
		}
	} else {
		decoded = t.Clone()
	}

	filtered, dropped, ok := filterValue(decoded, c.opts.FilterColumn, c.opts.FilterValue)
	res.FilteredOut = dropped
	res.FilterSkipped = !ok

	deduped, dups := dedupe(filtered)
	res.DuplicatesOut = dups
	res.Table = deduped

	return res, nil
}
