package catload

import (
	"errors"
	"fmt"
)

// PipelineConfig contains all parameters needed for one pipeline run.
type PipelineConfig struct {
	// MessagesPath is the messages source (CSV or XLSX)
	MessagesPath string

	// CategoriesPath is the categories source (CSV or XLSX)
	CategoriesPath string

	// Destination is the output store: a SQLite file path or a postgres:// URL
	Destination string

	// Relation is the name of the relation replaced in the output store
	Relation string

	// Options controls how the joined table is decoded and filtered
	Options CleanOptions
}

// CleanOptions configures the column names and rules used by the Loader and Cleaner.
type CleanOptions struct {
	IDColumn         string
	CategoriesColumn string
	Separator        string
	FilterColumn     string
	FilterValue      int64
}

// DefaultCleanOptions returns the options matching the standard input layout.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		IDColumn:         DefaultIDColumn,
		CategoriesColumn: DefaultCategoriesColumn,
		Separator:        DefaultSeparator,
		FilterColumn:     DefaultFilterColumn,
		FilterValue:      DefaultFilterValue,
	}
}

// Validate checks if the PipelineConfig has all required fields.
// It returns a multi-error if multiple validation failures occur.
func (c *PipelineConfig) Validate() error {
	var errs []error

	if c.MessagesPath == "" {
		errs = append(errs, fmt.Errorf("MessagesPath is required: %w", ErrInvalidConfig))
	}
	if c.CategoriesPath == "" {
		errs = append(errs, fmt.Errorf("CategoriesPath is required: %w", ErrInvalidConfig))
	}
	if c.Destination == "" {
		errs = append(errs, fmt.Errorf("Destination is required: %w", ErrInvalidConfig))
	}
	if c.Relation == "" {
		errs = append(errs, fmt.Errorf("Relation is required: %w", ErrInvalidConfig))
	}
	if err := c.Options.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks that every option is set.
func (o *CleanOptions) Validate() error {
	var errs []error

	if o.IDColumn == "" {
		errs = append(errs, fmt.Errorf("IDColumn is required: %w", ErrInvalidConfig))
	}
	if o.CategoriesColumn == "" {
		errs = append(errs, fmt.Errorf("CategoriesColumn is required: %w", ErrInvalidConfig))
	}
	if o.IDColumn != "" && o.IDColumn == o.CategoriesColumn {
		errs = append(errs, fmt.Errorf("IDColumn and CategoriesColumn must differ: %w", ErrInvalidConfig))
	}
	if o.Separator == "" {
		errs = append(errs, fmt.Errorf("Separator is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
