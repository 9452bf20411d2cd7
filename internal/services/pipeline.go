package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vvka-141/catload/pkg/catload"
)

// rowCounter is implemented by store handles that can report what they hold.
type rowCounter interface {
	Count(ctx context.Context, relation string) (int, error)
}

// Pipeline runs Loader -> Cleaner -> Store for one set of inputs.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
type Pipeline struct {
	loader  catload.Loader
	cleaner catload.Cleaner
	open    catload.StoreOpener
	logger  catload.Logger
}

// NewPipeline creates a Pipeline with all dependencies injected.
// Panics on nil dependencies.
func NewPipeline(loader catload.Loader, cleaner catload.Cleaner, open catload.StoreOpener, logger catload.Logger) *Pipeline {
	if loader == nil {
		panic("loader cannot be nil")
	}
	if cleaner == nil {
		panic("cleaner cannot be nil")
	}
	if open == nil {
		panic("store opener cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Pipeline{loader: loader, cleaner: cleaner, open: open, logger: logger}
}

// Run executes one pipeline pass. The output store is opened only after
// loading and cleaning succeed, so earlier failures leave it untouched.
func (p *Pipeline) Run(ctx context.Context, cfg catload.PipelineConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	p.logger.Info("Loading data...")
	p.logger.Info("    MESSAGES: %s", cfg.MessagesPath)
	p.logger.Info("    CATEGORIES: %s", cfg.CategoriesPath)

	loaded, err := p.loader.Load(ctx, cfg.MessagesPath, cfg.CategoriesPath)
	if err != nil {
		return p.fail("load", err)
	}
	p.logSource("messages", loaded.Messages)
	p.logSource("categories", loaded.Categories)
	p.logger.Verbose("joined %d rows, %d columns", loaded.Table.Len(), len(loaded.Table.Columns))

	p.logger.Info("Cleaning data...")
	result, err := p.cleaner.Clean(loaded.Table)
	if err != nil {
		return p.fail("clean", err)
	}
	p.logClean(cfg.Options, result)

	if err := ctx.Err(); err != nil {
		return err
	}

	p.logger.Info("Saving data...")
	p.logger.Info("    DATABASE: %s", cfg.Destination)
	if err := p.save(ctx, cfg, result.Table); err != nil {
		return p.fail("save", err)
	}

	p.logger.Info("Cleaned data saved to database!")
	return nil
}

func (p *Pipeline) save(ctx context.Context, cfg catload.PipelineConfig, t *catload.Table) (err error) {
	handle, err := p.open(ctx, cfg.Destination)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := handle.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %v: %w", cfg.Destination, closeErr, catload.ErrStorage)
		}
	}()

	if err := handle.Replace(ctx, cfg.Relation, t); err != nil {
		return err
	}

	if counter, ok := handle.(rowCounter); ok {
		n, countErr := counter.Count(ctx, cfg.Relation)
		if countErr != nil {
			p.logger.Verbose("could not count %s: %v", cfg.Relation, countErr)
		} else {
			p.logger.Verbose("relation %s now holds %d rows", cfg.Relation, n)
		}
	}
	return nil
}

// fail records which stage failed and returns err unchanged.
func (p *Pipeline) fail(stage string, err error) error {
	p.logger.Verbose("%s stage failed (%s)", stage, catload.ErrorClass(err))
	return err
}

func (p *Pipeline) logSource(label string, src catload.Source) {
	p.logger.Verbose("%s: %d rows, sha256 %s", label, src.Rows, src.Checksum)
	if src.Fingerprint != "" && src.Fingerprint != src.Checksum {
		p.logger.Verbose("%s: normalized sha256 %s", label, src.Fingerprint)
	}
}

func (p *Pipeline) logClean(opts catload.CleanOptions, r *catload.CleanResult) {
	if len(r.Categories) > 0 {
		p.logger.Verbose("decoded %d categories: %s", len(r.Categories), strings.Join(r.Categories, ", "))
	}
	if r.FilterSkipped {
		p.logger.Verbose("filter skipped: no %q column", opts.FilterColumn)
	} else {
		p.logger.Verbose("dropped %d rows where %s = %d", r.FilteredOut, opts.FilterColumn, opts.FilterValue)
	}
	p.logger.Verbose("dropped %d duplicate rows, %d of %d rows remain", r.DuplicatesOut, r.Table.Len(), r.RowsIn)
}
