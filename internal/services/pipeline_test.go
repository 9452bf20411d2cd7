package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/catload/internal/logging"
	"github.com/vvka-141/catload/pkg/catload"
)

func sprintf(format string, args []interface{}) string {
	return fmt.Sprintf(format, args...)
}

func testConfig() catload.PipelineConfig {
	return catload.PipelineConfig{
		MessagesPath:   "messages.csv",
		CategoriesPath: "categories.csv",
		Destination:    "out.db",
		Relation:       catload.DefaultRelation,
		Options:        catload.DefaultCleanOptions(),
	}
}

func cleanTable() *catload.Table {
	return &catload.Table{
		Columns: []catload.Column{{Name: "id", Kind: catload.KindInteger}},
		Rows:    [][]catload.Value{{catload.Int(1)}},
	}
}

type fixture struct {
	loader  *mockLoader
	cleaner *mockCleaner
	opener  *mockOpener
	logger  *recordingLogger
}

func newFixture() *fixture {
	t := cleanTable()
	return &fixture{
		loader: &mockLoader{loaded: &catload.Loaded{
			Table:      t,
			Messages:   catload.Source{Path: "messages.csv", Rows: 1, Checksum: "abc"},
			Categories: catload.Source{Path: "categories.csv", Rows: 1, Checksum: "def"},
		}},
		cleaner: &mockCleaner{result: &catload.CleanResult{Table: t, RowsIn: 1, Categories: []string{"related"}}},
		opener:  &mockOpener{handle: &mockHandle{count: 1}},
		logger:  &recordingLogger{},
	}
}

func (f *fixture) pipeline() *Pipeline {
	return NewPipeline(f.loader, f.cleaner, f.opener.Open, f.logger)
}

func TestNewPipeline_PanicsOnNil(t *testing.T) {
	f := newFixture()
	assert.Panics(t, func() { NewPipeline(nil, f.cleaner, f.opener.Open, f.logger) })
	assert.Panics(t, func() { NewPipeline(f.loader, nil, f.opener.Open, f.logger) })
	assert.Panics(t, func() { NewPipeline(f.loader, f.cleaner, nil, f.logger) })
	assert.Panics(t, func() { NewPipeline(f.loader, f.cleaner, f.opener.Open, nil) })
}

func TestPipeline_Run_Success(t *testing.T) {
	f := newFixture()

	err := f.pipeline().Run(context.Background(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Loading data...",
		"    MESSAGES: messages.csv",
		"    CATEGORIES: categories.csv",
		"Cleaning data...",
		"Saving data...",
		"    DATABASE: out.db",
		"Cleaned data saved to database!",
	}, f.logger.info)

	assert.Equal(t, "out.db", f.opener.dest)
	assert.Equal(t, catload.DefaultRelation, f.opener.handle.relation)
	assert.Same(t, f.cleaner.result.Table, f.opener.handle.table)
	assert.True(t, f.opener.handle.closed, "handle must be closed")
	assert.Contains(t, f.logger.verbose, "messages: 1 rows, sha256 abc")
	assert.Contains(t, f.logger.verbose, "relation message_categories now holds 1 rows")
}

func TestPipeline_Run_InvalidConfig(t *testing.T) {
	f := newFixture()
	cfg := testConfig()
	cfg.Destination = ""

	err := f.pipeline().Run(context.Background(), cfg)
	assert.ErrorIs(t, err, catload.ErrInvalidConfig)
	assert.Zero(t, f.loader.calls)
	assert.Empty(t, f.logger.info)
}

func TestPipeline_Run_StageFailures(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(f *fixture)
		wantErr     error
		wantOpened  bool
		lastMessage string
		failure     string
	}{
		{
			name:        "loader fails",
			setup:       func(f *fixture) { f.loader.err = fmt.Errorf("messages: %w", catload.ErrNotFound) },
			wantErr:     catload.ErrNotFound,
			lastMessage: "    CATEGORIES: categories.csv",
			failure:     "load stage failed (not_found)",
		},
		{
			name:        "cleaner fails",
			setup:       func(f *fixture) { f.cleaner.err = fmt.Errorf("row 2: %w", catload.ErrParse) },
			wantErr:     catload.ErrParse,
			lastMessage: "Cleaning data...",
			failure:     "clean stage failed (parse)",
		},
		{
			name:        "open fails",
			setup:       func(f *fixture) { f.opener.err = fmt.Errorf("bad path: %w", catload.ErrStorage) },
			wantErr:     catload.ErrStorage,
			wantOpened:  true,
			lastMessage: "    DATABASE: out.db",
			failure:     "save stage failed (storage)",
		},
		{
			name:        "replace fails",
			setup:       func(f *fixture) { f.opener.handle.replaceErr = fmt.Errorf("disk full: %w", catload.ErrStorage) },
			wantErr:     catload.ErrStorage,
			wantOpened:  true,
			lastMessage: "    DATABASE: out.db",
			failure:     "save stage failed (storage)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			err := f.pipeline().Run(context.Background(), testConfig())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.wantOpened, f.opener.calls > 0)
			assert.Equal(t, tt.lastMessage, f.logger.info[len(f.logger.info)-1])
			assert.NotContains(t, f.logger.info, "Cleaned data saved to database!")
			assert.Equal(t, tt.failure, f.logger.verbose[len(f.logger.verbose)-1])
		})
	}
}

func TestPipeline_Run_CloseErrorReported(t *testing.T) {
	f := newFixture()
	f.opener.handle.closeErr = errors.New("sync failed")

	err := f.pipeline().Run(context.Background(), testConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, catload.ErrStorage)
	assert.Contains(t, err.Error(), "sync failed")
}

func TestPipeline_Run_ReplaceErrorWinsOverCloseError(t *testing.T) {
	f := newFixture()
	f.opener.handle.replaceErr = errors.New("replace failed")
	f.opener.handle.closeErr = errors.New("close failed")

	err := f.pipeline().Run(context.Background(), testConfig())
	require.Error(t, err)
	assert.Equal(t, "replace failed", err.Error())
	assert.True(t, f.opener.handle.closed)
}

func TestPipeline_Run_CancelledBeforeSave(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	f.cleaner.err = nil
	cancel()

	err := f.pipeline().Run(ctx, testConfig())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.opener.calls)
}

func TestPipeline_Run_FilterSkippedLogged(t *testing.T) {
	f := newFixture()
	f.cleaner.result.FilterSkipped = true

	require.NoError(t, f.pipeline().Run(context.Background(), testConfig()))
	assert.Contains(t, f.logger.verbose, `filter skipped: no "related" column`)
}

func TestPipeline_Run_WithNullLogger(t *testing.T) {
	f := newFixture()
	p := NewPipeline(f.loader, f.cleaner, f.opener.Open, logging.NewNullLogger())
	assert.NoError(t, p.Run(context.Background(), testConfig()))
}
