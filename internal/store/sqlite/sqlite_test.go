package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vvka-141/catload/pkg/catload"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleTable(ids ...int64) *catload.Table {
	t := &catload.Table{
		Columns: []catload.Column{
			{Name: "id", Kind: catload.KindInteger},
			{Name: "message", Kind: catload.KindText},
			{Name: "original", Kind: catload.KindText},
			{Name: "related", Kind: catload.KindInteger},
			{Name: "request", Kind: catload.KindInteger},
		},
	}
	for _, id := range ids {
		t.Rows = append(t.Rows, []catload.Value{
			catload.Int(id), catload.Text("msg"), catload.Null(), catload.Int(1), catload.Int(0),
		})
	}
	return t
}

func openTemp(t *testing.T) (*Handle, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.db")
	h, err := OpenHandle(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h, path
}

func TestStore_Replace_CreatesRelation(t *testing.T) {
	ctx := context.Background()
	h, path := openTemp(t)

	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable(1, 2, 3)))

	_, err := os.Stat(path)
	require.NoError(t, err, "database file must exist after Replace")

	rel, err := Describe(ctx, h.DB(), catload.DefaultRelation)
	require.NoError(t, err)
	assert.Equal(t, 3, rel.Rows)
	assert.Equal(t, []catload.Column{
		{Name: "id", Kind: catload.KindInteger},
		{Name: "message", Kind: catload.KindText},
		{Name: "original", Kind: catload.KindText},
		{Name: "related", Kind: catload.KindInteger},
		{Name: "request", Kind: catload.KindInteger},
	}, rel.Columns)

	var original *string
	var related int64
	require.NoError(t, h.DB().QueryRowContext(ctx,
		`SELECT original, related FROM message_categories WHERE id = 2`).Scan(&original, &related))
	assert.Nil(t, original, "null values are stored as NULL")
	assert.Equal(t, int64(1), related)
}

func TestStore_Replace_OverwritesPreviousContent(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable(1, 2, 3)))
	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable(10)))

	rel, err := Describe(ctx, h.DB(), catload.DefaultRelation)
	require.NoError(t, err)
	assert.Equal(t, 1, rel.Rows, "rows must not accumulate across runs")

	var id int64
	require.NoError(t, h.DB().QueryRowContext(ctx, `SELECT id FROM message_categories`).Scan(&id))
	assert.Equal(t, int64(10), id)
}

func TestStore_Replace_SchemaChangeAcrossRuns(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable(1)))

	narrow := &catload.Table{
		Columns: []catload.Column{{Name: "id", Kind: catload.KindInteger}},
		Rows:    [][]catload.Value{{catload.Int(7)}},
	}
	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, narrow))

	rel, err := Describe(ctx, h.DB(), catload.DefaultRelation)
	require.NoError(t, err)
	assert.Len(t, rel.Columns, 1)
}

func TestStore_Replace_FailureKeepsPreviousRelation(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable(1, 2)))

	// Duplicate column names pass Validate but fail CREATE TABLE after the DROP.
	bad := &catload.Table{
		Columns: []catload.Column{{Name: "id", Kind: catload.KindInteger}, {Name: "id", Kind: catload.KindInteger}},
		Rows:    [][]catload.Value{{catload.Int(1), catload.Int(1)}},
	}
	err := h.Replace(ctx, catload.DefaultRelation, bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catload.ErrStorage))

	rel, err := Describe(ctx, h.DB(), catload.DefaultRelation)
	require.NoError(t, err)
	assert.Equal(t, 2, rel.Rows, "the previous relation must survive a failed replace")
	assert.Len(t, rel.Columns, 5)
}

func TestStore_Replace_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	tbl := sampleTable(1)
	tbl.Rows[0][3] = catload.Text("yes")

	err := h.Replace(ctx, catload.DefaultRelation, tbl)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catload.ErrStorage))
	assert.Contains(t, err.Error(), `column "related"`)

	_, err = Describe(ctx, h.DB(), catload.DefaultRelation)
	assert.Error(t, err, "nothing is written on a rejected table")
}

func TestStore_Replace_EmptyTableKeepsSchema(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable()))

	rel, err := Describe(ctx, h.DB(), catload.DefaultRelation)
	require.NoError(t, err)
	assert.Equal(t, 0, rel.Rows)
	assert.Len(t, rel.Columns, 5)
}

func TestStore_Replace_QuotesIdentifiers(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	tbl := &catload.Table{
		Columns: []catload.Column{
			{Name: `weird "name"`, Kind: catload.KindText},
			{Name: "order", Kind: catload.KindInteger},
		},
		Rows: [][]catload.Value{{catload.Text("x"), catload.Int(1)}},
	}
	require.NoError(t, h.Replace(ctx, "select", tbl))

	rel, err := Describe(ctx, h.DB(), "select")
	require.NoError(t, err)
	assert.Equal(t, `weird "name"`, rel.Columns[0].Name)
	assert.Equal(t, 1, rel.Rows)
}

func TestStore_Replace_EmptyRelationName(t *testing.T) {
	h, _ := openTemp(t)
	err := h.Replace(context.Background(), "", sampleTable(1))
	assert.ErrorIs(t, err, catload.ErrStorage)
}

func TestOpen_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.db")

	_, err := Open(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, catload.ErrStorage))
}

func TestStore_PersistsAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.db")

	h, err := OpenHandle(ctx, path)
	require.NoError(t, err)
	require.NoError(t, h.Replace(ctx, catload.DefaultRelation, sampleTable(1, 2)))
	require.NoError(t, h.Close())

	h2, err := OpenHandle(ctx, path)
	require.NoError(t, err)
	defer h2.Close()

	rel, err := Describe(ctx, h2.DB(), catload.DefaultRelation)
	require.NoError(t, err)
	assert.Equal(t, 2, rel.Rows)
}

func TestHandle_Count(t *testing.T) {
	ctx := context.Background()
	h, _ := openTemp(t)

	_, err := h.Count(ctx, "missing")
	assert.Error(t, err)

	require.NoError(t, h.Replace(ctx, "counted", sampleTable(4, 5, 6)))
	n, err := h.Count(ctx, "counted")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
