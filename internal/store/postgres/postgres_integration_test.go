package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/catload/internal/testinfra"
	"github.com/vvka-141/catload/pkg/catload"
)

func TestHandle_Replace_Integration(t *testing.T) {
	connString := testinfra.RequirePostgres(t)
	ctx := context.Background()

	h, err := OpenHandle(ctx, connString)
	require.NoError(t, err)
	defer h.Close()

	relation := "catload_it_message_categories"
	defer h.Conn().Exec(ctx, "DROP TABLE IF EXISTS "+relation) //nolint:errcheck

	require.NoError(t, h.Replace(ctx, relation, sampleTable()))

	second := sampleTable()
	second.Rows = second.Rows[:1]
	require.NoError(t, h.Replace(ctx, relation, second))

	var count int
	require.NoError(t, h.Conn().QueryRow(ctx, "SELECT COUNT(*) FROM "+relation).Scan(&count))
	assert.Equal(t, 1, count, "second run replaces the first")

	var score float64
	var message string
	require.NoError(t, h.Conn().QueryRow(ctx, "SELECT score, message FROM "+relation+" WHERE id = 1").Scan(&score, &message))
	assert.Equal(t, 3.0, score)
	assert.Equal(t, "hello", message)
}

func TestOpenHandle_BadURL(t *testing.T) {
	_, err := OpenHandle(context.Background(), "postgres://nobody@127.0.0.1:1/none?connect_timeout=1")
	assert.ErrorIs(t, err, catload.ErrStorage)
}
