package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesFileAndSchema(t *testing.T) {
	dir := t.TempDir()

	database, err := Open(dir, OpenOptions{})
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	_, err = os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	keys, err := database.KVKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	require.NoError(t, database.KVPut(ctx, "b", []byte("one")))
	require.NoError(t, database.KVPut(ctx, "a", []byte("two")))
	require.NoError(t, database.KVPut(ctx, "b", []byte("three")))

	got, err := database.KVGet(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), got)

	keys, err := database.KVKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, database.KVDelete(ctx, "b"))
	require.NoError(t, database.KVDelete(ctx, "b"))

	_, err = database.KVGet(ctx, "b")
	require.Error(t, err)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, first.KVPut(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, first.Close())

	second, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	got, err := second.KVGet(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}
