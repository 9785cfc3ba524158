package stores

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/core/task"
	"github.com/colonyops/taskboard/internal/data/db"
)

func openBackend(t *testing.T, backend, dir string) kv.Blobs {
	t.Helper()
	blobs, closer, err := Open(Options{Backend: backend, DataDir: dir, DB: db.DefaultOpenOptions()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closer.Close() })
	return blobs
}

func TestBlobs_Conformance(t *testing.T) {
	ctx := context.Background()

	for _, backend := range Backends() {
		t.Run(backend, func(t *testing.T) {
			blobs := openBackend(t, backend, t.TempDir())

			_, err := blobs.Get(ctx, "missing")
			require.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, blobs.Put(ctx, "tasks", []byte("v1")))
			require.NoError(t, blobs.Put(ctx, "tasks", []byte("v2")))
			require.NoError(t, blobs.Put(ctx, "other/key", []byte("x")))

			got, err := blobs.Get(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, []byte("v2"), got)

			keys, err := blobs.Keys(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"tasks", "other/key"}, keys)

			require.NoError(t, blobs.Delete(ctx, "tasks"))
			require.NoError(t, blobs.Delete(ctx, "tasks"), "deleting twice is fine")

			_, err = blobs.Get(ctx, "tasks")
			require.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestTaskSnapshot_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 10, 1, 8, 30, 15, 0, time.UTC)

	// memory is process-local so it cannot survive a reopen
	for _, backend := range []string{BackendSQLite, BackendBolt, BackendFile} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()

			blobs, closer, err := Open(Options{Backend: backend, DataDir: dir})
			require.NoError(t, err)

			store := task.NewStore(ctx, task.NewKVBlobStore(blobs, ""))
			require.NoError(t, store.Create(ctx, task.Task{ID: "a1", Title: "First", Priority: task.PriorityLow, CreatedAt: created}))
			require.NoError(t, store.Create(ctx, task.Task{
				ID: "b2", Title: "Second", Priority: task.PriorityHigh, Category: "Work",
				DueDate: "2026-10-20", CreatedAt: created.Add(time.Minute),
			}))
			require.NoError(t, store.ToggleCompleted(ctx, "a1"))
			want := store.Tasks()
			require.NoError(t, closer.Close())

			reopened := openBackend(t, backend, dir)
			restarted := task.NewStore(ctx, task.NewKVBlobStore(reopened, ""))

			got := restarted.Tasks()
			require.Len(t, got, len(want))
			for i := range want {
				assert.Equal(t, want[i].ID, got[i].ID)
				assert.Equal(t, want[i].Title, got[i].Title)
				assert.Equal(t, want[i].Priority, got[i].Priority)
				assert.Equal(t, want[i].Category, got[i].Category)
				assert.Equal(t, want[i].DueDate, got[i].DueDate)
				assert.Equal(t, want[i].Completed, got[i].Completed)
				assert.True(t, want[i].CreatedAt.Equal(got[i].CreatedAt))
			}
		})
	}
}

func TestTaskSnapshot_CorruptPayloadStartsEmpty(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobs()
	require.NoError(t, blobs.Put(ctx, task.DefaultKey, []byte(`{not json`)))

	_, err := task.NewKVBlobStore(blobs, "").Load(ctx)
	require.Error(t, err)

	store := task.NewStore(ctx, task.NewKVBlobStore(blobs, ""))
	assert.Equal(t, 0, store.Len())
}

func TestFileBlobs_WritesJSONArray(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := task.NewStore(ctx, task.NewKVBlobStore(NewFileBlobs(dir), ""))
	require.NoError(t, store.Create(ctx, task.Task{ID: "x", Title: "t", Priority: task.PriorityMedium}))

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte(`[{"id":"x"`)), string(data))

	_, err = os.Stat(filepath.Join(dir, "tasks.json.tmp"))
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestMemoryBlobs_CopiesValues(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobs()

	in := []byte("abc")
	require.NoError(t, blobs.Put(ctx, "k", in))
	in[0] = 'z'

	out, err := blobs.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, _, err := Open(Options{Backend: "redis", DataDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestOpen_RecoversCorruptSQLite(t *testing.T) {
	dir := t.TempDir()
	garbage := bytes.Repeat([]byte("definitely not a sqlite file "), 256)
	require.NoError(t, os.WriteFile(filepath.Join(dir, db.FileName), garbage, 0o644))

	blobs := openBackend(t, BackendSQLite, dir)

	_, err := blobs.Get(context.Background(), task.DefaultKey)
	require.ErrorIs(t, err, kv.ErrNotFound)

	matches, err := filepath.Glob(filepath.Join(dir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}
