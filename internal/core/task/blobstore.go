package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/colonyops/taskboard/internal/core/kv"
)

// DefaultKey is the key the task snapshot is stored under.
const DefaultKey = "tasks"

// KVBlobStore implements BlobStore by serialising the collection as a JSON
// array under a single key.
type KVBlobStore struct {
	blobs kv.Blobs
	key   string
}

var _ BlobStore = (*KVBlobStore)(nil)

// NewKVBlobStore wraps blobs. An empty key falls back to DefaultKey.
func NewKVBlobStore(blobs kv.Blobs, key string) *KVBlobStore {
	if key == "" {
		key = DefaultKey
	}
	return &KVBlobStore{blobs: blobs, key: key}
}

// Load reads and decodes the snapshot. A missing key is not an error.
func (s *KVBlobStore) Load(ctx context.Context) ([]Task, error) {
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %q: %w", s.key, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode %q: %w", s.key, err)
	}
	return tasks, nil
}

// Save encodes tasks and overwrites the snapshot.
func (s *KVBlobStore) Save(ctx context.Context, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}

	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode %q: %w", s.key, err)
	}

	if err := s.blobs.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("write %q: %w", s.key, err)
	}
	return nil
}
