package stores

import (
	"context"
	"fmt"

	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/data/db"
)

// SQLiteBlobs implements kv.Blobs on the kv_store table.
type SQLiteBlobs struct {
	db *db.DB
}

var _ kv.Blobs = (*SQLiteBlobs)(nil)

// NewSQLiteBlobs wraps an open database.
func NewSQLiteBlobs(database *db.DB) *SQLiteBlobs {
	return &SQLiteBlobs{db: database}
}

func (s *SQLiteBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.db.KVGet(ctx, key)
	if err != nil {
		if IsNotFoundError(err) {
			return nil, kv.ErrNotFound
		}
		return nil, fmt.Errorf("sqlite get %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteBlobs) Put(ctx context.Context, key string, value []byte) error {
	if err := s.db.KVPut(ctx, key, value); err != nil {
		return fmt.Errorf("sqlite put %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteBlobs) Delete(ctx context.Context, key string) error {
	if err := s.db.KVDelete(ctx, key); err != nil {
		return fmt.Errorf("sqlite delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteBlobs) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.db.KVKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("sqlite keys: %w", err)
	}
	return keys, nil
}

// Close closes the underlying database.
func (s *SQLiteBlobs) Close() error {
	return s.db.Close()
}
