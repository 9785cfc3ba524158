package stores

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/colonyops/taskboard/internal/core/kv"
)

// BoltFileName is the bbolt database created inside the data directory.
const BoltFileName = "taskboard.bolt"

const boltBucket = "blobs"

// BoltBlobs implements kv.Blobs on a single bbolt bucket.
type BoltBlobs struct {
	db     *bolt.DB
	bucket []byte
}

var _ kv.Blobs = (*BoltBlobs)(nil)

// OpenBolt opens or creates <dataDir>/taskboard.bolt and ensures the bucket
// exists.
func OpenBolt(dataDir string) (*BoltBlobs, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := bolt.Open(filepath.Join(dataDir, BoltFileName), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt: %w", err)
	}

	if err := database.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	}); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltBlobs{db: database, bucket: []byte(boltBucket)}, nil
}

func (s *BoltBlobs) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(key))
		if v == nil {
			return kv.ErrNotFound
		}
		// v is only valid for the life of the transaction
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltBlobs) Put(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("bolt put %q: %w", key, err)
	}
	return nil
}

func (s *BoltBlobs) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("bolt delete %q: %w", key, err)
	}
	return nil
}

func (s *BoltBlobs) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close closes the bolt file.
func (s *BoltBlobs) Close() error {
	return s.db.Close()
}
