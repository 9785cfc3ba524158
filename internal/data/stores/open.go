// Package stores provides the kv.Blobs backends that task snapshots are
// persisted to.
package stores

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/taskboard/internal/core/kv"
	"github.com/colonyops/taskboard/internal/data/db"
)

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Backends lists every supported backend name.
func Backends() []string {
	return []string{BackendSQLite, BackendBolt, BackendFile, BackendMemory}
}

// Options selects and configures a backend.
type Options struct {
	Backend string
	DataDir string
	DB      db.OpenOptions
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open constructs the configured backend. The returned closer releases any
// file handles and is always non-nil on success.
func Open(opts Options) (kv.Blobs, io.Closer, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		database, err := openSQLite(opts)
		if err != nil {
			return nil, nil, err
		}
		blobs := NewSQLiteBlobs(database)
		return blobs, blobs, nil

	case BackendBolt:
		blobs, err := OpenBolt(opts.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return blobs, blobs, nil

	case BackendFile:
		return NewFileBlobs(opts.DataDir), nopCloser{}, nil

	case BackendMemory:
		return NewMemoryBlobs(), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
}

// openSQLite opens the database, moving a corrupt file aside once and
// starting fresh rather than refusing to run.
func openSQLite(opts Options) (*db.DB, error) {
	database, err := db.Open(opts.DataDir, opts.DB)
	if err == nil {
		return database, nil
	}
	if !IsCorruptionError(err) {
		return nil, err
	}

	backup, recErr := RecoverFromCorruption(opts.DataDir)
	if recErr != nil {
		return nil, fmt.Errorf("recover corrupt database: %w (original: %v)", recErr, err)
	}
	log.Warn().Err(err).Str("backup", backup).Msg("database was corrupt, moved aside")

	return db.Open(opts.DataDir, opts.DB)
}
