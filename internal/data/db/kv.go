package db

import (
	"context"
	"time"
)

const (
	kvGet    = `SELECT value FROM kv_store WHERE key = ?`
	kvDelete = `DELETE FROM kv_store WHERE key = ?`
	kvKeys   = `SELECT key FROM kv_store ORDER BY key`
	kvUpsert = `INSERT INTO kv_store (key, value, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
)

// KVGet returns the raw value for key. Missing keys return an error
// wrapping sql.ErrNoRows.
func (db *DB) KVGet(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	if err := db.conn.QueryRowContext(ctx, kvGet, key).Scan(&value); err != nil {
		return nil, err
	}
	return value, nil
}

// KVPut inserts or overwrites key.
func (db *DB) KVPut(ctx context.Context, key string, value []byte) error {
	now := time.Now().UnixNano()
	_, err := db.conn.ExecContext(ctx, kvUpsert, key, value, now, now)
	return err
}

// KVDelete removes key. Deleting a missing key is not an error.
func (db *DB) KVDelete(ctx context.Context, key string) error {
	_, err := db.conn.ExecContext(ctx, kvDelete, key)
	return err
}

// KVKeys lists all keys in sorted order.
func (db *DB) KVKeys(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, kvKeys)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
