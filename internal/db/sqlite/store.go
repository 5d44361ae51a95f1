// Package sqlite implements db.Store on an embedded SQLite file for single-user installs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/kailas-cloud/partpilot/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at INTEGER
);
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	id         TEXT NOT NULL,
	score      INTEGER NOT NULL,
	data       BLOB NOT NULL,
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS records_by_score ON records (collection, score DESC);
`

// Store implements db.Store via database/sql and modernc.org/sqlite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens (or creates) the database at path and applies the schema.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer; also keeps :memory: on a single shared connection
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return &Store{db: conn, now: time.Now}, nil
}

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once; an embedded database is ready as soon as it opens.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

func (s *Store) nowMillis() int64 { return s.now().UnixMilli() }

// Get retrieves a live (unexpired) value by key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, s.nowMillis(),
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// Set stores a value without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.set(ctx, key, value, nil)
}

// SetWithTTL stores a value that expires after ttl.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	exp := s.now().Add(ttl).UnixMilli()
	return s.set(ctx, key, value, &exp)
}

func (s *Store) set(ctx context.Context, key string, value []byte, expiresAt *int64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// Del deletes a key. Deleting a missing key is not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}

// IncrBy adds val to the integer stored at key, treating a missing or expired key as 0.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpIncrBy, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var (
		raw []byte
		exp sql.NullInt64
	)
	err = tx.QueryRowContext(ctx,
		`SELECT value, expires_at FROM kv WHERE key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		key, s.nowMillis(),
	).Scan(&raw, &exp)
	var cur int64
	switch {
	case errors.Is(err, sql.ErrNoRows):
		exp = sql.NullInt64{}
	case err != nil:
		return &db.Error{Op: db.OpIncrBy, Err: err}
	default:
		cur, err = strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return &db.Error{Op: db.OpIncrBy, Err: fmt.Errorf("value is not an integer: %w", err)}
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, []byte(strconv.FormatInt(cur+val, 10)), exp,
	)
	if err != nil {
		return &db.Error{Op: db.OpIncrBy, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpIncrBy, Err: err}
	}
	return nil
}

// Expire sets TTL on a key. When nx=true, sets TTL only if the key has no expiry yet.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error {
	q := `UPDATE kv SET expires_at = ? WHERE key = ?`
	if nx {
		q += ` AND expires_at IS NULL`
	}
	if _, err := s.db.ExecContext(ctx, q, s.now().Add(ttl).UnixMilli(), key); err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	return nil
}

// PutRecord inserts or replaces a record.
func (s *Store) PutRecord(ctx context.Context, collection string, rec db.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (collection, id, score, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET score = excluded.score, data = excluded.data`,
		collection, rec.ID, rec.Score, rec.Data,
	)
	if err != nil {
		return &db.Error{Op: db.OpZAdd, Err: fmt.Errorf("record %s: %w", rec.ID, err)}
	}
	return nil
}

// GetRecord returns the data of a single record.
func (s *Store) GetRecord(ctx context.Context, collection, id string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM records WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return data, nil
}

// ListRecords returns record data by descending score.
func (s *Store) ListRecords(ctx context.Context, collection string, limit int) ([][]byte, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM records WHERE collection = ? ORDER BY score DESC, id DESC LIMIT ?`,
		collection, limit,
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	defer rows.Close()

	out := [][]byte{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, &db.Error{Op: db.OpZRange, Err: err}
		}
		out = append(out, data)
	}
	if err := rows.Err(); err != nil {
		return nil, &db.Error{Op: db.OpZRange, Err: err}
	}
	return out, nil
}

// DeleteRecord removes a record.
func (s *Store) DeleteRecord(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	if n == 0 {
		return db.ErrKeyNotFound
	}
	return nil
}
