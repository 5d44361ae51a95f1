package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Both the redis and sqlite backends implement it.
type Store interface {
	Pinger
	KVStore
	RecordStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Record is an opaque JSON document in a named collection.
// Score orders records within the collection (typically creation time in unix millis).
type Record struct {
	ID    string
	Score int64
	Data  []byte
}

// RecordStore provides collection-scoped document storage ordered by score.
type RecordStore interface {
	// PutRecord inserts or replaces a record.
	PutRecord(ctx context.Context, collection string, rec Record) error
	// GetRecord returns the record data or ErrKeyNotFound.
	GetRecord(ctx context.Context, collection, id string) ([]byte, error)
	// ListRecords returns record data by descending score. limit <= 0 means no limit.
	ListRecords(ctx context.Context, collection string, limit int) ([][]byte, error)
	// DeleteRecord removes a record or returns ErrKeyNotFound.
	DeleteRecord(ctx context.Context, collection, id string) error
}
