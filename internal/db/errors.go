package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
)

// Op constants name the failing operation for error context.
// Redis command names are reused for the sqlite backend.
const (
	OpPing    = "PING"
	OpDel     = "DEL"
	OpGet     = "GET"
	OpMGet    = "MGET"
	OpSet     = "SET"
	OpIncrBy  = "INCRBY"
	OpExpire  = "EXPIRE"
	OpZAdd    = "ZADD"
	OpZRange  = "ZRANGE"
	OpZRem    = "ZREM"
	OpMigrate = "MIGRATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
