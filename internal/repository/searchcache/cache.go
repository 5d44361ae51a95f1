// Package searchcache is the offline cache of recent search results.
//
// Entries live as one JSON array under a single KV key, most recent first,
// unique by case-insensitive query text and bounded in length.
package searchcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/db"
	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	"github.com/kailas-cloud/partpilot/internal/domain/search"
)

// DefaultKey is the KV key holding the cache array.
const DefaultKey = domain.KeyPrefix + "cached_searches"

// DefaultMaxEntries bounds the cache length.
const DefaultMaxEntries = 10

// store is the consumer interface for the cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Cache is a bounded most-recent-first result cache. Writes are serialised in-process;
// across processes the last write wins.
type Cache struct {
	mu         sync.Mutex
	store      store
	key        string
	maxEntries int
	now        func() time.Time
	lookups    *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a cache over s. lookups is a counter vec with label "result" ("hit"/"miss"), may be nil.
func New(s store, key string, maxEntries int, lookups *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if key == "" {
		key = DefaultKey
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Cache{
		store:      s,
		key:        key,
		maxEntries: maxEntries,
		now:        time.Now,
		lookups:    lookups,
		logger:     logger,
	}
}

// Put stores results for query at the front, replacing any entry with the same query.
func (c *Cache) Put(ctx context.Context, query string, results []part.Part) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.load(ctx)
	if err != nil {
		return err
	}

	next := make([]search.CachedEntry, 0, len(entries)+1)
	next = append(next, search.CachedEntry{
		Query:     query,
		Results:   part.NormalizeAll(results),
		Timestamp: c.now().UnixMilli(),
	})
	for i := range entries {
		if !search.SameQuery(entries[i].Query, query) {
			next = append(next, entries[i])
		}
	}
	if len(next) > c.maxEntries {
		next = next[:c.maxEntries]
	}

	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Get returns the most recent entry whose query matches case-insensitively.
func (c *Cache) Get(ctx context.Context, query string) (search.CachedEntry, bool, error) {
	c.mu.Lock()
	entries, err := c.load(ctx)
	c.mu.Unlock()
	if err != nil {
		return search.CachedEntry{}, false, err
	}

	for i := range entries {
		if search.SameQuery(entries[i].Query, query) {
			c.inc("hit")
			return entries[i], true, nil
		}
	}
	c.inc("miss")
	return search.CachedEntry{}, false, nil
}

// Entries returns all entries, most recent first.
func (c *Cache) Entries(ctx context.Context) ([]search.CachedEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Clear drops every entry.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Del(ctx, c.key); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// load reads the array. A missing key is an empty cache; an unreadable payload is
// discarded with a warning and overwritten by the next Put.
func (c *Cache) load(ctx context.Context) ([]search.CachedEntry, error) {
	data, err := c.store.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []search.CachedEntry{}, nil
		}
		return nil, fmt.Errorf("read cache: %w", err)
	}

	var entries []search.CachedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("Discarding unreadable search cache", zap.String("key", c.key), zap.Error(err))
		return []search.CachedEntry{}, nil
	}
	if entries == nil {
		entries = []search.CachedEntry{}
	}
	return entries, nil
}

func (c *Cache) inc(result string) {
	if c.lookups != nil {
		c.lookups.WithLabelValues(result).Inc()
	}
}
