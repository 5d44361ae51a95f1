// Package entity implements the generic create/list/get/update/delete entity store
// over db.RecordStore. Each entity type lives in its own collection.
package entity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/partpilot/internal/db"
	"github.com/kailas-cloud/partpilot/internal/domain"
)

// Collection names, prefixed with domain.KeyPrefix by New.
const (
	CollectionJobs       = "jobs"
	CollectionHistory    = "search_history"
	CollectionVehicles   = "vehicles"
	CollectionSavedParts = "saved_parts"
)

// store is the consumer interface for records (ISP).
type store interface {
	PutRecord(ctx context.Context, collection string, rec db.Record) error
	GetRecord(ctx context.Context, collection, id string) ([]byte, error)
	ListRecords(ctx context.Context, collection string, limit int) ([][]byte, error)
	DeleteRecord(ctx context.Context, collection, id string) error
}

// Entity is satisfied by pointers to stored types.
type Entity[T any] interface {
	*T
	EntityID() string
	Stamp(id string, at time.Time)
	Created() time.Time
}

// Repo stores values of T as JSON records scored by creation time.
type Repo[T any, PT Entity[T]] struct {
	mu         sync.Mutex // serialises read-modify-write in Update
	store      store
	collection string
	now        func() time.Time
	newID      func() string
}

// New creates a repository for one collection.
func New[T any, PT Entity[T]](s store, collection string) *Repo[T, PT] {
	return &Repo[T, PT]{
		store:      s,
		collection: domain.KeyPrefix + collection,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Create assigns an id and creation time, persists v and returns the stored value.
func (r *Repo[T, PT]) Create(ctx context.Context, v T) (T, error) {
	PT(&v).Stamp(r.newID(), r.now().UTC())
	if err := r.put(ctx, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("create in %s: %w", r.collection, err)
	}
	return v, nil
}

// Get returns the entity or domain.ErrNotFound.
func (r *Repo[T, PT]) Get(ctx context.Context, id string) (T, error) {
	var v T
	data, err := r.store.GetRecord(ctx, r.collection, id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return v, fmt.Errorf("%s %s: %w", r.collection, id, domain.ErrNotFound)
		}
		return v, fmt.Errorf("get from %s: %w", r.collection, err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s %s: %w", r.collection, id, err)
	}
	return v, nil
}

// List returns up to limit entities in the given order. limit <= 0 means all.
func (r *Repo[T, PT]) List(ctx context.Context, order domain.Order, limit int) ([]T, error) {
	fetch := limit
	if order == domain.OldestFirst {
		fetch = 0
	}
	raw, err := r.store.ListRecords(ctx, r.collection, fetch)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.collection, err)
	}

	out := make([]T, 0, len(raw))
	for _, data := range raw {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.collection, err)
		}
		out = append(out, v)
	}

	if order == domain.OldestFirst {
		slices.Reverse(out)
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

// Update applies fn to the stored entity and persists the result.
// The id and creation time are preserved whatever fn does.
func (r *Repo[T, PT]) Update(ctx context.Context, id string, fn func(*T) error) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, err := r.Get(ctx, id)
	if err != nil {
		return v, err
	}
	created := PT(&v).Created()
	if err := fn(&v); err != nil {
		var zero T
		return zero, err
	}
	PT(&v).Stamp(id, created)

	if err := r.put(ctx, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("update in %s: %w", r.collection, err)
	}
	return v, nil
}

// Delete removes the entity or returns domain.ErrNotFound.
func (r *Repo[T, PT]) Delete(ctx context.Context, id string) error {
	if err := r.store.DeleteRecord(ctx, r.collection, id); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("%s %s: %w", r.collection, id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete from %s: %w", r.collection, err)
	}
	return nil
}

// DeleteAll removes every entity in the collection with up to parallel concurrent
// deletes and returns how many were removed. Entities already gone are not an error.
func (r *Repo[T, PT]) DeleteAll(ctx context.Context, parallel int) (int, error) {
	items, err := r.List(ctx, domain.NewestFirst, 0)
	if err != nil {
		return 0, err
	}
	if parallel <= 0 {
		parallel = 1
	}

	var (
		mu      sync.Mutex
		deleted int
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)
	for i := range items {
		id := PT(&items[i]).EntityID()
		eg.Go(func() error {
			err := r.Delete(egCtx, id)
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			deleted++
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return deleted, fmt.Errorf("clear %s: %w", r.collection, err)
	}
	return deleted, nil
}

func (r *Repo[T, PT]) put(ctx context.Context, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	p := PT(v)
	return r.store.PutRecord(ctx, r.collection, db.Record{
		ID:    p.EntityID(),
		Score: p.Created().UnixMilli(),
		Data:  data,
	})
}
