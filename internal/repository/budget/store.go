// Package budget persists LLM lookup counters (tokens and calls) per day and month.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/partpilot/internal/db"
	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/usage"
)

// store is the consumer interface for budget operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store keeps counters under partpilot:budget:{provider}:{daily|monthly}:{period}:{tokens|calls}.
type Store struct {
	store    store
	dailyTTL time.Duration
	monthTTL time.Duration
}

// New creates a budget store.
// dailyTTL should outlive a day (48h), monthTTL a month (62 days).
func New(s store, dailyTTL, monthTTL time.Duration) *Store {
	return &Store{
		store:    s,
		dailyTTL: dailyTTL,
		monthTTL: monthTTL,
	}
}

func dailyKey(provider string, at time.Time, metric string) string {
	return fmt.Sprintf("%sbudget:%s:daily:%s:%s", domain.KeyPrefix, provider, at.UTC().Format("2006-01-02"), metric)
}

func monthlyKey(provider string, at time.Time, metric string) string {
	return fmt.Sprintf("%sbudget:%s:monthly:%s:%s", domain.KeyPrefix, provider, at.UTC().Format("2006-01"), metric)
}

// Record adds one call and the given tokens to the day and month containing at.
func (s *Store) Record(ctx context.Context, provider string, at time.Time, tokens int64) error {
	writes := []struct {
		key string
		val int64
		ttl time.Duration
	}{
		{dailyKey(provider, at, "tokens"), tokens, s.dailyTTL},
		{monthlyKey(provider, at, "tokens"), tokens, s.monthTTL},
		{dailyKey(provider, at, "calls"), 1, s.dailyTTL},
		{monthlyKey(provider, at, "calls"), 1, s.monthTTL},
	}

	var errs []error
	for _, w := range writes {
		if err := s.incr(ctx, w.key, w.val, w.ttl); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) incr(ctx context.Context, key string, val int64, ttl time.Duration) error {
	if err := s.store.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("budget INCRBY %s: %w", key, err)
	}
	// NX: the first write of a period fixes its expiry.
	if err := s.store.Expire(ctx, key, ttl, true); err != nil {
		return fmt.Errorf("budget EXPIRE %s: %w", key, err)
	}
	return nil
}

// Load reads the counters for the day and month containing at. Missing keys count as 0.
func (s *Store) Load(ctx context.Context, provider string, at time.Time) (usage.Counters, error) {
	var c usage.Counters
	reads := []struct {
		key string
		dst *int64
	}{
		{dailyKey(provider, at, "tokens"), &c.DailyTokens},
		{monthlyKey(provider, at, "tokens"), &c.MonthlyTokens},
		{dailyKey(provider, at, "calls"), &c.DailyCalls},
		{monthlyKey(provider, at, "calls"), &c.MonthlyCalls},
	}
	for _, r := range reads {
		v, err := s.get(ctx, r.key)
		if err != nil {
			return usage.Counters{}, err
		}
		*r.dst = v
	}
	return c, nil
}

func (s *Store) get(ctx context.Context, key string) (int64, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("budget GET %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget GET %s parse: %w", key, err)
	}
	return val, nil
}
