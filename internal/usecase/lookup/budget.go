package lookup

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/usage"
)

// BudgetAction defines behavior when the token budget is exceeded.
type BudgetAction string

const (
	// BudgetActionWarn logs a warning but allows the request.
	BudgetActionWarn BudgetAction = "warn"
	// BudgetActionReject blocks the request.
	BudgetActionReject BudgetAction = "reject"
)

// BudgetStore persists counters. Record must tolerate repeated calls.
type BudgetStore interface {
	Record(ctx context.Context, provider string, at time.Time, tokens int64) error
	Load(ctx context.Context, provider string, at time.Time) (usage.Counters, error)
}

// BudgetTracker is an in-memory token budget with optional write-behind persistence.
// Check never touches the store.
type BudgetTracker struct {
	mu             sync.Mutex
	used           usage.Counters
	dailyLimit     int64
	monthlyLimit   int64
	action         BudgetAction
	provider       string
	lastDayReset   time.Time
	lastMonthReset time.Time
	store          BudgetStore
	now            func() time.Time
	logger         *zap.Logger
}

// NewBudgetTracker creates a tracker. A zero limit means unlimited.
func NewBudgetTracker(
	provider string, dailyLimit, monthlyLimit int64,
	action BudgetAction, logger *zap.Logger,
) *BudgetTracker {
	b := &BudgetTracker{
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		action:       action,
		provider:     provider,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
	now := b.now()
	b.lastDayReset = truncateToDay(now)
	b.lastMonthReset = truncateToMonth(now)
	return b
}

// WithStore attaches a persistence store and loads the current period's counters.
func (b *BudgetTracker) WithStore(ctx context.Context, store BudgetStore) *BudgetTracker {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.store = store
	c, err := store.Load(ctx, b.provider, b.now())
	if err != nil {
		b.logger.Warn("Failed to load lookup budget from store", zap.Error(err))
		return b
	}
	b.used = c

	b.logger.Info("Lookup budget loaded from store",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", c.DailyTokens),
		zap.Int64("monthly_used", c.MonthlyTokens),
	)
	return b
}

// Check reports whether a new lookup may run.
func (b *BudgetTracker) Check(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetIfNeeded()

	dailyExceeded := b.dailyLimit > 0 && b.used.DailyTokens >= b.dailyLimit
	monthlyExceeded := b.monthlyLimit > 0 && b.used.MonthlyTokens >= b.monthlyLimit
	if !dailyExceeded && !monthlyExceeded {
		return nil
	}

	if b.action == BudgetActionReject {
		return domain.ErrLookupQuotaExceeded
	}

	b.logger.Warn("Lookup token budget exceeded",
		zap.String("provider", b.provider),
		zap.Int64("daily_used", b.used.DailyTokens),
		zap.Int64("daily_limit", b.dailyLimit),
		zap.Int64("monthly_used", b.used.MonthlyTokens),
		zap.Int64("monthly_limit", b.monthlyLimit),
	)
	return nil
}

// Record registers one lookup call and its tokens, then writes through to the store.
func (b *BudgetTracker) Record(tokens int64) {
	b.mu.Lock()
	b.resetIfNeeded()
	b.used.DailyTokens += tokens
	b.used.MonthlyTokens += tokens
	b.used.DailyCalls++
	b.used.MonthlyCalls++
	store := b.store
	at := b.now()
	b.mu.Unlock()

	if store == nil {
		return
	}

	// detached: the caller's request may already be finishing
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := store.Record(ctx, b.provider, at, tokens); err != nil {
		b.logger.Warn("Failed to persist lookup budget", zap.String("provider", b.provider), zap.Error(err))
	}
}

// RemainingDaily returns tokens left today (-1 if unlimited).
func (b *BudgetTracker) RemainingDaily() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetIfNeeded()
	return remaining(b.dailyLimit, b.used.DailyTokens)
}

// RemainingMonthly returns tokens left this month (-1 if unlimited).
func (b *BudgetTracker) RemainingMonthly() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetIfNeeded()
	return remaining(b.monthlyLimit, b.used.MonthlyTokens)
}

func remaining(limit, used int64) int64 {
	if limit == 0 {
		return -1
	}
	return max(limit-used, 0)
}

// DailyLimit returns the daily token cap.
func (b *BudgetTracker) DailyLimit() int64 { return b.dailyLimit }

// MonthlyLimit returns the monthly token cap.
func (b *BudgetTracker) MonthlyLimit() int64 { return b.monthlyLimit }

// Used returns a snapshot of the current period counters.
func (b *BudgetTracker) Used() usage.Counters {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetIfNeeded()
	return b.used
}

// resetIfNeeded zeroes counters when the day or month rolls over.
func (b *BudgetTracker) resetIfNeeded() {
	now := b.now()
	today := truncateToDay(now)
	thisMonth := truncateToMonth(now)

	if today.After(b.lastDayReset) {
		b.used.DailyTokens, b.used.DailyCalls = 0, 0
		b.lastDayReset = today
	}
	if thisMonth.After(b.lastMonthReset) {
		b.used.MonthlyTokens, b.used.MonthlyCalls = 0, 0
		b.lastMonthReset = thisMonth
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func truncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
