// Package lookup wraps the part lookup integration with budget enforcement and usage accounting.
package lookup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/metrics"
)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// Instrumented wraps a PartLookup with budget enforcement and logging.
// Transport metrics (requests, duration, tokens) are recorded in transport/openai;
// this layer owns budget tracking, budget metrics and per-request usage.
type Instrumented struct {
	inner    domain.PartLookup
	provider string
	model    string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumented wraps a lookup. budget may be nil (unlimited).
func NewInstrumented(
	inner domain.PartLookup, provider, model string,
	budget BudgetChecker, logger *zap.Logger,
) *Instrumented {
	return &Instrumented{
		inner:    inner,
		provider: provider,
		model:    model,
		budget:   budget,
		logger:   logger,
	}
}

// Lookup checks the budget, delegates and records usage.
func (p *Instrumented) Lookup(ctx context.Context, prompt string) (domain.LookupResult, error) {
	if p.budget != nil {
		if err := p.budget.Check(ctx); err != nil {
			p.logger.Error("Lookup budget exceeded",
				zap.String("provider", p.provider),
				zap.String("model", p.model),
				zap.Error(err),
			)
			return domain.LookupResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()
	result, err := p.inner.Lookup(ctx, prompt)
	duration := time.Since(start)

	if err != nil {
		p.logger.Error("Part lookup failed",
			zap.String("provider", p.provider),
			zap.String("model", p.model),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.LookupResult{}, fmt.Errorf("lookup: %w", err)
	}

	domain.UsageFromContext(ctx).AddTokens(result.TotalTokens)

	if p.budget != nil {
		p.budget.Record(int64(result.TotalTokens))
		remaining := metrics.LookupBudgetTokensRemaining
		remaining.WithLabelValues(p.provider, "daily").Set(float64(p.budget.RemainingDaily()))
		remaining.WithLabelValues(p.provider, "monthly").Set(float64(p.budget.RemainingMonthly()))
	}

	p.logger.Debug("Part lookup completed",
		zap.String("provider", p.provider),
		zap.String("model", p.model),
		zap.Duration("duration", duration),
		zap.Int("parts", len(result.Parts)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}
