package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/partpilot/internal/domain/usage"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader) *Service {
	return &Service{br: br, now: time.Now}
}

// GetReport builds a usage report for the given period.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now().UTC()
	r := domusage.Report{Period: period}

	var used domusage.Counters
	if s.br != nil {
		used = s.br.Used()
	}

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		r.PeriodStart = dayStart.UnixMilli()
		r.PeriodEnd = dayStart.AddDate(0, 0, 1).UnixMilli()
		r.Lookups, r.Tokens = used.DailyCalls, used.DailyTokens
		if s.br != nil {
			r.Budget = budget(s.br.DailyLimit(), s.br.RemainingDaily(), r.PeriodEnd)
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		r.PeriodStart = monthStart.UnixMilli()
		r.PeriodEnd = monthStart.AddDate(0, 1, 0).UnixMilli()
		r.Lookups, r.Tokens = used.MonthlyCalls, used.MonthlyTokens
		if s.br != nil {
			r.Budget = budget(s.br.MonthlyLimit(), s.br.RemainingMonthly(), r.PeriodEnd)
		}
	default:
		// total: no period boundaries, the monthly budget governs
		r.Lookups, r.Tokens = used.MonthlyCalls, used.MonthlyTokens
		if s.br != nil {
			r.Budget = budget(s.br.MonthlyLimit(), s.br.RemainingMonthly(), 0)
		}
	}
	return r
}

func budget(limit, remaining, resetsAt int64) domusage.Budget {
	if limit <= 0 {
		return domusage.Budget{TokensRemaining: -1}
	}
	return domusage.Budget{TokensLimit: limit, TokensRemaining: remaining, ResetsAt: resetsAt}
}
