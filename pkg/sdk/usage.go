package partpilot

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/partpilot/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport contains lookup usage statistics for a time period.
// PeriodStart and PeriodEnd are zero for PeriodTotal.
type UsageReport struct {
	Period      UsagePeriod
	PeriodStart time.Time
	PeriodEnd   time.Time
	Lookups     int64
	Tokens      int64
	Budget      BudgetStatus
}

// BudgetStatus tracks token quota state. TokensRemaining is -1 when unlimited.
type BudgetStatus struct {
	TokensLimit     int64
	TokensRemaining int64
	IsExhausted     bool
	ResetsAt        time.Time
}

// Usage returns a lookup usage report for the given period.
// Observer always records success: the underlying use case is in-memory
// and does not produce errors.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, nil) }()

	report := c.usageSvc.GetReport(ctx, domusage.Period(period))
	out := UsageReport{
		Period:  UsagePeriod(report.Period),
		Lookups: report.Lookups,
		Tokens:  report.Tokens,
		Budget: BudgetStatus{
			TokensLimit:     report.Budget.TokensLimit,
			TokensRemaining: report.Budget.TokensRemaining,
			IsExhausted:     report.Budget.Exhausted(),
			ResetsAt:        millis(report.Budget.ResetsAt),
		},
	}
	out.PeriodStart = millis(report.PeriodStart)
	out.PeriodEnd = millis(report.PeriodEnd)
	return out
}

func millis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
