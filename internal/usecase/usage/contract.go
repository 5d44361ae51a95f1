package usage

import domusage "github.com/kailas-cloud/partpilot/internal/domain/usage"

// BudgetReader provides read-only access to token budget state.
type BudgetReader interface {
	DailyLimit() int64
	MonthlyLimit() int64
	RemainingDaily() int64
	RemainingMonthly() int64
	Used() domusage.Counters
}
