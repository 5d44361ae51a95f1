// Package usage describes LLM token consumption reports for the part lookup integration.
package usage

import "fmt"

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// ParsePeriod validates a period query value. Empty means month.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodMonth, nil
	case PeriodDay, PeriodMonth, PeriodTotal:
		return p, nil
	default:
		return "", fmt.Errorf("unknown usage period %q", s)
	}
}

// Budget is a token budget snapshot.
type Budget struct {
	TokensLimit     int64
	TokensRemaining int64
	ResetsAt        int64 // unix millis, 0 for total
}

// Exhausted reports whether a limited budget has no tokens left.
func (b Budget) Exhausted() bool {
	return b.TokensLimit > 0 && b.TokensRemaining <= 0
}

// Report is lookup usage for a time period.
type Report struct {
	Period      Period
	PeriodStart int64 // unix millis
	PeriodEnd   int64 // unix millis
	Lookups     int64
	Tokens      int64
	Budget      Budget
}

// Counters is persisted lookup usage for the day and month containing a moment.
type Counters struct {
	DailyTokens   int64
	MonthlyTokens int64
	DailyCalls    int64
	MonthlyCalls  int64
}
