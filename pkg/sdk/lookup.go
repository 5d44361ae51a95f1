package partpilot

import "context"

// Lookup answers a part search prompt with structured part candidates.
// Use WithOpenAI for the bundled provider or supply your own.
type Lookup interface {
	Lookup(ctx context.Context, prompt string) (LookupResult, error)
}

// HealthChecker is optionally implemented by a Lookup. When present it
// drives connectivity probing and the lookup health check.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
