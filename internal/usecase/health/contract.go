package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// LookupChecker checks part-lookup provider availability.
type LookupChecker interface {
	HealthCheck(ctx context.Context) error
}

// Connectivity reports the effective online state.
type Connectivity interface {
	Online() bool
}
