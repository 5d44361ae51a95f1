package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is down; nothing works without it.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Online bool
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	lookup LookupChecker
	conn   Connectivity
}

// New creates a Service. lookup and conn can be nil.
func New(db DBPinger, lookup LookupChecker, conn Connectivity) *Service {
	return &Service{db: db, lookup: lookup, conn: conn}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks["database"] = result(s.db.Ping(ctx))
	if s.lookup != nil {
		checks["lookup"] = result(s.lookup.HealthCheck(ctx))
	}

	status := Healthy
	switch {
	case checks["database"] == CheckError:
		status = Unhealthy
	case checks["lookup"] == CheckError:
		status = Degraded
	}

	online := true
	if s.conn != nil {
		online = s.conn.Online()
	}
	return Report{Status: status, Checks: checks, Online: online}
}

func result(err error) CheckResult {
	if err != nil {
		return CheckError
	}
	return CheckOK
}
