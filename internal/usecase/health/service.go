package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped indicates a check that could not run because a dependency failed.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	indexes IndexVerifier
	names   []string
}

// New creates a Service. indexes can be nil, in which case only the database is checked.
func New(db DBPinger, indexes IndexVerifier, names []string) *Service {
	return &Service{db: db, indexes: indexes, names: names}
}

// Check pings the database, then verifies the configured indexes.
// An unreachable database is Unhealthy; a missing index is Degraded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		if s.indexes != nil {
			checks["indexes"] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.indexes != nil {
		if err := s.indexes.Verify(ctx, s.names); err != nil {
			checks["indexes"] = CheckError
			status = Degraded
		} else {
			checks["indexes"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
