package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names in Report.Checks.
const (
	ComponentEngine   = "engine"
	ComponentEventLog = "event_log"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine EnginePinger
	log    LogChecker
}

// New creates a Service. log can be nil.
func New(engine EnginePinger, log LogChecker) *Service {
	return &Service{engine: engine, log: log}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if err := s.engine.Ping(ctx); err != nil {
		checks[ComponentEngine] = CheckError
	} else {
		checks[ComponentEngine] = CheckOK
	}

	if s.log != nil {
		if err := s.log.Check(); err != nil {
			checks[ComponentEventLog] = CheckError
		} else {
			checks[ComponentEventLog] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
