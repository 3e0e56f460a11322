package health

import "context"

// EnginePinger checks search engine availability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// LogChecker checks that the activity log is writable.
type LogChecker interface {
	Check() error
}
