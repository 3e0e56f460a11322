package domain

import "errors"

var (
	// ErrValidation signals bad client input.
	ErrValidation = errors.New("validation failed")
	// ErrConnection signals that the search engine is unreachable.
	ErrConnection = errors.New("search engine unavailable")
	// ErrIndex signals an index setup failure.
	ErrIndex = errors.New("index setup failed")
	// ErrWrite signals a failed document write.
	ErrWrite = errors.New("document write failed")
	// ErrQuery signals a failed search query.
	ErrQuery = errors.New("search query failed")
	// ErrLogWrite signals a failed activity log append. Never surfaced to API callers.
	ErrLogWrite = errors.New("event log write failed")
)
