package searchgate

import "github.com/kailas-cloud/searchgate/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation = domain.ErrValidation
	ErrConnection = domain.ErrConnection
	ErrIndex      = domain.ErrIndex
	ErrWrite      = domain.ErrWrite
	ErrQuery      = domain.ErrQuery
)
