package partpilot

import "github.com/kailas-cloud/partpilot/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrValidation          = domain.ErrValidation
	ErrOfflineNoCache      = domain.ErrOfflineNoCache
	ErrIntegration         = domain.ErrIntegration
	ErrPersistence         = domain.ErrPersistence
	ErrInvalidTransition   = domain.ErrInvalidTransition
	ErrLookupQuotaExceeded = domain.ErrLookupQuotaExceeded
)
