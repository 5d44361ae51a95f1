package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals invalid user input (empty query, empty job name, bad vehicle).
	ErrValidation = errors.New("validation failed")
	// ErrOfflineNoCache signals that the client is offline and no cached results match the query.
	ErrOfflineNoCache = errors.New("you are offline, no cached results for this search")
	// ErrIntegration signals a failed or malformed part-lookup call.
	ErrIntegration = errors.New("failed to search for parts, please try again")
	// ErrPersistence signals a failed write to the entity store.
	ErrPersistence = errors.New("failed to save job")
	// ErrInvalidTransition signals a job status change that is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrLookupQuotaExceeded signals an exhausted LLM token budget.
	ErrLookupQuotaExceeded = errors.New("lookup quota exceeded")
	// ErrFeatureDisabled signals a route guarded by a disabled feature flag.
	ErrFeatureDisabled = errors.New("feature disabled")
)
