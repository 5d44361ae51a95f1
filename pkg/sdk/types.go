package partpilot

import (
	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/cart"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

// Domain types shared with the server.
type (
	// Part is one part candidate.
	Part = part.Part
	// Vehicle is the optional search context.
	Vehicle = vehicle.Vehicle
	// SearchResult is the outcome of one search.
	SearchResult = domsearch.Outcome
	// CachedSearch is one offline cache entry.
	CachedSearch = domsearch.CachedEntry
	// Cart is the session's parts list.
	Cart = cart.Cart
	// Job is a saved repair project.
	Job = domjob.Job
	// JobStatus is a job's lifecycle state.
	JobStatus = domjob.Status
	// LookupResult is what a Lookup returns for one prompt.
	LookupResult = domain.LookupResult
)

// Job status constants.
const (
	JobPlanned    = domjob.StatusPlanned
	JobInProgress = domjob.StatusInProgress
	JobCompleted  = domjob.StatusCompleted
)
