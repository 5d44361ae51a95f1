package search

import (
	"context"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
)

// Lookup is the part-lookup integration.
type Lookup interface {
	Lookup(ctx context.Context, prompt string) (domain.LookupResult, error)
}

// Cache is the offline result cache.
type Cache interface {
	Put(ctx context.Context, query string, results []part.Part) error
	Get(ctx context.Context, query string) (domsearch.CachedEntry, bool, error)
}

// History persists successful searches.
type History interface {
	Create(ctx context.Context, rec domsearch.HistoryRecord) (domsearch.HistoryRecord, error)
}

// Connectivity reports whether the lookup integration is reachable.
type Connectivity interface {
	Online() bool
}
