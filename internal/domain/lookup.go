package domain

import (
	"context"

	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

// LookupResult is the outcome of a single part lookup call.
type LookupResult struct {
	Parts        []part.Part
	PromptTokens int
	TotalTokens  int
}

// PartLookup is the part-lookup integration: a prompt in, structured part candidates out.
type PartLookup interface {
	Lookup(ctx context.Context, prompt string) (LookupResult, error)
}
