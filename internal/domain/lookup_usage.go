package domain

import "context"

type lookupUsageKey struct{}

// LookupUsage collects LLM token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the service writes after the lookup; the handler reads it for response headers.
type LookupUsage struct {
	TotalTokens int
	Used        bool // true if the integration was called, even when it failed after the request
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *LookupUsage) {
	u := &LookupUsage{}
	return context.WithValue(ctx, lookupUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *LookupUsage {
	u, _ := ctx.Value(lookupUsageKey{}).(*LookupUsage)
	return u
}

// AddTokens records consumed tokens.
func (u *LookupUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Used = true
	}
}
