package chi

import (
	"net/http"
	"strconv"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
	domsearch "github.com/kailas-cloud/partpilot/internal/domain/search"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

type searchRequest struct {
	Query   string           `json:"query"`
	Vehicle *vehicle.Vehicle `json:"vehicle,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ctx, usage := domain.NewContextWithUsage(r.Context())
	out, err := s.svc.Search.Search(ctx, sessionFrom(ctx).Search, req.Query, req.Vehicle)
	setLookupHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	out.Results = s.tagParts(out.Results)
	writeJSON(w, http.StatusOK, out)
}

// SearchState handles GET /api/v1/search/state.
func (s *Server) SearchState(w http.ResponseWriter, r *http.Request) {
	st := sessionFrom(r.Context()).Search.State()
	st.Results = s.tagParts(st.Results)
	writeJSON(w, http.StatusOK, st)
}

// ListCache handles GET /api/v1/cache.
func (s *Server) ListCache(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.Cache.Entries(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList[domsearch.CachedEntry](entries))
}

// ClearCache handles DELETE /api/v1/cache.
func (s *Server) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Cache.Clear(r.Context()); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) tagParts(parts []part.Part) []part.Part {
	if s.svc.Affiliate == nil {
		return parts
	}
	return s.svc.Affiliate.TagParts(parts)
}

func setLookupHeaders(w http.ResponseWriter, usage *domain.LookupUsage) {
	if usage != nil && usage.Used {
		w.Header().Set("X-Lookup-Tokens", strconv.Itoa(usage.TotalTokens))
	}
}
