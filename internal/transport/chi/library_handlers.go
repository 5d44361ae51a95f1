package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/partpilot/internal/domain/part"
	"github.com/kailas-cloud/partpilot/internal/domain/search"
	"github.com/kailas-cloud/partpilot/internal/domain/vehicle"
)

type addVehicleRequest struct {
	vehicle.Vehicle
	Nickname string `json:"nickname"`
}

type savePartRequest struct {
	Part        part.Part `json:"part"`
	VehicleInfo string    `json:"vehicle_info"`
	Notes       string    `json:"notes"`
}

type deletedResponse struct {
	Deleted int `json:"deleted"`
}

// ListVehicles handles GET /api/v1/vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vs, err := s.svc.Garage.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList[vehicle.Garaged](vs))
}

// AddVehicle handles POST /api/v1/vehicles.
func (s *Server) AddVehicle(w http.ResponseWriter, r *http.Request) {
	var req addVehicleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	g, err := s.svc.Garage.Add(r.Context(), req.Vehicle, req.Nickname)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

// DeleteVehicle handles DELETE /api/v1/vehicles/{id}.
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Garage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSavedParts handles GET /api/v1/saved-parts.
func (s *Server) ListSavedParts(w http.ResponseWriter, r *http.Request) {
	ps, err := s.svc.SavedParts.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList[part.Saved](ps))
}

// SavePart handles POST /api/v1/saved-parts.
func (s *Server) SavePart(w http.ResponseWriter, r *http.Request) {
	var req savePartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	saved, err := s.svc.SavedParts.Save(r.Context(), req.Part, req.VehicleInfo, req.Notes)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ClearSavedParts handles DELETE /api/v1/saved-parts.
func (s *Server) ClearSavedParts(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.SavedParts.Clear(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}

// DeleteSavedPart handles DELETE /api/v1/saved-parts/{id}.
func (s *Server) DeleteSavedPart(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.SavedParts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHistory handles GET /api/v1/history?limit=.
func (s *Server) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	n := 0
	if limit != nil {
		n = *limit
	}

	recs, err := s.svc.History.List(r.Context(), n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList[search.HistoryRecord](recs))
}

// ClearHistory handles DELETE /api/v1/history.
func (s *Server) ClearHistory(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.History.Clear(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Deleted: n})
}

// DeleteHistory handles DELETE /api/v1/history/{id}.
func (s *Server) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.History.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
