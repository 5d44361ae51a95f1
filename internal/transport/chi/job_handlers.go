package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/partpilot/internal/domain"
	domjob "github.com/kailas-cloud/partpilot/internal/domain/job"
)

type createJobRequest struct {
	Name        string `json:"name"`
	VehicleInfo string `json:"vehicle_info"`
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

type jobPartRequest struct {
	Purchased *bool `json:"purchased"`
}

// CreateJob handles POST /api/v1/jobs: the session cart becomes a planned job.
// A blank vehicle_info falls back to the vehicle of the last search, or its query text.
// The saved parts leave the cart only after the job is stored.
func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req createJobRequest
	if !decodeBody(w, r, &req) {
		return
	}

	sess := sessionFrom(r.Context())
	info := req.VehicleInfo
	if strings.TrimSpace(info) == "" {
		info = sess.Search.Query().VehicleInfo()
	}

	c := sess.Cart
	parts := c.Parts()
	j, err := s.svc.Jobs.Save(r.Context(), req.Name, info, parts)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	for i := range parts {
		c.Remove(parts[i].OEMPartNumber)
	}
	writeJSON(w, http.StatusCreated, j)
}

// ListJobs handles GET /api/v1/jobs.
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.svc.Jobs.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newList[domjob.Job](jobs))
}

// GetJob handles GET /api/v1/jobs/{id}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.svc.Jobs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// DeleteJob handles DELETE /api/v1/jobs/{id}.
func (s *Server) DeleteJob(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Jobs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetJobStatus handles PATCH /api/v1/jobs/{id}/status.
func (s *Server) SetJobStatus(w http.ResponseWriter, r *http.Request) {
	var req jobStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	status, err := domjob.ParseStatus(req.Status)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	j, err := s.svc.Jobs.SetStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}

// SetJobPartPurchased handles PATCH /api/v1/jobs/{id}/parts/{oem}.
func (s *Server) SetJobPartPurchased(w http.ResponseWriter, r *http.Request) {
	var req jobPartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Purchased == nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: purchased is required", domain.ErrValidation))
		return
	}

	j, err := s.svc.Jobs.SetPartPurchased(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "oem"), *req.Purchased)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}
