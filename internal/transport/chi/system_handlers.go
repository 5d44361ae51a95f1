package chi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/optional"
	domusage "github.com/kailas-cloud/partpilot/internal/domain/usage"
	healthuc "github.com/kailas-cloud/partpilot/internal/usecase/health"
)

type trackClickRequest struct {
	Store string                  `json:"store"`
	Part  string                  `json:"part"`
	Price optional.Value[float64] `json:"price"`
}

type connectivityResponse struct {
	Online bool  `json:"online"`
	Forced *bool `json:"forced"`
}

type connectivityRequest struct {
	Force *bool `json:"force"` // null clears the override
}

type usageResponse struct {
	Period        domusage.Period `json:"period"`
	PeriodStartAt *time.Time      `json:"period_start_at,omitempty"`
	PeriodEndAt   *time.Time      `json:"period_end_at,omitempty"`
	Usage         usageMetrics    `json:"usage"`
	Budget        budgetStatus    `json:"budget"`
}

type usageMetrics struct {
	Lookups int64 `json:"lookups"`
	Tokens  int64 `json:"tokens"`
}

type budgetStatus struct {
	TokensLimit     int64      `json:"tokens_limit"`
	TokensRemaining int64      `json:"tokens_remaining"`
	IsExhausted     bool       `json:"is_exhausted"`
	ResetsAt        *time.Time `json:"resets_at,omitempty"`
}

type healthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
	Online bool                            `json:"online"`
}

// TrackClick handles POST /api/v1/affiliate/clicks.
func (s *Server) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req trackClickRequest
	if !decodeBody(w, r, &req) {
		return
	}
	click, err := s.svc.Affiliate.Track(r.Context(), req.Store, req.Part, req.Price)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, click)
}

// AffiliateStats handles GET /api/v1/affiliate/stats.
func (s *Server) AffiliateStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Affiliate.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// GetConnectivity handles GET /api/v1/connectivity.
func (s *Server) GetConnectivity(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.connectivityView())
}

// SetConnectivity handles PUT /api/v1/connectivity.
func (s *Server) SetConnectivity(w http.ResponseWriter, r *http.Request) {
	var req connectivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.svc.Connectivity.Force(req.Force)
	writeJSON(w, http.StatusOK, s.connectivityView())
}

func (s *Server) connectivityView() connectivityResponse {
	return connectivityResponse{Online: s.svc.Connectivity.Online(), Forced: s.svc.Connectivity.Forced()}
}

// GetUsage handles GET /api/v1/usage?period=day|month|total.
func (s *Server) GetUsage(w http.ResponseWriter, r *http.Request) {
	raw, err := queryString(r, "period")
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	period, err := domusage.ParsePeriod(raw)
	if err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: %w", domain.ErrValidation, err))
		return
	}

	report := s.svc.Usage.GetReport(r.Context(), period)
	resp := usageResponse{
		Period: report.Period,
		Usage:  usageMetrics{Lookups: report.Lookups, Tokens: report.Tokens},
		Budget: budgetStatus{
			TokensLimit:     report.Budget.TokensLimit,
			TokensRemaining: report.Budget.TokensRemaining,
			IsExhausted:     report.Budget.Exhausted(),
		},
	}
	if report.PeriodStart > 0 {
		start := time.UnixMilli(report.PeriodStart).UTC()
		end := time.UnixMilli(report.PeriodEnd).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}
	if report.Budget.ResetsAt > 0 {
		resetsAt := time.UnixMilli(report.Budget.ResetsAt).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListFeatures handles GET /api/v1/features.
func (s *Server) ListFeatures(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.flags.All())
}

// HealthCheck handles GET /health. A degraded lookup still serves cached
// results, so only a database failure answers 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: report.Status,
		Checks: report.Checks,
		Online: report.Online,
	})
}
