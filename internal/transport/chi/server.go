// Package chi exposes the partpilot HTTP API on a chi router.
package chi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/connectivity"
	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/features"
	logpkg "github.com/kailas-cloud/partpilot/internal/logger"
	"github.com/kailas-cloud/partpilot/internal/metrics"
	"github.com/kailas-cloud/partpilot/internal/repository/searchcache"
	affiliateuc "github.com/kailas-cloud/partpilot/internal/usecase/affiliate"
	garageuc "github.com/kailas-cloud/partpilot/internal/usecase/garage"
	healthuc "github.com/kailas-cloud/partpilot/internal/usecase/health"
	historyuc "github.com/kailas-cloud/partpilot/internal/usecase/history"
	jobuc "github.com/kailas-cloud/partpilot/internal/usecase/job"
	savedpartsuc "github.com/kailas-cloud/partpilot/internal/usecase/savedparts"
	searchuc "github.com/kailas-cloud/partpilot/internal/usecase/search"
	"github.com/kailas-cloud/partpilot/internal/usecase/session"
	usageuc "github.com/kailas-cloud/partpilot/internal/usecase/usage"
)

// Services are the use cases behind the API.
type Services struct {
	Search       *searchuc.Service
	Cache        *searchcache.Cache
	Sessions     *session.Registry
	Jobs         *jobuc.Service
	Garage       *garageuc.Service
	SavedParts   *savedpartsuc.Service
	History      *historyuc.Service
	Affiliate    *affiliateuc.Service
	Usage        *usageuc.Service
	Health       *healthuc.Service
	Connectivity *connectivity.Monitor
}

// Server holds the HTTP handlers.
type Server struct {
	svc    Services
	flags  features.Flags
	logger *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, flags features.Flags, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, flags: flags, logger: logger}
}

// Handler builds the router with the full middleware stack.
func (s *Server) Handler(apiKeys []string) http.Handler {
	r := chi.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(apiKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(s.svc.Sessions))

		r.Post("/search", s.Search)
		r.Get("/search/state", s.SearchState)
		r.Get("/cache", s.ListCache)
		r.Delete("/cache", s.ClearCache)

		r.Get("/cart", s.GetCart)
		r.Delete("/cart", s.ClearCart)
		r.Post("/cart/items", s.AddCartItem)
		r.Post("/cart/items/all", s.AddAllCartItems)
		r.Delete("/cart/items/{oem}", s.RemoveCartItem)

		r.Group(func(r chi.Router) {
			r.Use(requireFeature(s.flags, features.Jobs))
			r.Post("/jobs", s.CreateJob)
			r.Get("/jobs", s.ListJobs)
			r.Get("/jobs/{id}", s.GetJob)
			r.Delete("/jobs/{id}", s.DeleteJob)
			r.Patch("/jobs/{id}/status", s.SetJobStatus)
			r.Patch("/jobs/{id}/parts/{oem}", s.SetJobPartPurchased)
		})
		r.Group(func(r chi.Router) {
			r.Use(requireFeature(s.flags, features.Garage))
			r.Get("/vehicles", s.ListVehicles)
			r.Post("/vehicles", s.AddVehicle)
			r.Delete("/vehicles/{id}", s.DeleteVehicle)
		})
		r.Group(func(r chi.Router) {
			r.Use(requireFeature(s.flags, features.PartsList))
			r.Get("/saved-parts", s.ListSavedParts)
			r.Post("/saved-parts", s.SavePart)
			r.Delete("/saved-parts", s.ClearSavedParts)
			r.Delete("/saved-parts/{id}", s.DeleteSavedPart)
		})
		r.Group(func(r chi.Router) {
			r.Use(requireFeature(s.flags, features.SearchHistory))
			r.Get("/history", s.ListHistory)
			r.Delete("/history", s.ClearHistory)
			r.Delete("/history/{id}", s.DeleteHistory)
		})

		r.Post("/affiliate/clicks", s.TrackClick)
		r.Get("/affiliate/stats", s.AffiliateStats)
		r.Get("/connectivity", s.GetConnectivity)
		r.Put("/connectivity", s.SetConnectivity)
		r.Get("/usage", s.GetUsage)
		r.Get("/features", s.ListFeatures)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
	return r
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return logpkg.FromContext(r.Context())
}

// decodeBody decodes a JSON request body, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// queryInt binds an optional integer query parameter.
func queryInt(r *http.Request, name string) (*int, error) {
	var v *int
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, fmt.Errorf("%w: invalid %s parameter", domain.ErrValidation, name)
	}
	return v, nil
}

// queryString binds an optional string query parameter.
func queryString(r *http.Request, name string) (string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return "", fmt.Errorf("%w: invalid %s parameter", domain.ErrValidation, name)
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}
