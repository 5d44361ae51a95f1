package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "partpilot"

// unmatchedRoute labels requests that no route handled, so raw paths never become label values.
const unmatchedRoute = "unmatched"

var (
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "PartPilot API latency by route. Search routes include the part lookup.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "PartPilot API requests by route and response code.",
		},
		[]string{"method", "route", "code"},
	)
)

func init() {
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(apiRequestsTotal)
}

// Middleware records API request latency and count, labelled by chi route pattern.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := routeLabel(r)
			apiRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			apiRequestsTotal.WithLabelValues(r.Method, route, codeLabel(ww.Status())).Inc()
		})
	}
}

// routeLabel returns the matched route pattern, e.g. /api/v1/jobs/{id}.
func routeLabel(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}

// codeLabel maps the recorded status; a handler that never wrote counts as 200.
func codeLabel(status int) string {
	if status == 0 {
		status = http.StatusOK
	}
	return strconv.Itoa(status)
}
