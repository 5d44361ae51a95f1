package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/partpilot/internal/domain"
)

// ErrorCode is the machine-readable error kind in ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeValidationFailed    ErrorCode = "validation_failed"
	CodeNotFound            ErrorCode = "not_found"
	CodeInvalidTransition   ErrorCode = "invalid_transition"
	CodeOfflineNoCache      ErrorCode = "offline_no_cache"
	CodeIntegrationError    ErrorCode = "integration_error"
	CodeLookupQuotaExceeded ErrorCode = "lookup_quota_exceeded"
	CodePersistenceError    ErrorCode = "persistence_error"
	CodeFeatureDisabled     ErrorCode = "feature_disabled"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// errorHandlers are tried in order; the first match wins.
var errorHandlers = []errorHandler{
	validationHandler,
	sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	sentinelHandler(domain.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition),
	sentinelHandler(domain.ErrOfflineNoCache, http.StatusServiceUnavailable, CodeOfflineNoCache),
	sentinelHandler(domain.ErrLookupQuotaExceeded, http.StatusBadGateway, CodeLookupQuotaExceeded),
	sentinelHandler(domain.ErrIntegration, http.StatusBadGateway, CodeIntegrationError),
	sentinelHandler(domain.ErrPersistence, http.StatusInternalServerError, CodePersistenceError),
	sentinelHandler(domain.ErrFeatureDisabled, http.StatusNotFound, CodeFeatureDisabled),
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler matches a single sentinel and answers with its message only,
// so wrapped internals never reach the client.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// validationHandler keeps the full message: it only describes the caller's input.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.log(r)
	for _, h := range errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
