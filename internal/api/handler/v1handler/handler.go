// Package v1handler implements the v1 HTTP endpoints of the URL checker.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"urlcheck/internal/checker"
	"urlcheck/pkg/logger"
	"urlcheck/pkg/serrors"

	"go.uber.org/zap"
)

// Deps holds the collaborators the handlers need.
type Deps struct {
	Checker checker.Checker
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// errorResponse is the JSON error body returned by all v1 endpoints.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps semantic error kinds to HTTP status codes. Anything
// without a recognized kind is an internal error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, serrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// internal details stay in the logs
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = "internal error"
	}

	writeJSON(ctx, w, status, errorResponse{Error: msg})
}
