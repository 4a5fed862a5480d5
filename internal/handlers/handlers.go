package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/pkg/apperr"
	"github.com/playmaker-live/playmaker/pkg/models"
)

// HealthHandler reports service health
type HealthHandler struct{}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "playmaker",
	})
}

// Helper functions

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("error encoding response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		log.Error(message, zap.Error(err))
	}

	respondJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

// respondAppError translates the error taxonomy to an HTTP status.
// Validation maps to 400, not-found to 404, everything else
// (upstream, configuration, unknown) to 500.
func respondAppError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		respondError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, apperr.ErrNotFound):
		respondError(w, http.StatusNotFound, message, err)
	default:
		respondError(w, http.StatusInternalServerError, message, err)
	}
}
