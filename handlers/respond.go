package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"nextgenaccounts/backend/auth"
	"nextgenaccounts/backend/services"
	"nextgenaccounts/backend/storage"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeServiceError maps the error taxonomy onto HTTP statuses: validation
// failures are the caller's to fix (400), missing ids are 404, identity
// rejections 401, and everything else is treated as a transient store
// failure (500, retryable).
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":      "validation failed",
			"fields":     validationErr.Fields(),
			"violations": validationErr.Violations,
		})
		return
	}

	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}

	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": authErr.Error()})
		return
	}

	log.Error().Err(err).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
