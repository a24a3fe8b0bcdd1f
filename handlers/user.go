package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"nextgenaccounts/backend/middleware"
	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/storage"
)

// UserHandler serves profile bootstrap routes. Profiles are keyed by the
// identity provider's user id and created on first sign-in sync.
type UserHandler struct {
	profiles storage.ProfileStore
}

func NewUserHandler(profiles storage.ProfileStore) *UserHandler {
	return &UserHandler{profiles: profiles}
}

// SyncProfile ensures the authenticated identity-provider user has a profile
// record, creating one on first contact.
func (h *UserHandler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	if userID == "" {
		http.Error(w, "Unauthorized: no user id found", http.StatusUnauthorized)
		return
	}

	var request struct {
		Email          string `json:"email"`
		Name           string `json:"name"`
		OrganizationID string `json:"organizationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err == nil {
		writeJSON(w, http.StatusOK, profile)
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		writeServiceError(w, err)
		return
	}

	now := time.Now()
	profile = &models.UserProfile{
		UserID:         userID,
		Email:          request.Email,
		DisplayName:    request.Name,
		OrganizationID: request.OrganizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.profiles.CreateProfile(r.Context(), profile); err != nil {
		writeServiceError(w, err)
		return
	}

	log.Info().Str("uid", userID).Msg("created profile for new user")
	writeJSON(w, http.StatusCreated, profile)
}

// GetProfile returns a profile by identity-provider user id.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
