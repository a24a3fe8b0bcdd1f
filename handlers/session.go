package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"nextgenaccounts/backend/auth"
)

// SessionHandler serves the auth bootstrap routes: sign-up, session
// restoration and logout. These are public: they establish the session the
// protected routes then require.
type SessionHandler struct {
	sessions *auth.SessionManager
	provider auth.IdentityProvider
}

func NewSessionHandler(sessions *auth.SessionManager, provider auth.IdentityProvider) *SessionHandler {
	return &SessionHandler{sessions: sessions, provider: provider}
}

// SignUp creates the identity credential and the profile record in one call.
func (h *SessionHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Name           string `json:"name"`
		OrganizationID string `json:"organizationId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	profile, err := h.sessions.SignUp(r.Context(), request.Email, request.Password, request.Name, request.OrganizationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// Session verifies the caller's token (if any), advances the bootstrap state
// machine and reports the resulting state, user and profile. The dashboard's
// route guards drive off this response.
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := h.resolveUser(r)
	h.sessions.HandleSessionChange(r.Context(), user)

	decision := h.sessions.Guard(auth.GuardConfig{
		LoginPath:        "/login",
		ProfileSetupPath: "/profile/setup",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"state":   h.sessions.State().String(),
		"user":    h.sessions.User(),
		"profile": h.sessions.Profile(),
		"guard":   decision,
	})
}

// Logout clears session state; token revocation is the provider's job.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) resolveUser(r *http.Request) *auth.User {
	header := r.Header.Get("Authorization")
	if header == "" || h.provider == nil {
		return nil
	}
	parts := strings.Split(header, "Bearer ")
	if len(parts) != 2 {
		return nil
	}

	user, err := h.provider.VerifyToken(r.Context(), parts[1])
	if err != nil {
		return nil
	}
	return user
}
