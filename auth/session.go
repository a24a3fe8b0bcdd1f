package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"nextgenaccounts/backend/models"
	"nextgenaccounts/backend/storage"
)

// State is the session bootstrap state consumed by route guards.
type State int

const (
	// StateLoading is the initial state before the first session event.
	StateLoading State = iota
	// StateUnauthenticated means no user is signed in.
	StateUnauthenticated
	// StateAuthenticatedNoProfile means a user is signed in but has no
	// profile record yet (or the profile fetch failed).
	StateAuthenticatedNoProfile
	// StateAuthenticatedWithProfile means a user is signed in and their
	// profile is loaded.
	StateAuthenticatedWithProfile
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticatedNoProfile:
		return "authenticated-no-profile"
	case StateAuthenticatedWithProfile:
		return "authenticated"
	default:
		return "unknown"
	}
}

// SessionManager tracks the current session user and their profile. It starts
// in Loading and advances on session events from the identity provider.
type SessionManager struct {
	provider IdentityProvider
	profiles storage.ProfileStore
	now      func() time.Time

	mu      sync.Mutex
	state   State
	user    *User
	profile *models.UserProfile
}

func NewSessionManager(provider IdentityProvider, profiles storage.ProfileStore) *SessionManager {
	return &SessionManager{
		provider: provider,
		profiles: profiles,
		now:      time.Now,
		state:    StateLoading,
	}
}

// HandleSessionChange processes a session event from the identity provider.
// A nil user means signed out. For a signed-in user the profile is fetched by
// uid; a missing profile or a failed fetch both land in
// AuthenticatedNoProfile. A profile fetch error is logged, never fatal.
func (m *SessionManager) HandleSessionChange(ctx context.Context, user *User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user == nil {
		m.state = StateUnauthenticated
		m.user = nil
		m.profile = nil
		return
	}

	m.user = user
	profile, err := m.profiles.GetProfile(ctx, user.UID)
	switch {
	case err == nil:
		m.state = StateAuthenticatedWithProfile
		m.profile = profile
	case errors.Is(err, storage.ErrNotFound):
		m.state = StateAuthenticatedNoProfile
		m.profile = nil
	default:
		log.Warn().Err(err).Str("uid", user.UID).Msg("profile fetch failed, treating profile as absent")
		m.state = StateAuthenticatedNoProfile
		m.profile = nil
	}
}

// SignUp creates the identity-provider credential and then the profile
// record. If profile creation fails after the credential already exists, the
// two stores are left inconsistent: there is no compensating delete of the
// credential. Known gap, kept as-is.
func (m *SessionManager) SignUp(ctx context.Context, email, password, displayName, organizationID string) (*models.UserProfile, error) {
	if m.provider == nil {
		return nil, &AuthError{Op: "sign up", Err: errors.New("identity provider not configured")}
	}

	user, err := m.provider.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}

	now := m.now()
	profile := &models.UserProfile{
		UserID:         user.UID,
		Email:          email,
		DisplayName:    displayName,
		OrganizationID: organizationID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := m.profiles.CreateProfile(ctx, profile); err != nil {
		log.Error().Err(err).Str("uid", user.UID).Msg("profile creation failed after credential creation")
		return nil, err
	}

	m.mu.Lock()
	m.state = StateAuthenticatedWithProfile
	m.user = user
	m.profile = profile
	m.mu.Unlock()

	return profile, nil
}

// Logout clears local session state and delegates session teardown to the
// identity provider.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	user := m.user
	m.state = StateUnauthenticated
	m.user = nil
	m.profile = nil
	m.mu.Unlock()

	if user != nil && m.provider != nil {
		if err := m.provider.SignOut(ctx, user.UID); err != nil {
			return err
		}
	}
	return nil
}

// State returns the current bootstrap state.
func (m *SessionManager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the current session user, or nil.
func (m *SessionManager) User() *User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Profile returns the loaded profile, or nil.
func (m *SessionManager) Profile() *models.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}
