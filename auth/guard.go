package auth

// GuardConfig sets where the guard sends users who cannot enter yet.
type GuardConfig struct {
	LoginPath        string
	ProfileSetupPath string
}

// Decision is a route guard's verdict for the current session state.
type Decision struct {
	Allow      bool
	Pending    bool
	RedirectTo string
}

// Guard maps the current session state to a routing decision: Loading is
// pending (render nothing yet), Unauthenticated redirects to the login
// surface, a missing profile redirects to profile setup, and a full session
// passes through.
func (m *SessionManager) Guard(cfg GuardConfig) Decision {
	switch m.State() {
	case StateLoading:
		return Decision{Pending: true}
	case StateUnauthenticated:
		return Decision{RedirectTo: cfg.LoginPath}
	case StateAuthenticatedNoProfile:
		return Decision{RedirectTo: cfg.ProfileSetupPath}
	default:
		return Decision{Allow: true}
	}
}
