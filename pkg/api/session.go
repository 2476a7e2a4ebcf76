package api

import (
	"context"
	"errors"
	"sync"
)

// ViewMode lets a non-student account preview the student-facing UI. It is
// never persisted and resets on every login, register, and logout.
type ViewMode string

// ViewModeStudent is the only preview mode the platform defines.
const ViewModeStudent ViewMode = "student"

// State is a read-only snapshot of the session. Only Session's own
// operations mutate the underlying fields.
type State struct {
	User            *User
	IsAuthenticated bool
	IsLoading       bool
	ViewMode        ViewMode
}

// Outcome is what login-shaped operations return to their caller. They
// report failure through Success=false instead of an error: the caller is a
// UI surface, and it always needs a displayable message.
type Outcome struct {
	Success bool
	Message string
}

// Session owns authentication state for one client. It is created once at
// process start, bootstrapped exactly once, and safe for concurrent reads.
type Session struct {
	api *Client

	mu           sync.RWMutex
	state        State
	bootstrapped bool
}

// NewSession creates a session in the bootstrapping state: loading, not
// authenticated.
func NewSession(c *Client) *Session {
	return &Session{
		api:   c,
		state: State{IsLoading: true},
	}
}

// Snapshot returns a copy of the current state. The User pointer is copied
// so callers cannot mutate session-held data.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Bootstrap runs the one-time session check at application start. It is
// never retried automatically; a second call is a no-op. Whatever happens,
// IsLoading ends up false.
func (s *Session) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	if s.bootstrapped {
		s.mu.Unlock()
		return
	}
	s.bootstrapped = true
	s.mu.Unlock()

	s.CheckAuth(ctx)
}

// CheckAuth re-fetches the current user, used after profile edits or to
// refresh the role. Any failure, including the expected 401 when no session
// cookie exists, clears to the anonymous state. It never returns an error.
func (s *Session) CheckAuth(ctx context.Context) {
	s.setLoading(true)

	user, err := s.api.Auth().Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || user == nil {
		s.state.User = nil
		s.state.IsAuthenticated = false
	} else {
		s.state.User = user
		s.state.IsAuthenticated = true
	}
	s.state.IsLoading = false
}

// Login authenticates with email and password. On failure the session is
// left (or reset to) anonymous and the backend's message is surfaced; the
// caller never sees a thrown error.
func (s *Session) Login(ctx context.Context, email, password string) Outcome {
	res, err := s.api.Auth().Login(ctx, email, password)
	if err != nil {
		s.clearAuth()
		return failureOutcome(err)
	}
	if !res.Success {
		s.clearAuth()
		return Outcome{Success: false, Message: res.Message}
	}

	user, err := decodeUser(res.Data)
	if err != nil || user == nil {
		s.clearAuth()
		return Outcome{Success: false, Message: apiErrorPrefix + "invalid login response"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	s.state.IsAuthenticated = true
	s.state.ViewMode = ""
	return Outcome{Success: true}
}

// Register creates an account and, like the backend, leaves the caller
// logged in on success. Same contract shape as Login.
func (s *Session) Register(ctx context.Context, in RegisterInput) Outcome {
	res, err := s.api.Auth().Register(ctx, in)
	if err != nil {
		s.clearAuth()
		return failureOutcome(err)
	}
	if !res.Success {
		s.clearAuth()
		return Outcome{Success: false, Message: res.Message}
	}

	user, err := decodeUser(res.Data)
	if err != nil || user == nil {
		s.clearAuth()
		return Outcome{Success: false, Message: apiErrorPrefix + "invalid register response"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = user
	s.state.IsAuthenticated = true
	s.state.ViewMode = ""
	return Outcome{Success: true}
}

// Logout calls the backend best-effort and then clears local state
// unconditionally: the cookie may already be invalid server-side, and the
// local session must not survive that.
func (s *Session) Logout(ctx context.Context) {
	if _, err := s.api.Auth().Logout(ctx); err != nil {
		s.api.Logger.Warn("logout request failed, clearing local session anyway", "error", err)
	}
	s.clearAuth()
}

// SetViewMode toggles the student preview. Ignored for student accounts,
// which already see the student UI.
func (s *Session) SetViewMode(mode ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User != nil && s.state.User.Role == RoleStudent {
		return
	}
	s.state.ViewMode = mode
}

// UpdateRole performs the gated role change. The backend enforces the
// 90-day rule and re-checks the password; on success the backend
// invalidates the session, so a forced logout follows immediately.
func (s *Session) UpdateRole(ctx context.Context, role Role, password string) Outcome {
	res, err := s.api.Users().UpdateRole(ctx, role, password)
	if err != nil {
		return failureOutcome(err)
	}
	if !res.Success {
		return Outcome{Success: false, Message: res.Message}
	}
	s.Logout(ctx)
	return Outcome{Success: true, Message: res.Message}
}

func (s *Session) clearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.IsAuthenticated = false
	s.state.ViewMode = ""
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsLoading = v
}

// failureOutcome converts a normalized error into the Outcome shape.
func failureOutcome(err error) Outcome {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return Outcome{Success: false, Message: apiErr.Message}
	}
	return Outcome{Success: false, Message: err.Error()}
}

// GuardDecision is what a route guard should do for a given session state.
type GuardDecision int

const (
	// GuardLoading: show a loading indicator; the bootstrap has not finished.
	GuardLoading GuardDecision = iota
	// GuardRender: render the requested view.
	GuardRender
	// GuardRedirectLogin: send the visitor to the login view.
	GuardRedirectLogin
	// GuardRedirectHome: send the visitor to the authenticated landing view.
	GuardRedirectHome
)

// Guard decides access for a protected view. Redirect decisions are only
// made once loading has finished.
func Guard(st State) GuardDecision {
	if st.IsLoading {
		return GuardLoading
	}
	if !st.IsAuthenticated {
		return GuardRedirectLogin
	}
	return GuardRender
}

// PublicGuard decides access for a public-only view (login, register).
func PublicGuard(st State) GuardDecision {
	if st.IsLoading {
		return GuardLoading
	}
	if st.IsAuthenticated {
		return GuardRedirectHome
	}
	return GuardRender
}
