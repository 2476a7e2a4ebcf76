package api

import (
	"context"
	"net/http"
	"time"
)

// Users returns the user profile resource client.
func (c *Client) Users() *UsersService {
	return &UsersService{client: c}
}

// UsersService wraps the /users endpoints for the current account.
type UsersService struct {
	client *Client
}

// ProfileInput is the editable slice of the current user's profile.
type ProfileInput struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Department string `json:"department,omitempty"`
}

func (s *UsersService) UpdateProfile(ctx context.Context, in ProfileInput) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/users/me", nil, in)
}

// RoleEligibility reports whether the current user may change their role.
// The backend allows one change per 90 days; NextAllowedAt is when the
// window reopens.
type RoleEligibility struct {
	CanUpdate     bool      `json:"canUpdate"`
	NextAllowedAt time.Time `json:"nextAllowedAt,omitzero"`
	LastChangedAt time.Time `json:"lastChangedAt,omitzero"`
}

// GetRoleEligibility fetches the current role-change window. The UI uses
// CanUpdate to suppress the role control; the backend remains the final
// arbiter and the client never blocks the call itself.
func (s *UsersService) GetRoleEligibility(ctx context.Context) (*RoleEligibility, error) {
	res, err := s.client.do(ctx, http.MethodGet, "/users/me/role-eligibility", nil, nil)
	if err != nil {
		return nil, err
	}
	var e RoleEligibility
	if err := res.Decode(&e); err != nil {
		return nil, s.client.fail(requestError(err))
	}
	return &e, nil
}

// UpdateRole requests a role change. The backend re-checks the password and
// the 90-day rule, and invalidates the session on success.
func (s *UsersService) UpdateRole(ctx context.Context, role Role, password string) (*Result, error) {
	if !role.Valid() {
		return nil, s.client.fail(validationError("unknown role"))
	}
	if password == "" {
		return nil, s.client.fail(validationError("password confirmation is required"))
	}
	body := map[string]string{"role": string(role), "password": password}
	return s.client.do(ctx, http.MethodPut, "/users/me/role", nil, body)
}
