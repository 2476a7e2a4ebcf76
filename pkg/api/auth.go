package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Auth returns the authentication resource client.
func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

// AuthService wraps the /auth endpoints. Session state lives in Session;
// these are the raw calls.
type AuthService struct {
	client *Client
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           Role   `json:"role,omitempty"`
	StudentID      string `json:"student_id,omitempty"`
	EmployeeID     string `json:"employee_id,omitempty"`
	Department     string `json:"department,omitempty"`
	OrganizationID int64  `json:"organizationId,omitempty"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Result, error) {
	if email == "" || password == "" {
		return nil, s.client.fail(validationError("email and password are required"))
	}
	body := map[string]string{"email": email, "password": password}
	return s.client.do(ctx, http.MethodPost, "/auth/login", nil, body)
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	if in.Email == "" || in.Password == "" {
		return nil, s.client.fail(validationError("email and password are required"))
	}
	return s.client.do(ctx, http.MethodPost, "/auth/register", nil, in)
}

func (s *AuthService) Logout(ctx context.Context) (*Result, error) {
	return s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me fetches the user bound to the current session cookie.
func (s *AuthService) Me(ctx context.Context) (*User, error) {
	res, err := s.client.do(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeUser(res.Data)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*Result, error) {
	if email == "" {
		return nil, s.client.fail(validationError("email is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/auth/forgot-password", nil, map[string]string{"email": email})
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*Result, error) {
	if token == "" || newPassword == "" {
		return nil, s.client.fail(validationError("token and newPassword are required"))
	}
	body := map[string]string{"token": token, "newPassword": newPassword}
	return s.client.do(ctx, http.MethodPost, "/auth/reset-password", nil, body)
}

// decodeUser extracts a user from an auth response payload. The backend
// answers both {user: {...}} and a bare user object depending on the
// endpoint; accept either.
func decodeUser(data json.RawMessage) (*User, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var wrapped struct {
		User *User `json:"user"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.User != nil {
		return wrapped.User, nil
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	if u.ID == 0 && u.Email == "" {
		return nil, nil
	}
	return &u, nil
}
