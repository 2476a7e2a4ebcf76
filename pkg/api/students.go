package api

import (
	"context"
	"net/http"
	"strconv"
)

// Students returns the student resource client.
func (c *Client) Students() *StudentsService {
	return &StudentsService{client: c}
}

// StudentsService wraps the /students endpoints.
type StudentsService struct {
	client *Client
}

// StudentInput is the create/update payload for a student.
type StudentInput struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	StudentID      string `json:"student_id,omitempty"`
	GroupID        int64  `json:"groupId,omitempty"`
	OrganizationID int64  `json:"organizationId,omitempty"`
}

// StudentFilters narrows a student listing.
type StudentFilters struct {
	GroupID        int64
	OrganizationID int64
	Search         string
}

func (s *StudentsService) List(ctx context.Context, f StudentFilters) (*Result, error) {
	q := newQuery().
		id("groupId", f.GroupID).
		id("organizationId", f.OrganizationID).
		str("search", f.Search)
	return s.client.do(ctx, http.MethodGet, "/students", q.values, nil)
}

func (s *StudentsService) Get(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/students/"+strconv.FormatInt(id, 10), nil, nil)
}

func (s *StudentsService) Create(ctx context.Context, in StudentInput) (*Result, error) {
	if in.Name == "" {
		return nil, s.client.fail(validationError("name is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/students", nil, in)
}

func (s *StudentsService) Update(ctx context.Context, id int64, in StudentInput) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/students/"+strconv.FormatInt(id, 10), nil, in)
}

func (s *StudentsService) Delete(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodDelete, "/students/"+strconv.FormatInt(id, 10), nil, nil)
}
