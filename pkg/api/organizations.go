package api

import (
	"context"
	"net/http"
	"strconv"
)

// Organizations returns the organization resource client.
func (c *Client) Organizations() *OrganizationsService {
	return &OrganizationsService{client: c}
}

// OrganizationsService wraps the /organizations endpoints.
type OrganizationsService struct {
	client *Client
}

// OrganizationInput is the create/update payload for an organization.
type OrganizationInput struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func (s *OrganizationsService) List(ctx context.Context) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/organizations", nil, nil)
}

func (s *OrganizationsService) Get(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/organizations/"+strconv.FormatInt(id, 10), nil, nil)
}

func (s *OrganizationsService) Create(ctx context.Context, in OrganizationInput) (*Result, error) {
	if in.Name == "" {
		return nil, s.client.fail(validationError("name is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/organizations", nil, in)
}

func (s *OrganizationsService) Update(ctx context.Context, id int64, in OrganizationInput) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/organizations/"+strconv.FormatInt(id, 10), nil, in)
}

func (s *OrganizationsService) Delete(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodDelete, "/organizations/"+strconv.FormatInt(id, 10), nil, nil)
}

// Stats fetches aggregate membership and attendance figures for the
// organization dashboard.
func (s *OrganizationsService) Stats(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/organizations/"+strconv.FormatInt(id, 10)+"/stats", nil, nil)
}
