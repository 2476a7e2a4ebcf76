package api

import (
	"context"
	"net/http"
	"strconv"
)

// Groups returns the group resource client.
func (c *Client) Groups() *GroupsService {
	return &GroupsService{client: c}
}

// GroupsService wraps the /groups endpoints.
type GroupsService struct {
	client *Client
}

// GroupInput is the create/update payload for a group.
type GroupInput struct {
	Name           string `json:"name,omitempty"`
	Description    string `json:"description,omitempty"`
	OrganizationID int64  `json:"organizationId,omitempty"`
}

func (s *GroupsService) List(ctx context.Context, organizationID int64) (*Result, error) {
	q := newQuery().id("organizationId", organizationID)
	return s.client.do(ctx, http.MethodGet, "/groups", q.values, nil)
}

func (s *GroupsService) Get(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/groups/"+strconv.FormatInt(id, 10), nil, nil)
}

func (s *GroupsService) Create(ctx context.Context, in GroupInput) (*Result, error) {
	if in.Name == "" {
		return nil, s.client.fail(validationError("name is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/groups", nil, in)
}

func (s *GroupsService) Update(ctx context.Context, id int64, in GroupInput) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/groups/"+strconv.FormatInt(id, 10), nil, in)
}

func (s *GroupsService) Delete(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodDelete, "/groups/"+strconv.FormatInt(id, 10), nil, nil)
}

func (s *GroupsService) AddMember(ctx context.Context, groupID, userID int64) (*Result, error) {
	path := "/groups/" + strconv.FormatInt(groupID, 10) + "/members"
	return s.client.do(ctx, http.MethodPost, path, nil, map[string]int64{"userId": userID})
}

func (s *GroupsService) RemoveMember(ctx context.Context, groupID, userID int64) (*Result, error) {
	path := "/groups/" + strconv.FormatInt(groupID, 10) + "/members/" + strconv.FormatInt(userID, 10)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}
