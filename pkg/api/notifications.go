package api

import (
	"context"
	"net/http"
	"strconv"
)

// Notifications returns the notification resource client.
func (c *Client) Notifications() *NotificationsService {
	return &NotificationsService{client: c}
}

// NotificationsService wraps the /notifications endpoints.
type NotificationsService struct {
	client *Client
}

// NotificationInput is the payload for a staff-created notification.
type NotificationInput struct {
	Title   string `json:"title"`
	Body    string `json:"body,omitempty"`
	UserID  int64  `json:"userId,omitempty"`
	GroupID int64  `json:"groupId,omitempty"`
}

func (s *NotificationsService) List(ctx context.Context, unreadOnly bool) (*Result, error) {
	q := newQuery().boolTrue("unread", unreadOnly)
	return s.client.do(ctx, http.MethodGet, "/notifications", q.values, nil)
}

func (s *NotificationsService) Create(ctx context.Context, in NotificationInput) (*Result, error) {
	if in.Title == "" {
		return nil, s.client.fail(validationError("title is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/notifications", nil, in)
}

func (s *NotificationsService) MarkRead(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/notifications/"+strconv.FormatInt(id, 10)+"/read", nil, nil)
}

func (s *NotificationsService) MarkAllRead(ctx context.Context) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
}

func (s *NotificationsService) Delete(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodDelete, "/notifications/"+strconv.FormatInt(id, 10), nil, nil)
}
