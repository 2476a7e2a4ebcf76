package api

import (
	"context"
	"net/http"
	"strconv"
)

// AbsenceRequests returns the absence request resource client.
func (c *Client) AbsenceRequests() *AbsenceRequestsService {
	return &AbsenceRequestsService{client: c}
}

// AbsenceRequestsService wraps the /absence-requests and /approvals
// endpoints: a student (or guardian) files a request, staff approve or
// reject it.
type AbsenceRequestsService struct {
	client *Client
}

// AbsenceRequestInput is the create/update payload. From/To are date-only;
// an open-ended single day uses From alone.
type AbsenceRequestInput struct {
	UserID int64
	From   DateOnly
	To     DateOnly
	Type   string
	Reason string
}

func (in AbsenceRequestInput) body() map[string]any {
	body := map[string]any{
		"userId": in.UserID,
		"from":   in.From.String(),
		"type":   in.Type,
		"reason": in.Reason,
	}
	if !in.To.IsZero() {
		body["to"] = in.To.String()
	}
	return body
}

// AbsenceFilters narrows an absence request listing.
type AbsenceFilters struct {
	UserID int64
	Status string
	From   DateOnly
	To     DateOnly
}

func (s *AbsenceRequestsService) List(ctx context.Context, f AbsenceFilters) (*Result, error) {
	q := newQuery().
		id("userId", f.UserID).
		str("status", f.Status).
		date("from", f.From).
		date("to", f.To)
	return s.client.do(ctx, http.MethodGet, "/absence-requests", q.values, nil)
}

func (s *AbsenceRequestsService) Get(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/absence-requests/"+strconv.FormatInt(id, 10), nil, nil)
}

// Create files an absence request. When attachment is non-nil (a medical
// certificate, for example) the request is sent as multipart on the upload
// client; otherwise it is a plain JSON call.
func (s *AbsenceRequestsService) Create(ctx context.Context, in AbsenceRequestInput, attachment *Upload) (*Result, error) {
	if in.UserID == 0 {
		return nil, s.client.fail(validationError("userId is required"))
	}
	if in.From.IsZero() {
		return nil, s.client.fail(validationError("from date is required"))
	}
	if attachment != nil {
		fields := map[string]string{
			"userId": strconv.FormatInt(in.UserID, 10),
			"from":   in.From.String(),
			"type":   in.Type,
			"reason": in.Reason,
		}
		if !in.To.IsZero() {
			fields["to"] = in.To.String()
		}
		return s.client.doMultipart(ctx, http.MethodPost, "/absence-requests", fields, attachment)
	}
	return s.client.do(ctx, http.MethodPost, "/absence-requests", nil, in.body())
}

func (s *AbsenceRequestsService) Update(ctx context.Context, id int64, in AbsenceRequestInput) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/absence-requests/"+strconv.FormatInt(id, 10), nil, in.body())
}

func (s *AbsenceRequestsService) Delete(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodDelete, "/absence-requests/"+strconv.FormatInt(id, 10), nil, nil)
}

// Approve resolves a request positively. Comment is optional.
func (s *AbsenceRequestsService) Approve(ctx context.Context, id int64, comment string) (*Result, error) {
	body := map[string]string{}
	if comment != "" {
		body["comment"] = comment
	}
	return s.client.do(ctx, http.MethodPost, "/approvals/"+strconv.FormatInt(id, 10)+"/approve", nil, body)
}

// Reject resolves a request negatively. A comment explaining the rejection
// is required.
func (s *AbsenceRequestsService) Reject(ctx context.Context, id int64, comment string) (*Result, error) {
	if comment == "" {
		return nil, s.client.fail(validationError("a rejection comment is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/approvals/"+strconv.FormatInt(id, 10)+"/reject", nil, map[string]string{"comment": comment})
}
