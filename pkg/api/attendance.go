package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Attendance returns the attendance resource client.
func (c *Client) Attendance() *AttendanceService {
	return &AttendanceService{client: c}
}

// AttendanceService wraps the /attendance endpoints.
type AttendanceService struct {
	client *Client
}

// RecordInput is one attendance event. Date is the attendance day
// (date-only); Timestamp is the moment the event happened (full timestamp).
// The two serializations must not be swapped.
type RecordInput struct {
	UserID    int64
	Date      DateOnly
	Type      string
	Timestamp time.Time
	// RecordID deduplicates re-submissions server-side. When empty, a new
	// one is minted client-side.
	RecordID string
}

// Record posts one attendance event.
func (s *AttendanceService) Record(ctx context.Context, in RecordInput) (*Result, error) {
	if in.UserID == 0 {
		return nil, s.client.fail(validationError("userId is required"))
	}
	if in.Date.IsZero() {
		return nil, s.client.fail(validationError("date is required"))
	}
	if in.Type == "" {
		return nil, s.client.fail(validationError("type is required"))
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}
	if in.RecordID == "" {
		in.RecordID = uuid.NewString()
	}
	body := map[string]any{
		"userId":    in.UserID,
		"date":      in.Date.String(),
		"type":      in.Type,
		"timestamp": timestamp(in.Timestamp),
		"recordId":  in.RecordID,
	}
	return s.client.do(ctx, http.MethodPost, "/attendance", nil, body)
}

// ListFilters narrows an attendance query. Zero-valued filters are omitted
// from the query string.
type ListFilters struct {
	UserID  int64
	GroupID int64
	Status  string
	From    DateOnly
	To      DateOnly
	Date    DateOnly
}

// List fetches attendance records matching the filters.
func (s *AttendanceService) List(ctx context.Context, f ListFilters) (*Result, error) {
	q := newQuery().
		id("userId", f.UserID).
		id("groupId", f.GroupID).
		str("status", f.Status).
		date("from", f.From).
		date("to", f.To).
		date("date", f.Date)
	return s.client.do(ctx, http.MethodGet, "/attendance", q.values, nil)
}

// Stats fetches aggregate attendance figures for one user over a period
// ("week", "month", "year").
func (s *AttendanceService) Stats(ctx context.Context, userID int64, period string) (*Result, error) {
	q := newQuery().id("userId", userID).str("period", period)
	return s.client.do(ctx, http.MethodGet, "/attendance/stats", q.values, nil)
}

// Report fetches the monthly report for one user.
func (s *AttendanceService) Report(ctx context.Context, userID int64, year int, month time.Month) (*Result, error) {
	q := newQuery().id("userId", userID).num("year", year).num("month", int(month))
	return s.client.do(ctx, http.MethodGet, "/attendance/report", q.values, nil)
}

// DailyStats fetches per-day presence counts for a month, used by the
// calendar view.
func (s *AttendanceService) DailyStats(ctx context.Context, year int, month time.Month) (*Result, error) {
	q := newQuery().num("year", year).num("month", int(month))
	return s.client.do(ctx, http.MethodGet, "/attendance/daily-stats", q.values, nil)
}

// AbsenceDetails fetches who was absent on a given day and why.
func (s *AttendanceService) AbsenceDetails(ctx context.Context, date DateOnly) (*Result, error) {
	if date.IsZero() {
		return nil, s.client.fail(validationError("date is required"))
	}
	return s.client.do(ctx, http.MethodGet, "/attendance/absence-details/"+date.String(), nil, nil)
}

// ExportCSV downloads attendance records as CSV. Errors on this endpoint
// arrive as a blob and are decoded before rejection.
func (s *AttendanceService) ExportCSV(ctx context.Context, f ListFilters) ([]byte, error) {
	q := newQuery().
		id("userId", f.UserID).
		id("groupId", f.GroupID).
		str("status", f.Status).
		date("from", f.From).
		date("to", f.To).
		date("date", f.Date)
	return s.client.doBinary(ctx, http.MethodGet, "/attendance/export", q.values)
}
