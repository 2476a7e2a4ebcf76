package api

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Timetables returns the timetable resource client.
func (c *Client) Timetables() *TimetablesService {
	return &TimetablesService{client: c}
}

// TimetablesService wraps the /timetables endpoints.
type TimetablesService struct {
	client *Client
}

// TimetableInput is the create/update payload for a timetable entry.
// StartsAt/EndsAt are moments (timestamps); Date is the day the entry
// belongs to (date-only).
type TimetableInput struct {
	Title    string    `json:"title,omitempty"`
	Date     DateOnly  `json:"date,omitzero"`
	StartsAt time.Time `json:"startsAt,omitzero"`
	EndsAt   time.Time `json:"endsAt,omitzero"`
	GroupID  int64     `json:"groupId,omitempty"`
	Location string    `json:"location,omitempty"`
}

// TimetableFilters narrows a timetable listing.
type TimetableFilters struct {
	GroupID int64
	From    DateOnly
	To      DateOnly
}

func (s *TimetablesService) List(ctx context.Context, f TimetableFilters) (*Result, error) {
	q := newQuery().
		id("groupId", f.GroupID).
		date("from", f.From).
		date("to", f.To)
	return s.client.do(ctx, http.MethodGet, "/timetables", q.values, nil)
}

func (s *TimetablesService) Get(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodGet, "/timetables/"+strconv.FormatInt(id, 10), nil, nil)
}

func (s *TimetablesService) Create(ctx context.Context, in TimetableInput) (*Result, error) {
	if in.Title == "" {
		return nil, s.client.fail(validationError("title is required"))
	}
	return s.client.do(ctx, http.MethodPost, "/timetables", nil, in)
}

func (s *TimetablesService) Update(ctx context.Context, id int64, in TimetableInput) (*Result, error) {
	return s.client.do(ctx, http.MethodPut, "/timetables/"+strconv.FormatInt(id, 10), nil, in)
}

func (s *TimetablesService) Delete(ctx context.Context, id int64) (*Result, error) {
	return s.client.do(ctx, http.MethodDelete, "/timetables/"+strconv.FormatInt(id, 10), nil, nil)
}

// ImportExcel bulk-loads timetable entries from an Excel workbook. This is
// a multipart call on the upload client; bulk imports regularly exceed the
// JSON timeout.
func (s *TimetablesService) ImportExcel(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	if filename == "" || r == nil {
		return nil, s.client.fail(validationError("an import file is required"))
	}
	file := &Upload{Field: "file", Filename: filename, Reader: r}
	return s.client.doMultipart(ctx, http.MethodPost, "/timetables/import", nil, file)
}
