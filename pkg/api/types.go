package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Role is the fixed set of platform roles.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleAdmin    Role = "admin"
	RoleTeacher  Role = "teacher"
	RoleEmployee Role = "employee"
	RoleStudent  Role = "student"
)

// Valid reports whether r is one of the platform roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleTeacher, RoleEmployee, RoleStudent:
		return true
	}
	return false
}

// User is the authenticated account as the backend reports it.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           Role      `json:"role"`
	StudentID      string    `json:"student_id,omitempty"`
	EmployeeID     string    `json:"employee_id,omitempty"`
	Department     string    `json:"department,omitempty"`
	OrganizationID int64     `json:"organizationId,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// DateOnly is a calendar date serialized as YYYY-MM-DD. Backend fields that
// are date-only must never receive a full timestamp, and vice versa.
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

// NewDate builds a DateOnly in UTC.
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (DateOnly, error) {
	t, err := time.Parse(dateOnlyLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOnly{t}, nil
}

func (d DateOnly) String() string {
	return d.Format(dateOnlyLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// timestamp serializes a time for backend timestamp fields.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// query collects filter parameters, omitting unset values the way the
// existing UI does (null/undefined filters never reach the query string).
type query struct {
	values url.Values
}

func newQuery() *query {
	return &query{values: url.Values{}}
}

func (q *query) str(key, value string) *query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q *query) id(key string, value int64) *query {
	if value != 0 {
		q.values.Set(key, strconv.FormatInt(value, 10))
	}
	return q
}

func (q *query) num(key string, value int) *query {
	if value != 0 {
		q.values.Set(key, strconv.Itoa(value))
	}
	return q
}

func (q *query) date(key string, value DateOnly) *query {
	if !value.IsZero() {
		q.values.Set(key, value.String())
	}
	return q
}

func (q *query) time(key string, value time.Time) *query {
	if !value.IsZero() {
		q.values.Set(key, timestamp(value))
	}
	return q
}

func (q *query) boolTrue(key string, value bool) *query {
	if value {
		q.values.Set(key, "true")
	}
	return q
}
