package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest holds details captured from an incoming HTTP request.
type capturedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	Body    string
}

// requestRecorder is a thread-safe recorder for requests received by
// httptest servers.
type requestRecorder struct {
	mu       sync.Mutex
	requests []capturedRequest
}

func (r *requestRecorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	body, _ := io.ReadAll(req.Body)
	defer func() { _ = req.Body.Close() }()

	r.requests = append(r.requests, capturedRequest{
		Method:  req.Method,
		Path:    req.URL.Path,
		Query:   req.URL.Query(),
		Headers: req.Header.Clone(),
		Body:    string(body),
	})
}

func (r *requestRecorder) last() capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return capturedRequest{}
	}
	return r.requests[len(r.requests)-1]
}

func (r *requestRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// jsonHandler records the request and responds with the given status and body.
func jsonHandler(rec *requestRecorder, status int, respBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}
}

// newTestClient builds a client against an httptest server with a quiet logger.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(srv.URL, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return c
}

// newQuietClient builds a client for tests that never reach the network.
func newQuietClient() (*Client, error) {
	return NewClient("http://localhost:3000/api", WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestNewClient_TrailingSlash(t *testing.T) {
	c, err := NewClient("http://localhost:3000/api/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/api", c.BaseURL)
}

func TestNewClient_EmptyBaseURL(t *testing.T) {
	_, err := NewClient("   ")
	require.Error(t, err)
}

func TestNewClient_Timeouts(t *testing.T) {
	c, err := NewClient("http://localhost:3000/api")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, c.HTTPClient.Timeout)
	assert.Equal(t, 60*time.Second, c.UploadClient.Timeout)
}

func TestNewClient_SharedCookieJar(t *testing.T) {
	c, err := NewClient("http://localhost:3000/api")
	require.NoError(t, err)
	require.NotNil(t, c.HTTPClient.Jar)
	assert.Same(t, c.HTTPClient.Jar, c.UploadClient.Jar)
}

func TestDo_URLAndQueryConstruction(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, http.StatusOK, `{"success":true,"data":[]}`))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	_, err := c.Attendance().List(context.Background(), ListFilters{UserID: 7, Status: "present"})
	require.NoError(t, err)

	req := rec.last()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/attendance", req.Path)
	assert.Equal(t, "7", req.Query.Get("userId"))
	assert.Equal(t, "present", req.Query.Get("status"))
}

func TestDo_OmitsUnsetFilters(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, http.StatusOK, `{"success":true}`))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	_, err := c.Attendance().List(context.Background(), ListFilters{UserID: 7})
	require.NoError(t, err)

	req := rec.last()
	assert.Equal(t, "7", req.Query.Get("userId"))
	for _, key := range []string{"groupId", "status", "from", "to", "date"} {
		assert.False(t, req.Query.Has(key), "unset filter %q must be omitted", key)
	}
}

func TestDo_JSONContentType(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, http.StatusOK, `{"success":true}`))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	_, err := c.Groups().Create(context.Background(), GroupInput{Name: "1-A"})
	require.NoError(t, err)

	req := rec.last()
	assert.Equal(t, "application/json", req.Headers.Get("Content-Type"))
	assert.JSONEq(t, `{"name":"1-A"}`, req.Body)
}

func TestDo_CarriesSessionCookie(t *testing.T) {
	rec := &requestRecorder{}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc123", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"user":{"id":1,"email":"a@b.com","role":"teacher"}}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	_, err := c.Auth().Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)

	_, err = c.Notifications().List(context.Background(), false)
	require.NoError(t, err)

	cookie := rec.last().Headers.Get("Cookie")
	assert.Contains(t, cookie, "session=abc123")
}

func TestDo_SingleAttemptNoRetry(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, http.StatusInternalServerError, `{"message":"boom"}`))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv)
	_, err := c.Organizations().List(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, rec.count())
}
