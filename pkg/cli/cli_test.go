package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturedRequest holds details captured from an incoming HTTP request.
type capturedRequest struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
	Body    string
}

// requestRecorder is a thread-safe recorder for HTTP requests received by httptest servers.
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
		Query:   req.URL.RawQuery,
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

// jsonHandler returns an http.HandlerFunc that records the request and responds
// with the given status code and JSON body.
func jsonHandler(rec *requestRecorder, status int, respBody string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(respBody))
	}
}

// newTestRootCmd creates a fresh root command pointed at the given httptest server.
// It isolates HOME so no real config or cookies are touched.
func newTestRootCmd(t *testing.T, srv *httptest.Server, args ...string) *cobra.Command {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	rootCmd := newRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--host", srv.URL}, args...))
	return rootCmd
}

func TestRoot_RejectsBadOutputFormat(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv, "--output", "xml", "org", "list")
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestRoot_RejectsBadHost(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	rootCmd := newRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--host", "not-a-url", "org", "list"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid host")
}

func TestRoot_HostAllowsPathPrefix(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true,"data":[]}`))
	defer srv.Close()

	rootCmd := newTestRootCmd(t, srv)
	rootCmd.SetArgs([]string{"--host", srv.URL + "/api", "org", "list"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/api/organizations", rec.last().Path)
}

func TestRoot_HostEnvPrecedence(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true,"data":[]}`))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHUKKETSU_HOST", srv.URL)
	rootCmd := newRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"org", "list"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/organizations", rec.last().Path)
}

func TestRoot_ProfileHostUsedWhenFlagAndEnvUnset(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true,"data":[]}`))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	require.NoError(t, SaveUserConfig(&UserConfig{
		CurrentProfile: "dev",
		Profiles:       map[string]Profile{"dev": {Host: srv.URL}},
	}))

	rootCmd := newRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"org", "list"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "/organizations", rec.last().Path)
}

func TestCLI_ErrorPropagation(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"backend message surfaces", 403, `{"success":false,"message":"forbidden"}`, "forbidden"},
		{"status synthesized when body has none", 500, `{}`, "500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &requestRecorder{}
			srv := httptest.NewServer(jsonHandler(rec, tc.status, tc.body))
			defer srv.Close()

			rootCmd := newTestRootCmd(t, srv, "org", "list")
			err := rootCmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRoot_QuietSuppressesOutput(t *testing.T) {
	rec := &requestRecorder{}
	srv := httptest.NewServer(jsonHandler(rec, 200, `{"success":true,"data":[{"id":1}]}`))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	rootCmd := newRootCmd()
	var buf strings.Builder
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--host", srv.URL, "--quiet", "org", "list"})

	require.NoError(t, rootCmd.Execute())
	assert.Empty(t, buf.String())
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.Error(t, validateOutputFormat("yaml"))
}

func TestValidateHostURL(t *testing.T) {
	assert.NoError(t, validateHostURL("http://localhost:3000"))
	assert.NoError(t, validateHostURL("http://localhost:3000/api"))
	assert.NoError(t, validateHostURL("https://attend.example.com/api"))
	assert.Error(t, validateHostURL(""))
	assert.Error(t, validateHostURL("ftp://example.com"))
	assert.Error(t, validateHostURL("http://example.com/api?x=1"))
	assert.Error(t, validateHostURL("http://example.com/api#frag"))
}
