// Package api is the HTTP client for the attendance platform backend.
//
// Every call resolves to the platform's uniform {success, data, message}
// envelope (Result) or fails with a normalized *Error. Callers never see a
// raw transport error: network failures, non-2xx statuses, and malformed
// binary error bodies are all folded into the same shape before they leave
// this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	// defaultTimeout applies to all JSON calls. A single attempt, no retries.
	defaultTimeout = 10 * time.Second

	// defaultUploadTimeout applies to multipart calls (attachments, Excel
	// imports), which routinely outlive the JSON timeout.
	defaultUploadTimeout = 60 * time.Second
)

// Client issues requests against the attendance backend. The session cookie
// set by the backend on login is carried automatically: both underlying HTTP
// clients share one cookie jar.
type Client struct {
	BaseURL string

	// HTTPClient serves JSON calls; UploadClient serves multipart calls
	// with a longer timeout. They must share a cookie jar.
	HTTPClient   *http.Client
	UploadClient *http.Client

	Logger *slog.Logger
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithLogger replaces the error sink. Every normalized error is logged here
// before it is returned, including expected 401s on session checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.Logger = l }
}

// WithTimeout overrides the JSON call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithUploadTimeout overrides the multipart call timeout.
func WithUploadTimeout(d time.Duration) Option {
	return func(c *Client) { c.UploadClient.Timeout = d }
}

// WithCookieJar installs a custom cookie jar on both underlying clients.
// The CLI uses this to persist the session cookie across invocations.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.HTTPClient.Jar = jar
		c.UploadClient.Jar = jar
	}
}

// NewClient creates a client bound to baseURL. A trailing slash on baseURL
// is tolerated and stripped.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: base URL cannot be empty")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: create cookie jar: %w", err)
	}

	c := &Client{
		BaseURL:      baseURL,
		HTTPClient:   &http.Client{Timeout: defaultTimeout, Jar: jar},
		UploadClient: &http.Client{Timeout: defaultUploadTimeout, Jar: jar},
		Logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// url joins the base URL, path, and query string.
func (c *Client) url(path string, query url.Values) string {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do issues one JSON request and normalizes the outcome. Exactly one attempt
// is made; retry is always caller-initiated.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Result, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, c.fail(requestError(err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, c.fail(requestError(err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.roundTrip(c.HTTPClient, req)
}

// Upload names a file part for a multipart request.
type Upload struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// doMultipart issues one multipart/form-data request through the upload
// client. fields become plain form fields; file, when non-nil, becomes the
// file part.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, file *Upload) (*Result, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, c.fail(requestError(err))
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return nil, c.fail(requestError(err))
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, c.fail(requestError(err))
		}
	}
	if err := w.Close(); err != nil {
		return nil, c.fail(requestError(err))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, nil), &buf)
	if err != nil {
		return nil, c.fail(requestError(err))
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.roundTrip(c.UploadClient, req)
}

// doBinary issues one request expecting a binary body (CSV export, QR image).
// A non-2xx response arrives as a blob that must be decoded before the error
// is returned; see decodeBlobError.
func (c *Client) doBinary(ctx context.Context, method, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), nil)
	if err != nil {
		return nil, c.fail(requestError(err))
	}
	req.Header.Set("Accept", "application/octet-stream")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, c.fail(transportError())
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(transportError())
	}
	if resp.StatusCode >= 400 {
		return nil, c.fail(decodeBlobError(resp.StatusCode, http.StatusText(resp.StatusCode), data))
	}
	return data, nil
}

// roundTrip sends the request on the given client and applies the response
// and error normalizers.
func (c *Client) roundTrip(hc *http.Client, req *http.Request) (*Result, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, c.fail(transportError())
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(transportError())
	}
	if resp.StatusCode >= 400 {
		return nil, c.fail(responseError(resp.StatusCode, http.StatusText(resp.StatusCode), data))
	}
	return normalizeResponse(resp.StatusCode, data), nil
}

// fail logs a normalized error before handing it back.
func (c *Client) fail(e *Error) *Error {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if e.HasStatus {
		logger.Error("api request failed", "status", e.Status, "message", e.Message)
	} else {
		logger.Error("api request failed", "message", e.Message)
	}
	return e
}
