package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// storedCookie is the on-disk shape of one cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitzero"`
}

// fileJar is a write-through cookie jar backed by a JSON file, so the
// HTTP-only session cookie the backend sets on login survives across CLI
// invocations. Cookies are stored per host; the platform only ever sets the
// session cookie, so full RFC 6265 domain matching is not needed here.
type fileJar struct {
	mu      sync.Mutex
	path    string
	entries map[string][]storedCookie
}

// loadCookieJar reads the cookie file, tolerating a missing one.
func loadCookieJar(path string) (*fileJar, error) {
	j := &fileJar{path: path, entries: map[string][]storedCookie{}}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return j, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &j.entries); err != nil {
		return nil, fmt.Errorf("parse cookie file: %w", err)
	}
	return j, nil
}

// SetCookies merges cookies for the URL's host and persists immediately.
func (j *fileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	existing := j.entries[u.Host]
	for _, c := range cookies {
		existing = removeCookie(existing, c.Name)
		if c.MaxAge < 0 {
			continue // deletion
		}
		sc := storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Expires: c.Expires}
		if c.MaxAge > 0 {
			sc.Expires = time.Now().Add(time.Duration(c.MaxAge) * time.Second)
		}
		existing = append(existing, sc)
	}
	j.entries[u.Host] = existing

	j.save()
}

// Cookies returns the unexpired cookies stored for the URL's host.
func (j *fileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	var out []*http.Cookie
	now := time.Now()
	for _, sc := range j.entries[u.Host] {
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			continue
		}
		out = append(out, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	return out
}

func (j *fileJar) save() {
	data, err := json.Marshal(j.entries)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(j.path, data, 0o600)
}

func removeCookie(cookies []storedCookie, name string) []storedCookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}
