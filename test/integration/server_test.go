package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"

	"shukketsu/pkg/api"
)

const (
	testSecret   = "integration-test-secret"
	sessionName  = "session"
	testPassword = "correct-horse"
)

type sessionClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func mintSession(userID int64, role string) (string, error) {
	now := time.Now().UTC()
	claims := sessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
}

func parseSession(tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// backend is an in-memory stand-in for the attendance API, close enough for
// end-to-end client testing: cookie sessions, the standard response envelope,
// and a couple of resource endpoints backed by a slice.
type backend struct {
	mu      sync.Mutex
	users   map[string]backendUser
	records []map[string]any
	nextID  int64
}

type backendUser struct {
	ID       int64
	Name     string
	Email    string
	Role     string
	Password string
}

func newBackend() *backend {
	return &backend{
		users: map[string]backendUser{
			"hana@example.com": {ID: 7, Name: "Hana Sato", Email: "hana@example.com", Role: "teacher", Password: testPassword},
		},
		nextID: 1,
	}
}

func (b *backend) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/auth/login", b.handleLogin)
	r.Post("/auth/logout", b.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(b.requireSession)
		r.Get("/auth/me", b.handleMe)
		r.Post("/attendance", b.handleRecord)
		r.Get("/attendance", b.handleList)
		r.Get("/attendance/export", b.handleExport)
	})

	return r
}

func (b *backend) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(sessionName)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if _, err := parseSession(c.Value); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid session")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	b.mu.Lock()
	u, ok := b.users[in.Email]
	b.mu.Unlock()
	if !ok || u.Password != in.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := mintSession(u.ID, u.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign session")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	writeData(w, map[string]any{"user": userJSON(u)})
}

func (b *backend) handleLogout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: sessionName, Value: "", Path: "/", MaxAge: -1})
	writeData(w, nil)
}

func (b *backend) handleMe(w http.ResponseWriter, r *http.Request) {
	c, _ := r.Cookie(sessionName)
	claims, _ := parseSession(c.Value)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.ID == claims.UserID {
			writeData(w, userJSON(u))
			return
		}
	}
	writeError(w, http.StatusUnauthorized, "unknown user")
}

func (b *backend) handleRecord(w http.ResponseWriter, r *http.Request) {
	var in map[string]any
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	// recordId deduplicates re-submissions.
	if rid, _ := in["recordId"].(string); rid != "" {
		for _, existing := range b.records {
			if existing["recordId"] == rid {
				writeData(w, existing)
				return
			}
		}
	}
	in["id"] = b.nextID
	b.nextID++
	b.records = append(b.records, in)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": in})
}

func (b *backend) handleList(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []map[string]any{}
	userFilter := r.URL.Query().Get("userId")
	for _, rec := range b.records {
		if userFilter != "" {
			id, _ := rec["userId"].(float64)
			if strconv.FormatInt(int64(id), 10) != userFilter {
				continue
			}
		}
		out = append(out, rec)
	}
	writeData(w, out)
}

func (b *backend) handleExport(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.records) == 0 {
		writeError(w, http.StatusNotFound, "no records to export")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	_, _ = w.Write([]byte("id,userId,date,type\n"))
	for _, rec := range b.records {
		id, _ := rec["id"].(int64)
		userID, _ := rec["userId"].(float64)
		date, _ := rec["date"].(string)
		kind, _ := rec["type"].(string)
		_, _ = w.Write([]byte(strconv.FormatInt(id, 10) + "," +
			strconv.FormatInt(int64(userID), 10) + "," + date + "," + kind + "\n"))
	}
}

func userJSON(u backendUser) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

// startBackend brings up the fake API and a client pointed at it.
func startBackend(t *testing.T) (*backend, *api.Client) {
	t.Helper()
	b := newBackend()
	srv := httptest.NewServer(b.router())
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return b, client
}
