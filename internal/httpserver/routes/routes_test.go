package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sitecue/sitecue/internal/auth"
	"github.com/sitecue/sitecue/internal/badge"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/logger"
)

func testRouter(t *testing.T) (chi.Router, string) {
	t.Helper()

	d := deps.Deps{
		Logger:       logger.New("error", true),
		TimeNow:      time.Now,
		BadgeTracker: badge.NewTracker(),
		Auth:         auth.NewService("0123456789abcdef0123456789abcdef", 15*time.Minute),
	}

	r := chi.NewRouter()
	RegisterAll(r, d)

	token, _, err := d.Auth.GenerateAccessToken("user-1")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return r, token
}

// Malformed JSON draws a 400 from the handler, so anything other than
// chi's 405 proves the method is wired for the path.
func TestRegisteredWriteRoutes(t *testing.T) {
	r, token := testRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPut, "/links/abc", http.StatusBadRequest},
		{http.MethodPost, "/links/check", http.StatusBadRequest},
		{http.MethodGet, "/links/check", http.StatusMethodNotAllowed},
		{http.MethodPut, "/notes", http.StatusBadRequest},
		{http.MethodPut, "/settings/domain", http.StatusBadRequest},
		{http.MethodPost, "/settings/domain", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{"))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tt.want {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestRoutesRequireAuth(t *testing.T) {
	r, _ := testRouter(t)

	for _, path := range []string{"/notes", "/settings/domain"} {
		req := httptest.NewRequest(http.MethodPut, path, strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("PUT %s without token: status = %d, want 401", path, rec.Code)
		}
	}
}
