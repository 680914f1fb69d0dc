package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sitecue/sitecue/internal/auth"
	"github.com/sitecue/sitecue/internal/logger"
)

func authedHandler(t *testing.T) (http.Handler, *auth.Service, *string) {
	t.Helper()
	svc := auth.NewService("0123456789abcdef0123456789abcdef", 15*time.Minute)
	log := logger.New("error", true)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	return Auth(svc, log)(next), svc, &gotUserID
}

func TestAuthAcceptsValidToken(t *testing.T) {
	h, svc, gotUserID := authedHandler(t)

	token, _, err := svc.GenerateAccessToken("user-42")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/cues?url=https://example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *gotUserID != "user-42" {
		t.Errorf("user id in context = %q, want user-42", *gotUserID)
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	h, _, _ := authedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/cues", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	h, svc, _ := authedHandler(t)
	token, _, _ := svc.GenerateAccessToken("user-42")

	for _, header := range []string{"Basic abc", token, "Bearer ", "bearer " + token} {
		req := httptest.NewRequest(http.MethodGet, "/cues", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
	}
}

func TestAuthRejectsForgedToken(t *testing.T) {
	h, _, _ := authedHandler(t)
	other := auth.NewService("ffffffffffffffffffffffffffffffff", 15*time.Minute)
	token, _, _ := other.GenerateAccessToken("user-42")

	req := httptest.NewRequest(http.MethodGet, "/cues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
