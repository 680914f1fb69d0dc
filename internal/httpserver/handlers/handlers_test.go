package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sitecue/sitecue/internal/badge"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
	"github.com/sitecue/sitecue/internal/logger"
)

func testDeps() deps.Deps {
	return deps.Deps{
		Logger:       logger.New("error", true),
		StartTime:    time.Now().Add(-time.Minute),
		Version:      "test",
		TimeNow:      time.Now,
		BadgeTracker: badge.NewTracker(),
	}
}

func TestHealthz(t *testing.T) {
	d := testDeps()
	rec := httptest.NewRecorder()
	Healthz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp healthzResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Version != "test" {
		t.Errorf("unexpected body: %+v", resp)
	}
	if resp.UptimeSeconds <= 0 {
		t.Errorf("uptime should be positive, got %f", resp.UptimeSeconds)
	}
}

func TestReadyzWithoutRedis(t *testing.T) {
	d := testDeps()
	rec := httptest.NewRecorder()
	Readyz(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestSwitchLink(t *testing.T) {
	d := testDeps()

	req := httptest.NewRequest(http.MethodGet,
		"/links/switch?url=https://app.example.com/items/42?tab=all%23top&target=https://staging.example.com", nil)
	rec := httptest.NewRecorder()
	SwitchLink(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp switchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := "https://staging.example.com/items/42?tab=all#top"
	if resp.URL != want {
		t.Errorf("url = %q, want %q", resp.URL, want)
	}
}

func TestSwitchLinkValidation(t *testing.T) {
	d := testDeps()

	tests := []string{
		"/links/switch",
		"/links/switch?url=https://a.com/x",
		"/links/switch?url=::bad::&target=https://b.com",
	}
	for _, target := range tests {
		rec := httptest.NewRecorder()
		SwitchLink(d).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestGetBadgeValidation(t *testing.T) {
	d := testDeps()

	for _, target := range []string{"/badge", "/badge?tab=t1", "/badge?url=https://a.com"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req = req.WithContext(mw.WithUserID(req.Context(), "user-1"))
		GetBadge(d).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestGetBadgeNonHTTP(t *testing.T) {
	d := testDeps()

	req := httptest.NewRequest(http.MethodGet, "/badge?tab=t1&url=chrome://settings", nil)
	req = req.WithContext(mw.WithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	GetBadge(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp badgeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Text != "" {
		t.Errorf("non-http page should render empty badge text, got %q", resp.Text)
	}

	state, count := d.BadgeTracker.Get("t1")
	if state != badge.StateDisplayed || count != 0 {
		t.Errorf("tracker state = %v count = %d, want displayed/0", state, count)
	}
}

func TestForgetBadge(t *testing.T) {
	d := testDeps()
	seq := d.BadgeTracker.Begin("t1")
	d.BadgeTracker.Complete("t1", seq, 3)

	req := httptest.NewRequest(http.MethodDelete, "/badge?tab=t1", nil)
	rec := httptest.NewRecorder()
	ForgetBadge(d).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if d.BadgeTracker.Count() != 0 {
		t.Error("tracker should have forgotten the tab")
	}
}

func TestCheckLinkValidation(t *testing.T) {
	d := testDeps()

	for _, body := range []string{"{", `{}`, `{"host":"  "}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/links/check", strings.NewReader(body))
		CheckLink(d).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestUpdateLinkValidation(t *testing.T) {
	d := testDeps()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"invalid type", `{"type":"banana"}`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/links/abc", strings.NewReader(tt.body))
		req = req.WithContext(mw.WithUserID(req.Context(), "user-1"))
		UpdateLink(d).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}

func TestLegacyUpdateNoteValidation(t *testing.T) {
	d := testDeps()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", "{"},
		{"missing id", `{"content":"hello"}`},
		{"missing content", `{"id":"n1"}`},
		{"blank content", `{"id":"n1","content":"  "}`},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/notes", strings.NewReader(tt.body))
		req = req.WithContext(mw.WithUserID(req.Context(), "user-1"))
		LegacyUpdateNote(d).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}

func TestLegacyCreateNoteValidation(t *testing.T) {
	d := testDeps()

	// The old field name is url_pattern; a plain url key is rejected by
	// the strict decoder.
	for _, body := range []string{`{"url":"https://a.com","content":"x"}`, `{"url_pattern":"","content":"x"}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
		req = req.WithContext(mw.WithUserID(req.Context(), "user-1"))
		LegacyCreateNote(d).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestSettingDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"app.example.com", "app.example.com"},
		{" app.example.com ", "app.example.com"},
		{"https://app.example.com/some/path?x=1", "app.example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := settingDomain(tt.raw); got != tt.want {
			t.Errorf("settingDomain(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestReloadNotConfigured(t *testing.T) {
	d := testDeps()
	rec := httptest.NewRecorder()
	Reload(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestReloadTrigger(t *testing.T) {
	d := testDeps()
	d.ReloadTrigger = make(chan struct{}, 1)

	rec := httptest.NewRecorder()
	Reload(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	// Channel full now, second trigger is refused
	rec = httptest.NewRecorder()
	Reload(d).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}
