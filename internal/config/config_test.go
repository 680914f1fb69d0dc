package config

import (
	"testing"
	"time"
)

func TestGetenv(t *testing.T) {
	t.Setenv("SITECUE_TEST_STRING", "hello")

	if got := getenv("SITECUE_TEST_STRING", "def"); got != "hello" {
		t.Errorf("getenv set: got %q, want %q", got, "hello")
	}
	if got := getenv("SITECUE_TEST_MISSING", "def"); got != "def" {
		t.Errorf("getenv missing: got %q, want %q", got, "def")
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("SITECUE_TEST_INT", "42")
	t.Setenv("SITECUE_TEST_INT_BAD", "not-a-number")

	if got := getenvInt("SITECUE_TEST_INT", 7); got != 42 {
		t.Errorf("getenvInt set: got %d, want 42", got)
	}
	if got := getenvInt("SITECUE_TEST_INT_BAD", 7); got != 7 {
		t.Errorf("getenvInt invalid: got %d, want fallback 7", got)
	}
	if got := getenvInt("SITECUE_TEST_INT_MISSING", 7); got != 7 {
		t.Errorf("getenvInt missing: got %d, want fallback 7", got)
	}
}

func TestMustBool(t *testing.T) {
	t.Setenv("SITECUE_TEST_BOOL_TRUE", "true")
	t.Setenv("SITECUE_TEST_BOOL_FALSE", "false")
	t.Setenv("SITECUE_TEST_BOOL_BAD", "maybe")

	if !mustBool("SITECUE_TEST_BOOL_TRUE", false) {
		t.Error("mustBool true: got false")
	}
	if mustBool("SITECUE_TEST_BOOL_FALSE", true) {
		t.Error("mustBool false: got true")
	}
	if !mustBool("SITECUE_TEST_BOOL_BAD", true) {
		t.Error("mustBool invalid: want fallback true")
	}
}

func TestMustDuration(t *testing.T) {
	t.Setenv("SITECUE_TEST_DUR", "90s")
	t.Setenv("SITECUE_TEST_DUR_BAD", "soon")

	if got := mustDuration("SITECUE_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Errorf("mustDuration set: got %v, want 90s", got)
	}
	if got := mustDuration("SITECUE_TEST_DUR_BAD", time.Minute); got != time.Minute {
		t.Errorf("mustDuration invalid: got %v, want fallback 1m", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "example.com", []string{"example.com"}},
		{"spaces", " a.com , b.com ", []string{"a.com", "b.com"}},
		{"quoted", `"a.com",'b.com'`, []string{"a.com", "b.com"}},
		{"blank entries", "a.com,,b.com,", []string{"a.com", "b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SITECUE_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("SITECUE_REDIS_ADDR", "localhost:6379")
	t.Setenv("SITECUE_REDIS_PASSWORD_REQUIRED", "false")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort default: got %q", cfg.ListenPort)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL default: got %v", cfg.AccessTokenTTL)
	}
	if cfg.TokenRefreshInterval != 60*time.Second {
		t.Errorf("TokenRefreshInterval default: got %v", cfg.TokenRefreshInterval)
	}
	if cfg.TokenRefreshWindow != 5*time.Minute {
		t.Errorf("TokenRefreshWindow default: got %v", cfg.TokenRefreshWindow)
	}
	if cfg.BadgeCacheTTL != 60*time.Second {
		t.Errorf("BadgeCacheTTL default: got %v", cfg.BadgeCacheTTL)
	}
	if cfg.LinkCheckTimeout != 500*time.Millisecond {
		t.Errorf("LinkCheckTimeout default: got %v", cfg.LinkCheckTimeout)
	}
	if cfg.AuthRateBurst != 10 || cfg.AuthRatePerMin != 30 {
		t.Errorf("auth rate defaults: got burst=%d per_min=%d", cfg.AuthRateBurst, cfg.AuthRatePerMin)
	}
}

func TestLoadPanicsOnShortSecret(t *testing.T) {
	t.Setenv("SITECUE_JWT_SECRET", "too-short")
	t.Setenv("SITECUE_REDIS_ADDR", "localhost:6379")
	t.Setenv("SITECUE_REDIS_PASSWORD_REQUIRED", "false")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for short JWT secret")
		}
	}()
	Load()
}
