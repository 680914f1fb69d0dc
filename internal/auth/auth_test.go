package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService(testSecret, 15*time.Minute)

	token, expiresAt, err := svc.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if until := time.Until(expiresAt); until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("unexpected expiry: %v from now", until)
	}

	userID, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("got userID %q, want %q", userID, "user-123")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewService(testSecret, -time.Minute)

	token, _, err := svc.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := NewService(testSecret, 15*time.Minute)
	other := NewService("ffffffffffffffffffffffffffffffff", 15*time.Minute)

	token, _, err := svc.GenerateAccessToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for token signed with different secret")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService(testSecret, 15*time.Minute)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateAccessToken(tok); err == nil {
			t.Errorf("expected error for token %q", tok)
		}
	}
}

func TestValidateRejectsAlgNone(t *testing.T) {
	svc := NewService(testSecret, 15*time.Minute)

	// header {"alg":"none","typ":"JWT"} + claims {"sub":"user-123"} + empty sig
	token := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJzdWIiOiJ1c2VyLTEyMyJ9."
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for alg=none token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("unexpected hash format: %q", hash)
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Error("CheckPassword rejected correct password")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("CheckPassword accepted wrong password")
	}
}

func TestHashPasswordRejectsShort(t *testing.T) {
	if _, err := HashPassword("short"); err == nil {
		t.Fatal("expected error for short password")
	}
}
