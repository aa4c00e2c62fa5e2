package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken("test-secret", 42, "ADMIN", "admin@example.com", 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatalf("expected token")
	}
	if tok.Exp.Before(time.Now().UTC().Add(6 * 24 * time.Hour)) {
		t.Fatalf("expected roughly 7 day expiry, got %v", tok.Exp)
	}

	id, role, ok := VerifySessionToken("test-secret", tok.Token)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if id != 42 {
		t.Fatalf("user id mismatch: %d", id)
	}
	if role != "ADMIN" {
		t.Fatalf("role mismatch: %s", role)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret-a", 1, "USER", "u@example.com", 7)
	if err != nil {
		t.Fatalf("NewSessionToken: %v", err)
	}
	if _, _, ok := VerifySessionToken("secret-b", tok.Token); ok {
		t.Fatalf("expected verification failure with wrong secret")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	now := time.Now().UTC()
	claims := SessionClaims{
		Role: "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			IssuedAt:  jwt.NewNumericDate(now.Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, ok := VerifySessionToken("test-secret", raw); ok {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestSessionTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, _, ok := VerifySessionToken("test-secret", raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestSessionTokenNoSecret(t *testing.T) {
	if _, err := NewSessionToken("", 1, "USER", "u@example.com", 7); err != ErrNoSecret {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestSessionTokenWrongAlgorithm(t *testing.T) {
	// Tokens signed with "none" must never verify even if claims parse.
	claims := jwt.MapClaims{"sub": "9", "role": "ADMIN", "exp": time.Now().Add(time.Hour).Unix()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, _, ok := VerifySessionToken("test-secret", raw); ok {
		t.Fatalf("expected none-signed token to be rejected")
	}
}
