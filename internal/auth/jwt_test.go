package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(42, "alice@example.com", "alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", claims.Email)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username alice, got %q", claims.Username)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	svc := NewTokenService("test-secret")

	if _, err := svc.Verify("not-a-token"); err == nil {
		t.Fatal("expected an error for a malformed token")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	token, err := issuer.Issue(1, "a@example.com", "a")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected an error for a token signed with another secret")
	}
}

func TestIssuedTokenHasNoExpiration(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(1, "a@example.com", "a")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, exists := claims["exp"]; exists {
		t.Fatal("expected no exp claim; tokens stay valid until the secret changes")
	}
}
