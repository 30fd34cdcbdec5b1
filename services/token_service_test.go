package services

import (
	"errors"
	"testing"
	"time"

	"blog-platform-api/models"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := tokens.Issue("user-123", "test@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if tok == "" {
		t.Fatal("Issue returned empty token")
	}

	claims, err := tokens.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "test@example.com" {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, "test@example.com")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService([]byte("super-secret"), time.Hour)

	tok, err := tokens.IssueWithTTL("u1", "u1@example.com", -1*time.Second)
	if err != nil {
		t.Fatalf("IssueWithTTL error: %v", err)
	}

	_, err = tokens.Verify(tok)
	if err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
	var tokenErr *models.TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected *models.TokenError, got %T", err)
	}
	if tokenErr.Kind != models.TokenExpired {
		t.Fatalf("expected kind %q, got %q", models.TokenExpired, tokenErr.Kind)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService([]byte("right-secret"), time.Hour)
	verifier := NewTokenService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("u2", "u2@example.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if err == nil {
		t.Fatal("expected error for wrong key, got nil")
	}
	var tokenErr *models.TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected *models.TokenError, got %T", err)
	}
	// A wrong key is a signature failure, never a structural one.
	if tokenErr.Kind != models.TokenSignatureInvalid {
		t.Fatalf("expected kind %q, got %q", models.TokenSignatureInvalid, tokenErr.Kind)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tokens := NewTokenService([]byte("k"), time.Hour)

	_, err := tokens.Verify("not.a.jwt")
	if err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
	var tokenErr *models.TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected *models.TokenError, got %T", err)
	}
	if tokenErr.Kind != models.TokenMalformed {
		t.Fatalf("expected kind %q, got %q", models.TokenMalformed, tokenErr.Kind)
	}
}
