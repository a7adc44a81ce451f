package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scms-platform/identity-service/internal/domain"
)

func TestJWTSigner_SignAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "identity-service")
	tok, err := s.Sign("USR-2026-0001", "dev@example.com", "Developer", 24*time.Hour)
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := s.Verify(tok)
	if err != nil {
		t.Fatalf("verify err: %v", err)
	}
	if claims.UserID != "USR-2026-0001" || claims.Email != "dev@example.com" || claims.Role != "Developer" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.IssuedAt.IsZero() || claims.ExpiresAt.IsZero() {
		t.Fatalf("expected iat/exp set: %+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != 24*time.Hour {
		t.Fatalf("expected 24h lifetime, got %v", got)
	}
}

func TestJWTSigner_Verify_Expired(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "identity-service")
	tok, err := s.Sign("USR-2026-0001", "dev@example.com", "Developer", -time.Second) // already expired
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	_, verr := s.Verify(tok)
	if verr == nil {
		t.Fatalf("expected error, got nil")
	}
	if !domain.Is(verr, "token_expired") {
		t.Fatalf("expected token_expired, got %v", verr)
	}
}

func TestJWTSigner_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	s1 := NewJWTSigner("secret1", "identity-service")
	s2 := NewJWTSigner("secret2", "identity-service")

	tok, err := s1.Sign("USR-2026-0001", "dev@example.com", "Developer", time.Minute)
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	_, verr := s2.Verify(tok)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}

func TestJWTSigner_Verify_Garbage(t *testing.T) {
	t.Parallel()

	s := NewJWTSigner("secret", "identity-service")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(tok)
		if !domain.Is(err, "token_invalid") {
			t.Fatalf("expected token_invalid for %q, got %v", tok, err)
		}
	}
}

func TestJWTSigner_Verify_RejectsNoneAlgorithm(t *testing.T) {
	t.Parallel()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": "USR-2026-0001",
		"role":    "System Administrator",
	})
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign err: %v", err)
	}

	s := NewJWTSigner("secret", "identity-service")
	_, verr := s.Verify(tok)
	if !domain.Is(verr, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", verr)
	}
}
