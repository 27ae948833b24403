package user

import (
	"testing"
	"time"

	"github.com/prashast-singh/to-do/internal/common/clock"
	"github.com/prashast-singh/to-do/internal/common/constants"
	"github.com/prashast-singh/to-do/internal/common/jwtverify"
	userdomain "github.com/prashast-singh/to-do/internal/user/domain"
	"github.com/prashast-singh/to-do/internal/user/service"
)

func newTestIssuer(secret string, at time.Time) *service.TokenIssuer {
	return service.NewTokenIssuer(secret, &mockIDGenerator{}, constants.TestTokenTTL, clock.NewMockClock(at))
}

func testUser() userdomain.User {
	return userdomain.User{
		UUID:  "11111111-1111-1111-1111-111111111111",
		Email: "alice@example.com",
	}
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := newTestIssuer(constants.TestJWTSecret, time.Now())

	token, err := issuer.IssueToken(testUser())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "11111111-1111-1111-1111-111111111111" {
		t.Errorf("expected subject to round-trip, got %s", claims.Subject)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email to round-trip, got %s", claims.Email)
	}
}

func TestTokenIssuer_ExpiredTokenRejected(t *testing.T) {
	// Issued far enough in the past that the TTL has long elapsed.
	issuer := newTestIssuer(constants.TestJWTSecret, time.Now().Add(-2*time.Hour))

	token, err := issuer.IssueToken(testUser())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := jwtverify.ParseToken(token, []byte(constants.TestJWTSecret)); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenIssuer_WrongSecretRejected(t *testing.T) {
	issuer := newTestIssuer(constants.TestJWTSecret, time.Now())

	token, err := issuer.IssueToken(testUser())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if _, err := jwtverify.ParseToken(token, []byte("another-secret-0123456789abcdefghij")); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestTokenIssuer_TamperedTokenRejected(t *testing.T) {
	issuer := newTestIssuer(constants.TestJWTSecret, time.Now())

	token, err := issuer.IssueToken(testUser())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := jwtverify.ParseToken(tampered, []byte(constants.TestJWTSecret)); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestTokenIssuer_GarbageTokenRejected(t *testing.T) {
	if _, err := jwtverify.ParseToken("not-a-jwt", []byte(constants.TestJWTSecret)); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
