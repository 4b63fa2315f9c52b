package auth

import (
	"testing"
	"time"

	"github.com/yassineraddaoui/Restaurant-Review/internal/store"
)

func TestJWTRoundtrip(t *testing.T) {
	authenticator := NewJWTAuthenticator("secret", "aud", "iss")
	user := store.User{ID: "u-1", Username: "amira", GivenName: "Amira", FamilyName: "Ben Salah"}

	token, err := authenticator.GenerateToken(user, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	got, err := authenticator.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if got != user {
		t.Errorf("expected %+v, got %+v", user, got)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTAuthenticator("secret", "aud", "iss")
	verifier := NewJWTAuthenticator("other", "aud", "iss")

	token, err := issuer.GenerateToken(store.User{ID: "u-1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestJWTRejectsWrongIssuer(t *testing.T) {
	issuer := NewJWTAuthenticator("secret", "aud", "someone-else")
	verifier := NewJWTAuthenticator("secret", "aud", "iss")

	token, err := issuer.GenerateToken(store.User{ID: "u-1"}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with wrong issuer")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	authenticator := NewJWTAuthenticator("secret", "aud", "iss")

	token, err := authenticator.GenerateToken(store.User{ID: "u-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := authenticator.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for expired token")
	}
}
