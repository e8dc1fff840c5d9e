package oauth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestState(t *testing.T) {
	secret := "state-secret"

	t.Run("round trip verifies", func(t *testing.T) {
		state, err := NewState(secret)
		if err != nil {
			t.Fatalf("NewState: %v", err)
		}
		if err := VerifyState(secret, state); err != nil {
			t.Fatalf("VerifyState: %v", err)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		state, err := NewState(secret)
		if err != nil {
			t.Fatalf("NewState: %v", err)
		}
		if err := VerifyState("other-secret", state); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		if err := VerifyState(secret, "not-a-token"); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("expired state is rejected", func(t *testing.T) {
		claims := &stateClaims{
			Purpose: "oauth_state",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				Issuer:    "moneybook",
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if err := VerifyState(secret, token); err == nil {
			t.Fatal("expected verification failure")
		}
	})

	t.Run("token signed for another purpose is rejected", func(t *testing.T) {
		claims := &stateClaims{
			Purpose: "password_reset",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
				Issuer:    "moneybook",
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if err := VerifyState(secret, token); err == nil {
			t.Fatal("expected verification failure")
		}
	})
}
