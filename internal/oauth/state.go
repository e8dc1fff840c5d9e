package oauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// stateTTL bounds how long a consent-screen round trip may take.
const stateTTL = 10 * time.Minute

// stateClaims is the payload of the signed OAuth state parameter.
type stateClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// NewState issues a short-lived signed state token carried through the
// consent redirect and verified on the callback (anti-CSRF).
func NewState(secret string) (string, error) {
	claims := &stateClaims{
		Purpose: "oauth_state",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "moneybook",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyState checks the signature and expiry of a state token returned by
// the provider callback.
func VerifyState(secret, tokenString string) error {
	claims := &stateClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return fmt.Errorf("invalid state token")
	}
	if claims.Purpose != "oauth_state" {
		return fmt.Errorf("token is not a state token")
	}
	return nil
}
