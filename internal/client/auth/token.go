// Package auth inspects the backend's access tokens on the client side.
//
// Tokens are parsed without signature verification: the client never holds
// the signing key and only uses the claims to decide when to refresh or to
// label the session. The server remains the authority on validity.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/batyok32/shipyuusell-sub001/internal/client/models"
)

// ErrInvalidToken is returned for strings that are not JWTs.
var ErrInvalidToken = errors.New("invalid token")

// Claims mirrors the SimpleJWT access-token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID    models.ID `json:"user_id"`
	TokenType string    `json:"token_type"`
}

// Parse decodes the claims of tokenString without verifying the signature.
func Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// ExpiresAt returns the exp claim. ok is false when the token cannot be
// parsed or carries no expiry.
func ExpiresAt(tokenString string) (exp time.Time, ok bool) {
	claims, err := Parse(tokenString)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether the token's expiry is at or before now+leeway.
// Opaque tokens and tokens without exp are never considered expired.
func Expired(tokenString string, now time.Time, leeway time.Duration) bool {
	exp, ok := ExpiresAt(tokenString)
	if !ok {
		return false
	}
	return !exp.After(now.Add(leeway))
}

// UserID returns the user_id claim, or "" when unavailable.
func UserID(tokenString string) models.ID {
	claims, err := Parse(tokenString)
	if err != nil {
		return ""
	}
	return claims.UserID
}
