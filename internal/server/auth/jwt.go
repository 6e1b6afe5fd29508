// Package auth verifies caller tokens and decides whether a caller may use
// the API.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/recipex/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims and the caller email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	Email string
}

func GenerateToken(email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: strings.ToLower(email),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseCaller verifies tokenString with secretKey and returns its caller.
// Expired tokens yield common.ErrTokenExpired, everything else that fails
// verification yields common.ErrInvalidToken.
func ParseCaller(tokenString string, secretKey []byte) (Caller, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Caller{}, common.ErrTokenExpired
		}
		return Caller{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Email == "" {
		return Caller{}, common.ErrInvalidToken
	}

	return Caller{Email: claims.Email}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer ..." value.
// A bare token without the scheme is returned as is.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
