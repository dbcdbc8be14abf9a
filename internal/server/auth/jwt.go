// Package auth handles session tokens and credential hashing. The core
// never sees credentials; it receives the requester identity resolved
// from a token at the HTTP boundary.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ipeonte/usernotes/internal/common"
)

// Claims carries the authenticated user name alongside the registered
// JWT claims.
type Claims struct {
	jwt.RegisteredClaims
	UserName string
}

// GenerateToken mints an HS256 token identifying userName, valid for
// validityDuration.
func GenerateToken(userName string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserName: userName,
	})

	return token.SignedString(secretKey)
}

// GetUserNameFromToken verifies tokenString and returns the user name it
// identifies.
func GetUserNameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserName, nil
}
