package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type accessClaims struct {
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT whose subject is the user's email.
func GenerateToken(secret, email string, ttl time.Duration) (string, error) {
	claims := &accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token signature and expiry and returns the
// embedded email. No store lookup happens here; the token is
// self-contained.
func ParseToken(secret, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*accessClaims); ok && token.Valid && claims.Subject != "" {
		return claims.Subject, nil
	}

	return "", jwt.ErrTokenInvalidClaims
}
