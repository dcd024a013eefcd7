package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret []byte

// InitJWT sets the secret for service-token auth. An empty secret leaves
// the API open.
func InitJWT(secret string) {
	jwtSecret = []byte(secret)
}

// AuthEnabled reports whether a signing secret is configured
func AuthEnabled() bool {
	return len(jwtSecret) > 0
}

// GenerateServiceToken mints a token for a named caller, valid for ttl
func GenerateServiceToken(subject string, ttl time.Duration) (string, error) {
	if !AuthEnabled() {
		return "", errors.New("auth secret is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseServiceToken validates a token and returns the caller name
func ParseServiceToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", errors.New("subject not found")
	}
	return subject, nil
}
