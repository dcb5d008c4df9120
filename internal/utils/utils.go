package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DayLayout is the calendar-day format used for spin dates
const DayLayout = "2006-01-02"

// ErrEmptySecret is returned when a JWT would be signed or checked with an empty key
var ErrEmptySecret = errors.New("jwt secret is empty")

// DayKey returns the UTC calendar day of t as YYYY-MM-DD
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// IsValidDay reports whether s is a YYYY-MM-DD date
func IsValidDay(s string) bool {
	_, err := time.Parse(DayLayout, s)
	return err == nil
}

// GenerateJWT signs an HS256 token for subject valid for ttl
func GenerateJWT(subject string, secret string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT parses tokenString and returns its claims if signature and expiry are valid
func ValidateJWT(tokenString string, secret string) (*jwt.RegisteredClaims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
