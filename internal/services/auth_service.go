package services

import (
	"context"
	"strings"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/config"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthServiceImpl authenticates the single configured admin
type AuthServiceImpl struct {
	admin config.AdminConfig
	jwt   config.JWTConfig
	now   func() time.Time
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(admin config.AdminConfig, jwtCfg config.JWTConfig) *AuthServiceImpl {
	return &AuthServiceImpl{
		admin: admin,
		jwt:   jwtCfg,
		now:   time.Now,
	}
}

// TokenTTLSeconds returns the configured token lifetime
func (s *AuthServiceImpl) TokenTTLSeconds() int {
	return s.jwt.ExpiresIn
}

// Login verifies the admin credentials and returns a signed JWT
func (s *AuthServiceImpl) Login(_ context.Context, email, password string) (string, error) {
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		logging.Log.Warn("Admin login attempted but no admin account is configured")
		return "", ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.admin.Email) {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password)); err != nil {
		logging.Log.WithField("email", email).Warn("Admin login failed")
		return "", ErrInvalidCredentials
	}

	ttl := time.Duration(s.jwt.ExpiresIn) * time.Second
	token, err := utils.GenerateJWT(s.admin.Email, s.jwt.Secret, ttl, s.now())
	if err != nil {
		return "", err
	}
	logging.Log.WithField("email", s.admin.Email).Info("Admin logged in")
	return token, nil
}
