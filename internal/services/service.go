package services

import (
	"context"
	"errors"
	"io"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
)

var (
	// ErrInvalidInput is returned when a required entrant field is missing or empty
	ErrInvalidInput = errors.New("missing data")
	// ErrInvalidDate is returned when a date is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	// ErrInvalidCredentials is returned by AuthService.Login on any failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPrizeTable is returned when a prize table cannot be built
	ErrInvalidPrizeTable = errors.New("invalid prize table")
)

// SpinService defines the interface for spin-the-wheel operations
type SpinService interface {
	// AttemptSpin draws a prize for the entrant unless their email already spun on today (YYYY-MM-DD, UTC)
	AttemptSpin(ctx context.Context, entrant models.Entrant, today string) (*models.SpinResult, error)

	// Spin is AttemptSpin for the current UTC day
	Spin(ctx context.Context, entrant models.Entrant) (*models.SpinResult, error)

	// Today returns the current UTC day as seen by the service clock
	Today() string
}

// ReportService defines the interface for read-only admin views over spins
type ReportService interface {
	ListSpins(ctx context.Context, date string) ([]*models.SpinRecord, error)
	DailyStats(ctx context.Context, date string) (*models.DailyStats, error)
	ExportCSV(ctx context.Context, date string, w io.Writer) error
	Prizes() []models.Prize
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	// Login returns a signed token for valid admin credentials
	Login(ctx context.Context, email, password string) (string, error)
	// TokenTTLSeconds is the lifetime of issued tokens
	TokenTTLSeconds() int
}
