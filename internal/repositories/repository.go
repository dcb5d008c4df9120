package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
)

var (
	// ErrSpinNotFound is returned when no spin exists for the requested key
	ErrSpinNotFound = errors.New("spin record not found")
	// ErrSpinAlreadyClaimed is returned by Create when (email, date) already has a record
	ErrSpinAlreadyClaimed = errors.New("spin already claimed for this email and date")
)

// SpinRepository defines the interface for spin record storage.
// Implementations must enforce uniqueness of (email, date) in Create.
type SpinRepository interface {
	// EnsureSchema creates the backing table/collection and indexes if absent. It is idempotent.
	EnsureSchema(ctx context.Context) error
	FindByEmailAndDate(ctx context.Context, email, date string) (*models.SpinRecord, error)
	// Create inserts the record, filling in ID where the store assigns one.
	Create(ctx context.Context, spin *models.SpinRecord) error
	FindByDate(ctx context.Context, date string) ([]*models.SpinRecord, error)
	Close(ctx context.Context) error
}
