package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SpinRepository implements repositories.SpinRepository on a SQLite file through gorm
type SpinRepository struct {
	db *gorm.DB
}

var _ repositories.SpinRepository = (*SpinRepository)(nil)

// Open opens (or creates) the SQLite database at path
func Open(path string) (*SpinRepository, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return NewSpinRepository(db), nil
}

// NewSpinRepository wraps an existing gorm handle
func NewSpinRepository(db *gorm.DB) *SpinRepository {
	return &SpinRepository{db: db}
}

// EnsureSchema migrates the spins table and its (email, date) unique index
func (r *SpinRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.SpinRecord{}); err != nil {
		return fmt.Errorf("failed to migrate spins table: %w", err)
	}
	return nil
}

// FindByEmailAndDate finds the spin for an email on a given day
func (r *SpinRepository) FindByEmailAndDate(ctx context.Context, email, date string) (*models.SpinRecord, error) {
	var spin models.SpinRecord
	err := r.db.WithContext(ctx).
		Where("email = ? AND date = ?", email, date).
		Take(&spin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repositories.ErrSpinNotFound
	}
	if err != nil {
		return nil, err
	}
	return &spin, nil
}

// Create inserts a spin. The unique index turns a second claim into ErrSpinAlreadyClaimed.
func (r *SpinRepository) Create(ctx context.Context, spin *models.SpinRecord) error {
	if spin.CreatedAt.IsZero() {
		spin.CreatedAt = time.Now().UTC()
	}
	err := r.db.WithContext(ctx).Create(spin).Error
	if err != nil {
		if isUniqueViolation(err) {
			return repositories.ErrSpinAlreadyClaimed
		}
		return err
	}
	return nil
}

// FindByDate lists a day's spins by id
func (r *SpinRepository) FindByDate(ctx context.Context, date string) ([]*models.SpinRecord, error) {
	spins := []*models.SpinRecord{}
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("id").
		Find(&spins).Error
	if err != nil {
		return nil, err
	}
	return spins, nil
}

// Close closes the underlying connection pool
func (r *SpinRepository) Close(_ context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
