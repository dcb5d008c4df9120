package memory

import (
	"context"
	"sync"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
)

// SpinRepository is an in-process SpinRepository
type SpinRepository struct {
	mu     sync.Mutex
	spins  []*models.SpinRecord
	index  map[string]*models.SpinRecord
	nextID int64
}

var _ repositories.SpinRepository = (*SpinRepository)(nil)

// NewSpinRepository creates an empty SpinRepository
func NewSpinRepository() *SpinRepository {
	return &SpinRepository{
		index:  make(map[string]*models.SpinRecord),
		nextID: 1,
	}
}

func key(email, date string) string {
	return email + "#" + date
}

// EnsureSchema is a no-op
func (r *SpinRepository) EnsureSchema(_ context.Context) error {
	return nil
}

// FindByEmailAndDate returns a copy of the matching record
func (r *SpinRepository) FindByEmailAndDate(_ context.Context, email, date string) (*models.SpinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spin, ok := r.index[key(email, date)]
	if !ok {
		return nil, repositories.ErrSpinNotFound
	}
	cp := *spin
	return &cp, nil
}

// Create stores a copy of spin and assigns its ID
func (r *SpinRepository) Create(_ context.Context, spin *models.SpinRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(spin.Email, spin.Date)
	if _, exists := r.index[k]; exists {
		return repositories.ErrSpinAlreadyClaimed
	}

	spin.ID = r.nextID
	r.nextID++
	stored := *spin
	r.spins = append(r.spins, &stored)
	r.index[k] = &stored
	return nil
}

// FindByDate returns copies of the day's records in insertion order
func (r *SpinRepository) FindByDate(_ context.Context, date string) ([]*models.SpinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	spins := []*models.SpinRecord{}
	for _, s := range r.spins {
		if s.Date == date {
			cp := *s
			spins = append(spins, &cp)
		}
	}
	return spins, nil
}

// Count returns the number of stored records
func (r *SpinRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.spins)
}

// Close is a no-op
func (r *SpinRepository) Close(_ context.Context) error {
	return nil
}
