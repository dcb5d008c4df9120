package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/utils"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure SpinServiceImpl implements SpinService
var _ SpinService = (*SpinServiceImpl)(nil)

// SpinServiceImpl enforces one spin per email per UTC day and draws from a fixed prize table
type SpinServiceImpl struct {
	spinRepo repositories.SpinRepository
	prizes   *PrizeTable
	random   func() float64
	now      func() time.Time
}

// NewSpinService creates a new SpinServiceImpl using math/rand and the wall clock
func NewSpinService(spinRepo repositories.SpinRepository, prizes *PrizeTable) *SpinServiceImpl {
	return &SpinServiceImpl{
		spinRepo: spinRepo,
		prizes:   prizes,
		random:   rand.Float64,
		now:      time.Now,
	}
}

// Today returns the current UTC day
func (s *SpinServiceImpl) Today() string {
	return utils.DayKey(s.now())
}

// Spin attempts a spin for the current UTC day
func (s *SpinServiceImpl) Spin(ctx context.Context, entrant models.Entrant) (*models.SpinResult, error) {
	return s.AttemptSpin(ctx, entrant, s.Today())
}

// AttemptSpin checks eligibility for (email, today), draws a prize and claims the day.
// Losing a concurrent claim for the same pair reports AlreadySpun rather than a second record.
func (s *SpinServiceImpl) AttemptSpin(ctx context.Context, entrant models.Entrant, today string) (*models.SpinResult, error) {
	if entrant.Name == "" || entrant.Email == "" || entrant.Phone == "" {
		return nil, ErrInvalidInput
	}
	if !utils.IsValidDay(today) {
		return nil, ErrInvalidDate
	}

	log := logging.Log.WithFields(logrus.Fields{"email": entrant.Email, "date": today})

	// 1. Eligibility
	_, err := s.spinRepo.FindByEmailAndDate(ctx, entrant.Email, today)
	if err == nil {
		log.Info("Spin rejected, already spun today")
		return &models.SpinResult{AlreadySpun: true}, nil
	}
	if !errors.Is(err, repositories.ErrSpinNotFound) {
		log.WithError(err).Error("Failed to check for existing spin")
		return nil, fmt.Errorf("failed to check for existing spin: %w", err)
	}

	// 2. Draw
	prize := s.prizes.Draw(s.random)

	// 3. Claim
	spin := &models.SpinRecord{
		Name:      entrant.Name,
		Email:     entrant.Email,
		Phone:     entrant.Phone,
		Prize:     prize,
		Date:      today,
		CreatedAt: s.now().UTC(),
	}
	if err := s.spinRepo.Create(ctx, spin); err != nil {
		if errors.Is(err, repositories.ErrSpinAlreadyClaimed) {
			log.Warn("Concurrent spin already claimed the day")
			return &models.SpinResult{AlreadySpun: true}, nil
		}
		log.WithError(err).Error("Failed to save spin")
		return nil, fmt.Errorf("failed to save spin: %w", err)
	}

	log.WithFields(logrus.Fields{"spinId": spin.ID, "prize": prize}).Info("Spin recorded")
	return &models.SpinResult{Prize: &prize}, nil
}
