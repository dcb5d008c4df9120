package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = models.Entrant{Name: "Ada", Email: "a@x.com", Phone: "+216 555 0100"}

func newTestSpinService(t *testing.T, repo repositories.SpinRepository) *SpinServiceImpl {
	t.Helper()
	table, err := NewPrizeTable(models.DefaultPrizes())
	require.NoError(t, err)
	return NewSpinService(repo, table)
}

func prizeNames() []string {
	var names []string
	for _, p := range models.DefaultPrizes() {
		names = append(names, p.Name)
	}
	return names
}

func TestSpinService_DailyScenario(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSpinRepository()
	service := newTestSpinService(t, repo)

	t.Run("first spin draws a prize and stores one row", func(t *testing.T) {
		result, err := service.AttemptSpin(ctx, ada, "2024-01-01")
		require.NoError(t, err)
		assert.False(t, result.AlreadySpun)
		require.NotNil(t, result.Prize)
		assert.Contains(t, prizeNames(), *result.Prize)
		assert.Equal(t, 1, repo.Count())

		stored, err := repo.FindByEmailAndDate(ctx, ada.Email, "2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, *result.Prize, stored.Prize)
		assert.Equal(t, ada.Name, stored.Name)
		assert.Equal(t, ada.Phone, stored.Phone)
	})

	t.Run("second spin the same day is rejected without a new row", func(t *testing.T) {
		result, err := service.AttemptSpin(ctx, ada, "2024-01-01")
		require.NoError(t, err)
		assert.True(t, result.AlreadySpun)
		assert.Nil(t, result.Prize)
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("next day is eligible again", func(t *testing.T) {
		result, err := service.AttemptSpin(ctx, ada, "2024-01-02")
		require.NoError(t, err)
		assert.False(t, result.AlreadySpun)
		assert.NotNil(t, result.Prize)
		assert.Equal(t, 2, repo.Count())
	})

	t.Run("eligibility is per email", func(t *testing.T) {
		other := ada
		other.Email = "b@x.com"
		result, err := service.AttemptSpin(ctx, other, "2024-01-01")
		require.NoError(t, err)
		assert.False(t, result.AlreadySpun)
		assert.Equal(t, 3, repo.Count())
	})
}

func TestSpinService_InvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSpinRepository()
	service := newTestSpinService(t, repo)

	tests := []struct {
		name    string
		entrant models.Entrant
	}{
		{"missing name", models.Entrant{Email: "a@x.com", Phone: "1"}},
		{"missing email", models.Entrant{Name: "A", Phone: "1"}},
		{"missing phone", models.Entrant{Name: "A", Email: "a@x.com"}},
		{"all empty", models.Entrant{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AttemptSpin(ctx, tt.entrant, "2024-01-01")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, repo.Count())

	_, err := service.AttemptSpin(ctx, ada, "01/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, 0, repo.Count())
}

func TestSpinService_UsesInjectedDraw(t *testing.T) {
	service := newTestSpinService(t, memory.NewSpinRepository())
	service.random = func() float64 { return 0.96 }

	result, err := service.AttemptSpin(context.Background(), ada, "2024-01-01")
	require.NoError(t, err)
	require.NotNil(t, result.Prize)
	assert.Equal(t, "20% OFF", *result.Prize)
}

func TestSpinService_SpinUsesUTCDay(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSpinRepository()
	service := newTestSpinService(t, repo)

	clock := time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)
	service.now = func() time.Time { return clock }

	first, err := service.Spin(ctx, ada)
	require.NoError(t, err)
	assert.False(t, first.AlreadySpun)

	// Two seconds later, past midnight UTC
	clock = clock.Add(2 * time.Second)
	second, err := service.Spin(ctx, ada)
	require.NoError(t, err)
	assert.False(t, second.AlreadySpun)

	day1, _ := repo.FindByDate(ctx, "2024-01-01")
	day2, _ := repo.FindByDate(ctx, "2024-01-02")
	assert.Len(t, day1, 1)
	assert.Len(t, day2, 1)
	assert.Equal(t, "2024-01-02", service.Today())
}

// racingRepo reports every lookup as not found, like a second request that checked before the first inserted
type racingRepo struct {
	*memory.SpinRepository
}

func (r racingRepo) FindByEmailAndDate(_ context.Context, _, _ string) (*models.SpinRecord, error) {
	return nil, repositories.ErrSpinNotFound
}

func TestSpinService_ConcurrentSpinsClaimOnce(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewSpinRepository()
	service := newTestSpinService(t, racingRepo{repo})

	var wg sync.WaitGroup
	results := make([]*models.SpinResult, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := service.AttemptSpin(ctx, ada, "2024-01-01")
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, r := range results {
		if r != nil && !r.AlreadySpun {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, repo.Count())
}

// failingRepo simulates an unavailable store
type failingRepo struct {
	*memory.SpinRepository
	findErr   error
	createErr error
}

func (r failingRepo) FindByEmailAndDate(ctx context.Context, email, date string) (*models.SpinRecord, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.SpinRepository.FindByEmailAndDate(ctx, email, date)
}

func (r failingRepo) Create(ctx context.Context, spin *models.SpinRecord) error {
	if r.createErr != nil {
		return r.createErr
	}
	return r.SpinRepository.Create(ctx, spin)
}

func TestSpinService_StorageFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")

	t.Run("lookup failure", func(t *testing.T) {
		service := newTestSpinService(t, failingRepo{SpinRepository: memory.NewSpinRepository(), findErr: boom})
		_, err := service.AttemptSpin(ctx, ada, "2024-01-01")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("insert failure", func(t *testing.T) {
		repo := memory.NewSpinRepository()
		service := newTestSpinService(t, failingRepo{SpinRepository: repo, createErr: boom})
		_, err := service.AttemptSpin(ctx, ada, "2024-01-01")
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, repo.Count())
	})
}
