package mongodb

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	mongoclient "github.com/ArowuTest/bridgetunes-spin-wheel/pkg/mongodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only when MONGODB_TEST_URI is set, e.g. mongodb://localhost:27017
func setupRepo(t *testing.T) *SpinRepository {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := mongoclient.NewClient(ctx, uri)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("spin_wheel_test_%d", time.Now().UnixNano()))
	repo := NewSpinRepository(db, client.Disconnect)
	require.NoError(t, repo.EnsureSchema(ctx))

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = repo.Close(context.Background())
	})
	return repo
}

func TestSpinRepository(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	_, err := repo.FindByEmailAndDate(ctx, "a@x.com", "2024-01-01")
	assert.ErrorIs(t, err, repositories.ErrSpinNotFound)

	first := &models.SpinRecord{Name: "A", Email: "a@x.com", Phone: "1", Prize: "NOTHING", Date: "2024-01-01"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)

	err = repo.Create(ctx, &models.SpinRecord{Email: "a@x.com", Date: "2024-01-01"})
	assert.ErrorIs(t, err, repositories.ErrSpinAlreadyClaimed)

	require.NoError(t, repo.Create(ctx, &models.SpinRecord{Email: "b@x.com", Date: "2024-01-01"}))
	assert.NoError(t, repo.EnsureSchema(ctx))

	found, err := repo.FindByEmailAndDate(ctx, "a@x.com", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "NOTHING", found.Prize)

	spins, err := repo.FindByDate(ctx, "2024-01-01")
	require.NoError(t, err)
	require.Len(t, spins, 2)
	assert.Equal(t, "a@x.com", spins[0].Email)
	assert.Equal(t, "b@x.com", spins[1].Email)
}
