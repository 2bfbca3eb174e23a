package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/services"
	"github.com/stretchr/testify/require"
)

// newTestRepository connects to the databases named by REVERSI_TEST_POSTGRES_URL
// and REVERSI_TEST_REDIS_URL, and skips the test when they are not set.
func newTestRepository(t *testing.T) *GameRepository {
	t.Helper()

	postgresURL := os.Getenv("REVERSI_TEST_POSTGRES_URL")
	redisURL := os.Getenv("REVERSI_TEST_REDIS_URL")
	if postgresURL == "" || redisURL == "" {
		t.Skip("REVERSI_TEST_POSTGRES_URL and REVERSI_TEST_REDIS_URL are required")
	}

	postgres, err := services.InitPostgres(postgresURL)
	require.NoError(t, err)

	redis, err := services.InitRedis(redisURL)
	require.NoError(t, err)

	s := &services.Services{Postgres: postgres, Redis: redis}
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	repo := NewGameRepositoryFromServices(s)
	require.NoError(t, repo.EnsureSchema(context.Background()))

	return repo
}

func TestGameRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	record := models.GameRecord{
		ID:        uuid.New(),
		Rows:      8,
		Cols:      8,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Moves:     []models.MoveRecord{},
	}

	_, err := repo.LoadGame(ctx, record.ID)
	require.ErrorIs(t, err, models.ErrGameNotFound)

	require.NoError(t, repo.CreateGame(ctx, record))

	loaded, err := repo.LoadGame(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, record.ID, loaded.ID)
	require.Equal(t, 8, loaded.Rows)
	require.Empty(t, loaded.Moves)

	moves := []models.MoveRecord{
		{Turn: 0, Player: "black", Row: 2, Col: 3},
		{Turn: 1, Player: "white", Row: 2, Col: 2},
	}
	for _, move := range moves {
		require.NoError(t, repo.AppendMove(ctx, record.ID, move))
	}

	// The first load after a change comes from Postgres, the second from Redis.
	for range 2 {
		loaded, err = repo.LoadGame(ctx, record.ID)
		require.NoError(t, err)
		require.Equal(t, moves, loaded.Moves)
		require.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	}

	require.NoError(t, repo.DeleteLastMove(ctx, record.ID))

	loaded, err = repo.LoadGame(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, moves[:1], loaded.Moves)

	unknown := uuid.New()
	require.ErrorIs(t, repo.AppendMove(ctx, unknown, moves[0]), models.ErrGameNotFound)
	require.ErrorIs(t, repo.DeleteLastMove(ctx, unknown), models.ErrGameNotFound)
}
