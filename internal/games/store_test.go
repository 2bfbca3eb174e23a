package games

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := uuid.New()

	_, err := store.LoadGame(ctx, id)
	require.ErrorIs(t, err, models.ErrGameNotFound)
	require.ErrorIs(t, store.AppendMove(ctx, id, models.MoveRecord{}), models.ErrGameNotFound)
	require.ErrorIs(t, store.DeleteLastMove(ctx, id), models.ErrGameNotFound)

	require.NoError(t, store.CreateGame(ctx, models.GameRecord{ID: id, Rows: 8, Cols: 8}))

	first := models.MoveRecord{Turn: 0, Player: "black", Row: 2, Col: 3}
	second := models.MoveRecord{Turn: 1, Player: "white", Row: 2, Col: 2}
	require.NoError(t, store.AppendMove(ctx, id, first))
	require.NoError(t, store.AppendMove(ctx, id, second))

	record, err := store.LoadGame(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []models.MoveRecord{first, second}, record.Moves)

	// Records handed out must not alias the stored log.
	record.Moves[0].Row = 7

	require.NoError(t, store.DeleteLastMove(ctx, id))

	record, err = store.LoadGame(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []models.MoveRecord{first}, record.Moves)

	require.NoError(t, store.DeleteLastMove(ctx, id))
	require.NoError(t, store.DeleteLastMove(ctx, id))

	record, err = store.LoadGame(ctx, id)
	require.NoError(t, err)
	require.Empty(t, record.Moves)
}
