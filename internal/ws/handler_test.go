package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/lk16/reversi/internal/games"
	"github.com/lk16/reversi/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	manager := games.NewManager(games.NewMemoryStore())
	state, err := manager.Create(context.Background(), 8, 8)
	require.NoError(t, err)

	return NewHandler(nil, manager, state.ID)
}

func TestHandleMessage(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.handleMessage(&Incoming{Event: "state_request", ID: 1})
	require.NoError(t, err)
	require.Equal(t, 1, resp.ID)
	require.Empty(t, resp.Error)
	state, ok := resp.Data.(models.GameState)
	require.True(t, ok)
	require.Equal(t, "black", state.CurrentPlayer)

	resp, err = h.handleMessage(&Incoming{Event: "move_request", ID: 2, Data: json.RawMessage(`{"row": 2, "col": 3}`)})
	require.NoError(t, err)
	require.Empty(t, resp.Error)
	state, ok = resp.Data.(models.GameState)
	require.True(t, ok)
	require.Equal(t, "white", state.CurrentPlayer)
	require.Equal(t, 1, state.MoveCount)

	resp, err = h.handleMessage(&Incoming{Event: "legal_moves_request", ID: 3})
	require.NoError(t, err)
	moves, ok := resp.Data.(models.LegalMovesResponse)
	require.True(t, ok)
	require.Len(t, moves.Moves, 3)

	resp, err = h.handleMessage(&Incoming{Event: "undo_request", ID: 4})
	require.NoError(t, err)
	state, ok = resp.Data.(models.GameState)
	require.True(t, ok)
	require.Equal(t, 0, state.MoveCount)
}

func TestHandleMessageRuleErrorsAreReplied(t *testing.T) {
	h := newTestHandler(t)

	resp, err := h.handleMessage(&Incoming{Event: "move_request", ID: 7, Data: json.RawMessage(`{"row": 0, "col": 0}`)})
	require.NoError(t, err)
	require.Equal(t, 7, resp.ID)
	require.Nil(t, resp.Data)
	require.Contains(t, resp.Error, "illegal move")

	resp, err = h.handleMessage(&Incoming{Event: "pass_request", ID: 8})
	require.NoError(t, err)
	require.Contains(t, resp.Error, "pass")

	resp, err = h.handleMessage(&Incoming{Event: "undo_request", ID: 9})
	require.NoError(t, err)
	require.Contains(t, resp.Error, "nothing to undo")
}

func TestHandleMessageIncompleteMove(t *testing.T) {
	h := newTestHandler(t)

	for i, data := range []string{`{"row": 2}`, `{"col": 3}`, `{}`} {
		resp, err := h.handleMessage(&Incoming{Event: "move_request", ID: i, Data: json.RawMessage(data)})
		require.NoError(t, err)
		require.Equal(t, i, resp.ID)
		require.Nil(t, resp.Data)
		require.Equal(t, "row and col are required", resp.Error)
	}

	resp, err := h.handleMessage(&Incoming{Event: "state_request", ID: 3})
	require.NoError(t, err)
	state, ok := resp.Data.(models.GameState)
	require.True(t, ok)
	require.Equal(t, 0, state.MoveCount)
	require.Equal(t, "...BW...", state.Board[4])
}

func TestHandleMessageGameOver(t *testing.T) {
	manager := games.NewManager(games.NewMemoryStore())
	state, err := manager.Create(context.Background(), 2, 2)
	require.NoError(t, err)

	h := NewHandler(nil, manager, state.ID)

	resp, err := h.handleMessage(&Incoming{Event: "pass_request", ID: 1})
	require.NoError(t, err)
	require.Equal(t, "game is over", resp.Error)
}

func TestHandleMessageFatalErrors(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.handleMessage(&Incoming{ID: 1})
	require.Error(t, err)

	_, err = h.handleMessage(&Incoming{Event: "chat_request", ID: 2})
	require.ErrorContains(t, err, "unknown event")

	_, err = h.handleMessage(&Incoming{Event: "move_request", ID: 3, Data: json.RawMessage(`{"row":`)})
	require.Error(t, err)
}

func TestOutgoingJSON(t *testing.T) {
	data, err := json.Marshal(&Outgoing{ID: 3, Error: "illegal move"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id": 3, "error": "illegal move"}`, string(data))
}
