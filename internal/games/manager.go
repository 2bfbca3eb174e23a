package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
)

var (
	ErrCorruptGame = errors.New("stored game cannot be replayed")
	ErrGameOver    = errors.New("game is over")
)

// session is a live game. mutex is held for the whole of every call that
// reads or changes game, including the store write that follows a change.
type session struct {
	mutex sync.Mutex
	game  *othello.Game

	// Guarded by mutex. An evicted session is no longer in the sessions map
	// and must not be used.
	lastUsed time.Time
	evicted  bool
}

// Manager keeps one engine per game in memory and mirrors every change to a
// Store. Games missing from memory are rebuilt by replaying their move log.
type Manager struct {
	store Store

	sessions map[uuid.UUID]*session

	// sessionsMutex protects sessions
	sessionsMutex sync.Mutex

	now func() time.Time
}

// NewManager creates a Manager backed by store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sessions: make(map[uuid.UUID]*session),
		now:      time.Now,
	}
}

// Create starts a new game with the standard start position.
func (m *Manager) Create(ctx context.Context, rows, cols int) (models.GameState, error) {
	game, err := othello.NewGame(rows, cols)
	if err != nil {
		return models.GameState{}, err
	}

	record := models.GameRecord{
		ID:        uuid.New(),
		Rows:      rows,
		Cols:      cols,
		CreatedAt: time.Now().UTC(),
		Moves:     []models.MoveRecord{},
	}

	if err = m.store.CreateGame(ctx, record); err != nil {
		return models.GameState{}, fmt.Errorf("failed to store game: %w", err)
	}

	m.sessionsMutex.Lock()
	m.sessions[record.ID] = &session{game: game, lastUsed: m.now()}
	m.sessionsMutex.Unlock()

	slog.Debug("created game", "game_id", record.ID, "rows", rows, "cols", cols)

	return models.NewGameState(record.ID, game), nil
}

// State returns the current state of a game.
func (m *Manager) State(ctx context.Context, id uuid.UUID) (models.GameState, error) {
	return m.withGame(ctx, id, func(*othello.Game) error {
		return nil
	})
}

// LegalMoves returns the legal moves of the player to move.
func (m *Manager) LegalMoves(ctx context.Context, id uuid.UUID) (models.LegalMovesResponse, error) {
	var response models.LegalMovesResponse

	_, err := m.withGame(ctx, id, func(game *othello.Game) error {
		response = models.LegalMovesResponse{
			CurrentPlayer: game.Turn().String(),
			Moves:         game.LegalMoves(),
		}
		return nil
	})

	return response, err
}

// History returns the move log of a game.
func (m *Manager) History(ctx context.Context, id uuid.UUID) (models.HistoryResponse, error) {
	var response models.HistoryResponse

	_, err := m.withGame(ctx, id, func(game *othello.Game) error {
		history := game.History()
		response.Moves = make([]models.MoveRecord, len(history))
		for i, move := range history {
			response.Moves[i] = models.NewMoveRecord(i, move)
		}
		return nil
	})

	return response, err
}

// Move plays (row, col) for the player to move.
func (m *Manager) Move(ctx context.Context, id uuid.UUID, row, col int) (models.GameState, error) {
	return m.withGame(ctx, id, func(game *othello.Game) error {
		if err := game.ApplyMove(row, col); err != nil {
			return err
		}
		return m.storeLastMove(ctx, id, game)
	})
}

// Pass passes for the player to move, which is only allowed without legal
// moves and while the opponent can still move.
func (m *Manager) Pass(ctx context.Context, id uuid.UUID) (models.GameState, error) {
	return m.withGame(ctx, id, func(game *othello.Game) error {
		if models.GameOver(game) {
			return ErrGameOver
		}

		if err := game.Pass(); err != nil {
			return err
		}
		return m.storeLastMove(ctx, id, game)
	})
}

// Undo takes back the last move or pass.
func (m *Manager) Undo(ctx context.Context, id uuid.UUID) (models.GameState, error) {
	return m.withGame(ctx, id, func(game *othello.Game) error {
		last, ok := game.LastMove()
		if !ok {
			return othello.ErrNothingToUndo
		}

		if err := game.Undo(); err != nil {
			return err
		}

		if err := m.store.DeleteLastMove(ctx, id); err != nil {
			// Put the engine back in line with the store.
			if replayErr := game.Replay([]othello.Move{last}); replayErr != nil {
				panic(fmt.Sprintf("cannot restore undone move of game %s: %v", id, replayErr))
			}
			return fmt.Errorf("failed to store undo: %w", err)
		}

		return nil
	})
}

// storeLastMove appends the last engine move to the store, and takes it back
// from the engine if that fails.
func (m *Manager) storeLastMove(ctx context.Context, id uuid.UUID, game *othello.Game) error {
	last, ok := game.LastMove()
	if !ok {
		panic("no move to store")
	}

	record := models.NewMoveRecord(game.MoveCount()-1, last)
	if err := m.store.AppendMove(ctx, id, record); err != nil {
		if undoErr := game.Undo(); undoErr != nil {
			panic(fmt.Sprintf("cannot roll back move of game %s: %v", id, undoErr))
		}
		return fmt.Errorf("failed to store move: %w", err)
	}

	return nil
}

// withGame runs fn with exclusive access to the game and returns the state
// after fn succeeded.
func (m *Manager) withGame(ctx context.Context, id uuid.UUID, fn func(game *othello.Game) error) (models.GameState, error) {
	for {
		s, err := m.session(ctx, id)
		if err != nil {
			return models.GameState{}, err
		}

		state, ok, err := m.runLocked(s, id, fn)
		if ok {
			return state, err
		}
		// The session was evicted before we got the lock, load it again.
	}
}

// runLocked runs fn on a session that was not evicted. ok is false when it was.
func (m *Manager) runLocked(s *session, id uuid.UUID, fn func(game *othello.Game) error) (models.GameState, bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.evicted {
		return models.GameState{}, false, nil
	}

	s.lastUsed = m.now()

	if err := fn(s.game); err != nil {
		return models.GameState{}, true, err
	}

	return models.NewGameState(id, s.game), true, nil
}

// EvictIdle drops sessions that were not used for maxIdle. They are rebuilt
// from the store when needed again. Sessions in use are skipped.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		if !s.mutex.TryLock() {
			continue
		}

		if s.lastUsed.Before(cutoff) {
			s.evicted = true
			delete(m.sessions, id)
			evicted++
		}

		s.mutex.Unlock()
	}

	return evicted
}

// RunEviction calls EvictIdle every interval until ctx is done.
func (m *Manager) RunEviction(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(maxIdle); n > 0 {
				slog.Debug("evicted idle games", "count", n)
			}
		}
	}
}

// session returns the live session of a game, loading it from the store if needed.
func (m *Manager) session(ctx context.Context, id uuid.UUID) (*session, error) {
	m.sessionsMutex.Lock()
	s, ok := m.sessions[id]
	m.sessionsMutex.Unlock()

	if ok {
		return s, nil
	}

	record, err := m.store.LoadGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}

	game, err := othello.NewGame(record.Rows, record.Cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptGame, id, err)
	}

	if err = game.Replay(record.EngineMoves()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptGame, id, err)
	}

	m.sessionsMutex.Lock()
	defer m.sessionsMutex.Unlock()

	// Another request may have loaded the same game in the meantime.
	if existing, ok := m.sessions[id]; ok {
		return existing, nil
	}

	s = &session{game: game, lastUsed: m.now()}
	m.sessions[id] = s

	slog.Debug("loaded game", "game_id", id, "moves", len(record.Moves))

	return s, nil
}
