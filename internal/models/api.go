package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
)

var ErrGameNotFound = errors.New("game not found")

// MoveRecord is one persisted move or pass.
type MoveRecord struct {
	Turn   int    `json:"turn"   db:"turn"`
	Player string `json:"player" db:"player"`
	Row    int    `json:"row"    db:"row_index"`
	Col    int    `json:"col"    db:"col_index"`
	Pass   bool   `json:"pass"   db:"pass"`
}

// NewMoveRecord converts an engine move played as the given 0-based turn.
func NewMoveRecord(turn int, move othello.Move) MoveRecord {
	return MoveRecord{
		Turn:   turn,
		Player: move.Player.String(),
		Row:    move.Pos.Row,
		Col:    move.Pos.Col,
		Pass:   move.Pass,
	}
}

// Move converts the record back into an engine move.
func (m MoveRecord) Move() othello.Move {
	if m.Pass {
		return othello.Move{Pass: true}
	}
	return othello.Move{Pos: othello.Pos{Row: m.Row, Col: m.Col}}
}

// GameRecord is the persisted form of a game: its size and move log.
type GameRecord struct {
	ID        uuid.UUID    `json:"id"         db:"id"`
	Rows      int          `json:"rows"       db:"board_rows"`
	Cols      int          `json:"cols"       db:"board_cols"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	Moves     []MoveRecord `json:"moves"      db:"-"`
}

// EngineMoves returns the move log as engine moves for replaying.
func (r GameRecord) EngineMoves() []othello.Move {
	moves := make([]othello.Move, len(r.Moves))
	for i, m := range r.Moves {
		moves[i] = m.Move()
	}
	return moves
}

// NewGameRequest represents the payload for creating a game.
type NewGameRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Validate fills in missing dimensions and checks the board size.
func (r *NewGameRequest) Validate(defaultRows, defaultCols int) error {
	if r.Rows == 0 {
		r.Rows = defaultRows
	}
	if r.Cols == 0 {
		r.Cols = defaultCols
	}

	if !config.ValidBoardSize(r.Rows, r.Cols) {
		return fmt.Errorf("board size must be between 2 and %d, got %dx%d", config.MaxBoardSize, r.Rows, r.Cols)
	}

	return nil
}

// MoveRequest represents the payload for playing a move.
type MoveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// Validate checks that both coordinates are present.
func (r *MoveRequest) Validate() error {
	if r.Row == nil || r.Col == nil {
		return errors.New("row and col are required")
	}
	return nil
}

// GameState is the public view of a game.
type GameState struct {
	ID            uuid.UUID     `json:"id"`
	Rows          int           `json:"rows"`
	Cols          int           `json:"cols"`
	Board         []string      `json:"board"`
	CurrentPlayer string        `json:"current_player"`
	BlackCount    int           `json:"black_count"`
	WhiteCount    int           `json:"white_count"`
	LegalMoves    []othello.Pos `json:"legal_moves"`
	MoveCount     int           `json:"move_count"`
	GameOver      bool          `json:"game_over"`

	// Winner is "black", "white" or "draw" once GameOver is set.
	Winner string `json:"winner,omitempty"`
}

// NewGameState snapshots game. The result does not share memory with game.
func NewGameState(id uuid.UUID, game *othello.Game) GameState {
	board := game.Board()

	return GameState{
		ID:            id,
		Rows:          board.Rows(),
		Cols:          board.Cols(),
		Board:         board.Lines(),
		CurrentPlayer: game.Turn().String(),
		BlackCount:    game.Count(othello.BLACK),
		WhiteCount:    game.Count(othello.WHITE),
		LegalMoves:    game.LegalMoves(),
		MoveCount:     game.MoveCount(),
		GameOver:      GameOver(game),
		Winner:        Winner(game),
	}
}

// LegalMovesResponse lists the legal moves of the player to move.
type LegalMovesResponse struct {
	CurrentPlayer string        `json:"current_player"`
	Moves         []othello.Pos `json:"moves"`
}

// HistoryResponse lists the moves of a game.
type HistoryResponse struct {
	Moves []MoveRecord `json:"moves"`
}

type VersionResponse struct {
	Commit string `json:"commit"`
}
