package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/services"
	"github.com/redis/go-redis/v9"
)

const (
	gameCacheKeyPrefix = "game:"
	gameCacheTTL       = 10 * time.Minute
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         UUID PRIMARY KEY,
	board_rows INTEGER NOT NULL,
	board_cols INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS game_moves (
	game_id   UUID NOT NULL REFERENCES games (id) ON DELETE CASCADE,
	turn      INTEGER NOT NULL,
	player    TEXT NOT NULL,
	row_index INTEGER NOT NULL,
	col_index INTEGER NOT NULL,
	pass      BOOLEAN NOT NULL,
	PRIMARY KEY (game_id, turn)
);
`

// GameRepository stores games in Postgres and caches loaded records in Redis.
type GameRepository struct {
	postgres *sqlx.DB
	redis    *redis.Client
}

// NewGameRepositoryFromServices creates a GameRepository.
func NewGameRepositoryFromServices(services *services.Services) *GameRepository {
	return &GameRepository{
		postgres: services.Postgres,
		redis:    services.Redis,
	}
}

// EnsureSchema creates the tables if they do not exist yet.
func (repo *GameRepository) EnsureSchema(ctx context.Context) error {
	if _, err := repo.postgres.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating schema: %w", err)
	}
	return nil
}

func gameCacheKey(id uuid.UUID) string {
	return gameCacheKeyPrefix + id.String()
}

// CreateGame inserts a new game without moves.
func (repo *GameRepository) CreateGame(ctx context.Context, record models.GameRecord) error {
	query := `
		INSERT INTO games (id, board_rows, board_cols, created_at)
		VALUES (:id, :board_rows, :board_cols, :created_at)
	`

	if _, err := repo.postgres.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("error inserting game: %w", err)
	}

	return nil
}

// AppendMove stores the next move of a game.
func (repo *GameRepository) AppendMove(ctx context.Context, id uuid.UUID, move models.MoveRecord) error {
	query := `
		INSERT INTO game_moves (game_id, turn, player, row_index, col_index, pass)
		SELECT id, $2, $3, $4, $5, $6
		FROM games
		WHERE id = $1
	`

	result, err := repo.postgres.ExecContext(ctx, query, id, move.Turn, move.Player, move.Row, move.Col, move.Pass)
	if err != nil {
		return fmt.Errorf("error inserting move: %w", err)
	}

	if err = requireAffected(result); err != nil {
		return err
	}

	repo.invalidate(ctx, id)
	return nil
}

// DeleteLastMove removes the most recent move of a game, if any.
func (repo *GameRepository) DeleteLastMove(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := repo.postgres.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM games WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("error checking game: %w", err)
	}

	if !exists {
		return models.ErrGameNotFound
	}

	query := `
		DELETE FROM game_moves
		WHERE game_id = $1
		AND turn = (SELECT MAX(turn) FROM game_moves WHERE game_id = $1)
	`

	if _, err := repo.postgres.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting move: %w", err)
	}

	repo.invalidate(ctx, id)
	return nil
}

// LoadGame returns a game with all of its moves, from Redis if cached.
func (repo *GameRepository) LoadGame(ctx context.Context, id uuid.UUID) (models.GameRecord, error) {
	key := gameCacheKey(id)

	cached, err := repo.redis.Get(ctx, key).Bytes()
	if err == nil {
		var record models.GameRecord
		if err = json.Unmarshal(cached, &record); err == nil {
			return record, nil
		}
		slog.Warn("dropping undecodable cached game", "game_id", id, "error", err)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("error reading cached game", "game_id", id, "error", err)
	}

	record, err := repo.loadGameFromPostgres(ctx, id)
	if err != nil {
		return models.GameRecord{}, err
	}

	jsonData, err := json.Marshal(record)
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error marshaling game: %w", err)
	}

	if err = repo.redis.Set(ctx, key, jsonData, gameCacheTTL).Err(); err != nil {
		slog.Warn("error caching game", "game_id", id, "error", err)
	}

	return record, nil
}

func (repo *GameRepository) loadGameFromPostgres(ctx context.Context, id uuid.UUID) (models.GameRecord, error) {
	var record models.GameRecord

	err := repo.postgres.GetContext(ctx, &record, `SELECT id, board_rows, board_cols, created_at FROM games WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameRecord{}, models.ErrGameNotFound
	}
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("error getting game: %w", err)
	}

	record.Moves = []models.MoveRecord{}
	query := `
		SELECT turn, player, row_index, col_index, pass
		FROM game_moves
		WHERE game_id = $1
		ORDER BY turn
	`

	if err = repo.postgres.SelectContext(ctx, &record.Moves, query, id); err != nil {
		return models.GameRecord{}, fmt.Errorf("error getting moves: %w", err)
	}

	return record, nil
}

// invalidate drops the cached record. Failing to do so is logged, the TTL
// bounds how long a stale record can be served.
func (repo *GameRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := repo.redis.Del(ctx, gameCacheKey(id)).Err(); err != nil {
		slog.Error("error invalidating cached game", "game_id", id, "error", err)
	}
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}

	if affected == 0 {
		return models.ErrGameNotFound
	}

	return nil
}
