package services

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services. Only the
// connections needed by the configured storage backend are set.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
	Badger   *badger.DB
}

// Replaced in tests.
var (
	initPostgres = InitPostgres
	initRedis    = InitRedis
)

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		// Initialize database
		postgres, err := initPostgres(cfg.PostgresURL)
		if err != nil {
			return nil, err
		}

		// Initialize Redis
		redis, err := initRedis(cfg.RedisURL)
		if err != nil {
			return nil, errors.Join(err, postgres.Close())
		}

		return &Services{
			Postgres: postgres,
			Redis:    redis,
		}, nil

	case config.StorageBadger:
		db, err := InitBadger(cfg.BadgerDir)
		if err != nil {
			return nil, err
		}

		return &Services{Badger: db}, nil

	case config.StorageMemory:
		return &Services{}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

// Close closes every open connection.
func (s *Services) Close() error {
	var errs []error

	if s.Postgres != nil {
		errs = append(errs, s.Postgres.Close())
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	if s.Badger != nil {
		errs = append(errs, s.Badger.Close())
	}

	return errors.Join(errs...)
}
