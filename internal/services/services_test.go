package services

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestInitServicesMemory(t *testing.T) {
	services, err := InitServices(&config.ServerConfig{Storage: config.StorageMemory})
	require.NoError(t, err)
	require.Equal(t, &Services{}, services)
	require.NoError(t, services.Close())
}

func TestInitServicesBadger(t *testing.T) {
	services, err := InitServices(&config.ServerConfig{Storage: config.StorageBadger, BadgerDir: t.TempDir()})
	require.NoError(t, err)
	require.NotNil(t, services.Badger)
	require.Nil(t, services.Postgres)
	require.NoError(t, services.Close())
}

func TestInitServicesUnknownStorage(t *testing.T) {
	_, err := InitServices(&config.ServerConfig{Storage: "sqlite"})
	require.ErrorContains(t, err, "unknown storage backend")
}

func TestInitRedisInvalidURL(t *testing.T) {
	_, err := InitRedis("not-a-url")
	require.ErrorContains(t, err, "error parsing Redis URL")
}

func TestInitServicesClosesPostgresWhenRedisFails(t *testing.T) {
	// Opening does not connect, so no database is needed.
	postgres := sqlx.MustOpen("postgres", "postgres://localhost/reversi?sslmode=disable")
	errRedis := errors.New("redis is down")

	oldPostgres, oldRedis := initPostgres, initRedis
	t.Cleanup(func() { initPostgres, initRedis = oldPostgres, oldRedis })

	initPostgres = func(string) (*sqlx.DB, error) { return postgres, nil }
	initRedis = func(string) (*redis.Client, error) { return nil, errRedis }

	_, err := InitServices(&config.ServerConfig{Storage: config.StoragePostgres})
	require.ErrorIs(t, err, errRedis)
	require.ErrorContains(t, postgres.Ping(), "database is closed")
}
