package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/games"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/services"
	"github.com/lk16/reversi/internal/storage"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
	schemaTimeout       = 10 * time.Second

	sessionEvictInterval = time.Minute
	sessionMaxIdle       = 30 * time.Minute
)

// NewApp creates the Fiber app serving the games of manager.
func NewApp(cfg *config.ServerConfig, manager *games.Manager) *fiber.App {
	app := fiber.New(fiber.Config{
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Share config and game sessions with all handlers
	app.Use(middleware.Context(cfg, manager))

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app, cfg)

	return app
}

// NewStore returns the game store for the configured storage backend.
func NewStore(cfg *config.ServerConfig, services *services.Services) (games.Store, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		repo := repository.NewGameRepositoryFromServices(services)

		ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
		defer cancel()

		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil

	case config.StorageBadger:
		return storage.NewBadgerStore(services.Badger), nil

	case config.StorageMemory:
		return games.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

// SetupApp loads the configuration, connects to the configured storage and
// creates the app. The caller closes the returned services.
func SetupApp() (*fiber.App, *config.ServerConfig, *services.Services) {
	// Load configuration
	cfg := config.LoadServerConfig()

	// Initialize services
	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	store, err := NewStore(cfg, services)
	if err != nil {
		slog.Error("Failed to initialize game store", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}

	slog.Info("Using game store", "storage", cfg.Storage)

	manager := games.NewManager(store)
	go manager.RunEviction(context.Background(), sessionEvictInterval, sessionMaxIdle)

	return NewApp(cfg, manager), cfg, services
}
