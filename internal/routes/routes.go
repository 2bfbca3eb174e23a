package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/routes/api"
	"github.com/lk16/reversi/internal/routes/version"
	"github.com/lk16/reversi/internal/routes/ws"
)

func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	// Serve API routes
	api.SetupRoutes(app, cfg)

	// Serve game websocket
	ws.SetupRoutes(app, cfg)

	// Serve version info
	version.SetupRoutes(app)
}
