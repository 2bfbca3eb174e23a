package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/games"
)

// Context stores the shared config and game manager in every request.
func Context(cfg *config.ServerConfig, manager *games.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("manager", manager)
		return c.Next()
	}
}
