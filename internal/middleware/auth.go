package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/lk16/reversi/internal/config"
)

const tokenHeader = "x-token"

func unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="Reversi"`)

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// AuthOrToken accepts requests carrying the configured token in the x-token
// header or valid basic auth credentials.
func AuthOrToken(cfg *config.ServerConfig) fiber.Handler {
	basicAuth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.BasicAuthUsername: cfg.BasicAuthPassword,
		},
		Realm:        "Reversi",
		Unauthorized: unauthorized,
	})

	token := []byte(cfg.Token)

	return func(c *fiber.Ctx) error {
		if got := c.Get(tokenHeader); got != "" && len(token) > 0 &&
			subtle.ConstantTimeCompare([]byte(got), token) == 1 {
			return c.Next()
		}

		return basicAuth(c)
	}
}
