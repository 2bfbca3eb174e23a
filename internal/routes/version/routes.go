package version

import (
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
)

const unknownCommit = "unknown"

// Version is computed once at startup.
var Version = models.VersionResponse{Commit: commit()}

// commit prefers the revision stamped into the binary by the Go toolchain and
// falls back to asking git, which works for `go run` and tests.
func commit() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if revision := buildSetting(info.Settings, "vcs.revision"); revision != "" {
			return revision
		}
	}

	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return unknownCommit
	}

	if revision := strings.TrimSpace(string(output)); revision != "" {
		return revision
	}
	return unknownCommit
}

func buildSetting(settings []debug.BuildSetting, key string) string {
	for _, setting := range settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func SetupRoutes(app *fiber.App) {
	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(Version)
	})
}
