package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const maxPlayerIDLength = 128

// EnsurePlayerID stores the client's player id in c.Locals("playerID"),
// taken from the X-Player-ID header or the playerId query parameter.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals("playerID").(string); ok && id != "" {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}
		if len(playerID) > maxPlayerIDLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Player ID is too long",
			})
		}

		// fiber reuses request buffers after the handler returns
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
