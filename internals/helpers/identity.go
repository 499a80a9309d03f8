package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserUUID mengambil user_id yang diset AuthMiddleware.
// uuid.Nil berarti request anonim.
func GetUserUUID(c *fiber.Ctx) uuid.UUID {
	if userIDRaw := c.Locals("user_id"); userIDRaw != nil {
		if userIDStr, ok := userIDRaw.(string); ok {
			if parsed, err := uuid.Parse(userIDStr); err == nil {
				return parsed
			}
		}
	}
	return uuid.Nil
}

// GetUserName mengambil display name dari claims token (jika ada).
func GetUserName(c *fiber.Ctx) string {
	if raw := c.Locals("user_name"); raw != nil {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}

func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}
