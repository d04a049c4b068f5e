package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"taskboard/internal/auth"
)

// UserIDLocalKey is the key used to store the authenticated user id in Fiber's context locals.
const UserIDLocalKey = "user_id"

// Unauthorized writes the 401 response used by the auth middlewares.
type Unauthorized func(c *fiber.Ctx) error

func bearer(c *fiber.Ctx) string {
	h := c.Get(fiber.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Session verifies the bearer token and stores its subject under UserIDLocalKey.
func Session(v auth.Verifier, deny Unauthorized) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := v.Verify(c.UserContext(), bearer(c))
		if err != nil {
			return deny(c)
		}
		c.Locals(UserIDLocalKey, uid)
		return c.Next()
	}
}

// CronAuth admits requests carrying the maintenance secret as a bearer token.
func CronAuth(secret string, deny Unauthorized) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !auth.SecretMatches(bearer(c), secret) {
			return deny(c)
		}
		return c.Next()
	}
}

// UserID returns the id stored by Session.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(UserIDLocalKey).(string)
	return uid
}
