package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT (HS256).
// A missing token is a 401; a present but invalid or expired token is a 403.
// On success the resolved identity is set into c.Locals("userId") (int64)
// and c.Locals("email"); downstream handlers trust the token and do not
// re-check that the user still exists.
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		// Support both "Bearer <token>" and "<token>" (no prefix).
		tokenStr := strings.TrimSpace(authHeader)
		if parts := strings.SplitN(tokenStr, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = strings.TrimSpace(parts[1])
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "Access token required"})
		}
		claims, err := Parse(tokenStr, secret, expectedIssuer)
		if err != nil {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "Invalid or expired token"})
		}
		c.Locals("userId", claims.UserID)
		c.Locals("email", claims.Email)
		return c.Next()
	}
}
