package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/dailycare/internal/models"
	"github.com/example/dailycare/internal/services"
)

const userContextKey = "currentUser"

// AuthMiddleware validates bearer tokens and loads the authenticated
// user into context. Deactivated accounts are rejected here.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		user, err := auth.ValidateToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// AdminOnly rejects requests whose authenticated user lacks the admin
// flag. It must run after AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}
		if !user.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from context.
func GetCurrentUser(c *fiber.Ctx) (*models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	if user, ok := value.(*models.User); ok {
		return user, true
	}

	return nil, false
}
