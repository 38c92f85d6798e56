package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "resortshare/internal/log"
	"resortshare/internal/services"
)

// RequireAuth attaches the session user or rejects with 401.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireAdmin enforces an ADMIN session.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
		}
		if u.Role != "ADMIN" {
			applog.Security(c, "access.denied.admin", map[string]any{"user": u.ID})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Admin access required"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
