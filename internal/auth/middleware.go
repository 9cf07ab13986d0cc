package auth

import (
	"github.com/gofiber/fiber/v2"

	"cottageplayer/internal/models"
	"cottageplayer/internal/utils"
)

const localsUserKey = "session_user"

// UserFromCtx returns the snapshot placed by RequireAuth.
func UserFromCtx(c *fiber.Ctx) *SessionUser {
	u, _ := c.Locals(localsUserKey).(*SessionUser)
	return u
}

// RequireAuth admits requests that carry a session identity; everything
// else is redirected to the auth-required page.
func (m *SessionManager) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := m.User(c)
		if !ok {
			return c.Redirect("/auth-required", fiber.StatusTemporaryRedirect)
		}
		c.Locals(localsUserKey, user)
		return c.Next()
	}
}

// RequireRoles additionally enforces that the session role is one of the
// allowed set.
func (m *SessionManager) RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := m.User(c)
		if !ok {
			return c.Redirect("/auth-required", fiber.StatusTemporaryRedirect)
		}
		for _, role := range roles {
			if user.Role == role {
				c.Locals(localsUserKey, user)
				return c.Next()
			}
		}
		return utils.JSONError(c, fiber.StatusForbidden, utils.ErrForbidden.Error())
	}
}

// Convenience policies.
func (m *SessionManager) RequireUploader() fiber.Handler {
	return m.RequireRoles(models.RoleUploader, models.RoleAdmin)
}

func (m *SessionManager) RequireAdmin() fiber.Handler {
	return m.RequireRoles(models.RoleAdmin)
}
