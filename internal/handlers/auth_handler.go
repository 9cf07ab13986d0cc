package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cottageplayer/internal/auth"
	"cottageplayer/internal/config"
	"cottageplayer/internal/services"
)

type AuthHandler struct {
	cfg      *config.Config
	accounts *services.AccountService
	sessions *auth.SessionManager
	resolver auth.IdentityResolver
	states   *auth.StateSigner
	log      *zap.SugaredLogger
}

// GET /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	state, err := h.states.Issue()
	if err != nil {
		h.log.Errorw("issue oauth state", "error", err)
		return fiber.ErrInternalServerError
	}
	return c.Redirect(h.resolver.AuthURL(state), fiber.StatusFound)
}

// GET /auth/callback?code&state
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || h.states.Verify(state) != nil {
		_ = h.sessions.Clear(c, "")
		return c.Redirect("/auth-required", fiber.StatusSeeOther)
	}

	identity, err := h.resolver.Resolve(c.Context(), code)
	if err != nil {
		h.log.Warnw("identity resolution failed", "error", err)
		_ = h.sessions.Clear(c, "")
		return c.Redirect("/auth-required", fiber.StatusSeeOther)
	}

	user, err := h.accounts.EnsureUser(
		c.Context(),
		identity.Email, identity.Name, identity.Picture,
		h.cfg.Auth.AllowAutoSignup,
	)
	if err != nil {
		h.log.Errorw("account lookup failed", "email", identity.Email, "error", err)
		return fiber.ErrInternalServerError
	}
	if user == nil || !user.Active {
		_ = h.sessions.Clear(c, identity.Email)
		return c.Redirect("/auth/unauthorized", fiber.StatusSeeOther)
	}

	if err := h.sessions.SetUser(c, auth.SnapshotOf(user)); err != nil {
		return fiber.ErrInternalServerError
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// GET /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.sessions.Clear(c, "")
	return c.Redirect("/", fiber.StatusFound)
}

// GET /auth/status
func (h *AuthHandler) Status(c *fiber.Ctx) error {
	if user, ok := h.sessions.User(c); ok {
		return c.JSON(fiber.Map{"authenticated": true, "user": user})
	}
	return c.JSON(fiber.Map{"authenticated": false})
}

// GET /auth-required
func (h *AuthHandler) AuthRequired(c *fiber.Ctx) error {
	payload := fiber.Map{
		"app_name": h.cfg.App.Name,
		"title":    "Authentication Required",
	}
	if user, ok := h.sessions.User(c); ok {
		payload["user"] = user
	}
	return c.JSON(payload)
}

// GET /auth/unauthorized
func (h *AuthHandler) Unauthorized(c *fiber.Ctx) error {
	email := h.sessions.PopUnauthorizedEmail(c)
	payload := fiber.Map{
		"app_name": h.cfg.App.Name,
		"title":    "Access Denied",
	}
	if email != "" {
		payload["email"] = email
	}
	return c.JSON(payload)
}
