package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"cottageplayer/internal/models"
	"cottageplayer/internal/services"
	"cottageplayer/internal/utils"
)

type AdminHandler struct {
	accounts *services.AccountService
}

// GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.accounts.List(c.Context())
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{
		"users": users,
		"roles": []models.Role{models.RoleViewer, models.RoleUploader, models.RoleAdmin},
	})
}

// POST /admin/users (form: email, name?, role?)
func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	if email == "" {
		return utils.JSONError(c, fiber.StatusBadRequest, "email is required")
	}
	role := models.RoleViewer
	if raw := c.FormValue("role"); raw != "" {
		parsed, ok := models.ParseRole(raw)
		if !ok {
			return utils.JSONError(c, fiber.StatusBadRequest, "unknown role")
		}
		role = parsed
	}
	user, created, err := h.accounts.AddOrActivate(c.Context(), email, c.FormValue("name"), role)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return utils.JSONSuccess(c, status, fiber.Map{"user": user, "created": created})
}

// POST /admin/users/:id/role (form: role)
func (h *AdminHandler) ChangeRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	role, ok := models.ParseRole(c.FormValue("role"))
	if !ok {
		return utils.JSONError(c, fiber.StatusBadRequest, "unknown role")
	}
	if err := h.accounts.SetRole(c.Context(), id, role); err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"id": id, "role": role})
}

// POST /admin/users/:id/active (form: active=true|false)
func (h *AdminHandler) ChangeActive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	active := strings.EqualFold(c.FormValue("active"), "true")
	if err := h.accounts.SetActive(c.Context(), id, active); err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"id": id, "active": active})
}
