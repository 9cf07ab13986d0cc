package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cottageplayer/internal/auth"
	"cottageplayer/internal/config"
	"cottageplayer/internal/models"
	"cottageplayer/internal/services"
	"cottageplayer/internal/utils"
)

type LibraryHandler struct {
	cfg      *config.Config
	accounts *services.AccountService
	media    *services.MediaService
	library  *services.LibraryService
	sessions *auth.SessionManager
}

// GET /. The home page is the session re-sync point: the snapshot is
// refreshed from the account store and the user re-validated as still
// active before the library is rendered.
func (h *LibraryHandler) Index(c *fiber.Ctx) error {
	snapshot, err := currentUser(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}

	user, err := h.accounts.EnsureUser(c.Context(), snapshot.Email, snapshot.Name, snapshot.Picture, false)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if user == nil || !user.Active {
		_ = h.sessions.Clear(c, snapshot.Email)
		return c.Redirect("/auth/unauthorized", fiber.StatusSeeOther)
	}
	fresh := auth.SnapshotOf(user)
	if err := h.sessions.SetUser(c, fresh); err != nil {
		return fiber.ErrInternalServerError
	}

	filters := services.Filters{
		Types:        utils.SplitCSV(c.Query("type")),
		Tags:         utils.SplitCSV(c.Query("tags")),
		PlaylistTags: utils.SplitCSV(c.Query("playlists")),
	}
	return h.renderLibrary(c, fresh, filters, "Library")
}

// GET /library/:category
func (h *LibraryHandler) Category(c *fiber.Ctx) error {
	return h.category(c, c.Params("category"))
}

// CategoryNamed serves the top-level aliases (/movies, /tv, /photos).
func (h *LibraryHandler) CategoryNamed(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.category(c, name)
	}
}

func (h *LibraryHandler) category(c *fiber.Ctx, name string) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	filters, ok := h.library.CategoryFilters(name)
	if !ok {
		return utils.JSONError(c, fiber.StatusNotFound, "unknown category")
	}
	return h.renderLibrary(c, *user, filters, name)
}

func (h *LibraryHandler) renderLibrary(c *fiber.Ctx, user auth.SessionUser, filters services.Filters, title string) error {
	records, err := h.media.List(c.Context())
	if err != nil {
		return fiber.ErrInternalServerError
	}
	items := h.library.BuildView(records, filters)
	return c.JSON(fiber.Map{
		"app_name":    h.cfg.App.Name,
		"title":       title,
		"user":        user,
		"media_items": items,
		"can_upload":  user.Role == models.RoleUploader || user.Role == models.RoleAdmin,
		"is_admin":    user.Role == models.RoleAdmin,
	})
}
