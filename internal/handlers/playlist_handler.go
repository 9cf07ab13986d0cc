package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"cottageplayer/internal/models"
	"cottageplayer/internal/services"
	"cottageplayer/internal/utils"
)

type PlaylistHandler struct {
	playlists *services.PlaylistService
}

// GET /playlists
func (h *PlaylistHandler) List(c *fiber.Ctx) error {
	playlists, err := h.playlists.List(c.Context())
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, playlists)
}

// GET /playlists/:id
func (h *PlaylistHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	p, err := h.playlists.Get(c.Context(), id)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, p)
}

type playlistCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// POST /playlists
func (h *PlaylistHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	var req playlistCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	ownerID := user.ID
	p, err := h.playlists.Create(c.Context(), req.Name, req.Description, &ownerID)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, p)
}

type playlistUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// PUT /playlists/:id
func (h *PlaylistHandler) Update(c *fiber.Ctx) error {
	id, _, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	var req playlistUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	updated, err := h.playlists.Update(c.Context(), id, req.Name, req.Description)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, updated)
}

// DELETE /playlists/:id
func (h *PlaylistHandler) Delete(c *fiber.Ctx) error {
	id, _, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	if err := h.playlists.Delete(c.Context(), id); err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"id": id})
}

type setItemsRequest struct {
	MediaIDs []uint `json:"media_ids"`
}

// PUT /playlists/:id/items, atomic replace of the whole membership.
func (h *PlaylistHandler) SetItems(c *fiber.Ctx) error {
	id, _, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	var req setItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	p, err := h.playlists.SetItems(c.Context(), id, req.MediaIDs)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, p)
}

type addItemRequest struct {
	MediaID  uint `json:"media_id"`
	Position *int `json:"position"`
}

// POST /playlists/:id/items
func (h *PlaylistHandler) AddItem(c *fiber.Ctx) error {
	id, _, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	item, err := h.playlists.AddItem(c.Context(), id, req.MediaID, req.Position)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, item)
}

// DELETE /playlists/:id/items/:mediaID
func (h *PlaylistHandler) RemoveItem(c *fiber.Ctx) error {
	id, _, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	mediaID, err := paramID(c, "mediaID")
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	if err := h.playlists.RemoveItem(c.Context(), id, mediaID); err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"playlist_id": id, "media_id": mediaID})
}

// requireMutable loads the playlist and applies the ownership policy: an
// owned playlist is only mutable by its owner or an admin.
func (h *PlaylistHandler) requireMutable(c *fiber.Ctx) (uint, *models.Playlist, error) {
	user, err := currentUser(c)
	if err != nil {
		return 0, nil, err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return 0, nil, err
	}
	p, err := h.playlists.Get(c.Context(), id)
	if err != nil {
		return 0, nil, err
	}
	if !services.CanMutatePlaylist(user.ID, user.Role, p) {
		return 0, nil, utils.ErrForbidden
	}
	return id, p, nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, utils.ErrValidation
	}
	return uint(id), nil
}
