package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cottageplayer/internal/config"
	"cottageplayer/internal/models"
	"cottageplayer/internal/services"
	"cottageplayer/internal/storage"
	"cottageplayer/internal/utils"
)

type MediaHandler struct {
	cfg   *config.Config
	media *services.MediaService
	store *storage.DiskStore
	log   *zap.SugaredLogger
}

// POST /upload (multipart: file, title?, description?, tags csv,
// playlists csv, duration_seconds?)
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "file missing")
	}
	if err := utils.ValidateFileHeader(fileHeader, h.cfg.Storage.MaxUploadBytes()); err != nil {
		return utils.JSONFromError(c, err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot open file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "cannot read file")
	}

	var duration *float64
	if raw := c.FormValue("duration_seconds"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			return utils.JSONError(c, fiber.StatusBadRequest, "invalid duration_seconds")
		}
		duration = &parsed
	}

	ownerID := user.ID
	created, err := h.media.Upload(c.Context(), services.UploadInput{
		Filename:        fileHeader.Filename,
		MimeType:        utils.DetectMIME(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data),
		Data:            data,
		Title:           c.FormValue("title"),
		Description:     c.FormValue("description"),
		Tags:            utils.SplitCSV(c.FormValue("tags")),
		PlaylistTags:    utils.SplitCSV(c.FormValue("playlists")),
		DurationSeconds: duration,
		OwnerID:         &ownerID,
	})
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusCreated, created)
}

// GET /media/* serves files from the sandboxed root, session required.
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	abs, err := h.store.Resolve(c.Params("*"))
	if err != nil {
		return utils.JSONError(c, fiber.StatusNotFound, "media not found")
	}
	return c.SendFile(abs)
}

type mediaUpdateRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Tags            *[]string `json:"tags"`
	PlaylistTags    *[]string `json:"playlist_tags"`
	DurationSeconds *float64  `json:"duration_seconds"`
}

// PUT /media/:filename
func (h *MediaHandler) Update(c *fiber.Ctx) error {
	m, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}

	var req mediaUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid body")
	}
	updated, err := h.media.Update(c.Context(), m.Filename, services.UpdateInput{
		Title:           req.Title,
		Description:     req.Description,
		Tags:            req.Tags,
		PlaylistTags:    req.PlaylistTags,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, updated)
}

// DELETE /media/:filename also removes the backing file and thumbnail.
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	m, err := h.requireMutable(c)
	if err != nil {
		return utils.JSONFromError(c, err)
	}
	if err := h.media.Delete(c.Context(), m.Filename); err != nil {
		return utils.JSONFromError(c, err)
	}
	return utils.JSONSuccess(c, fiber.StatusOK, fiber.Map{"filename": m.Filename})
}

// requireMutable loads the record and applies the ownership policy:
// uploader/admin role, or ownership of the record itself.
func (h *MediaHandler) requireMutable(c *fiber.Ctx) (*models.Media, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	record, err := h.media.ByFilename(c.Context(), c.Params("filename"))
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, utils.ErrNotFound
	}
	if !services.CanMutateMedia(user.ID, user.Role, record) {
		return nil, utils.ErrForbidden
	}
	return record, nil
}
