package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cottageplayer/internal/auth"
	"cottageplayer/internal/config"
	"cottageplayer/internal/services"
	"cottageplayer/internal/storage"
	"cottageplayer/internal/utils"
)

// Version reported by the health probe.
const Version = "1.0.0"

// Handlers bundles the route handlers with their shared collaborators.
type Handlers struct {
	Auth     *AuthHandler
	Library  *LibraryHandler
	Media    *MediaHandler
	Playlist *PlaylistHandler
	Admin    *AdminHandler
}

func New(
	cfg *config.Config,
	accounts *services.AccountService,
	media *services.MediaService,
	playlists *services.PlaylistService,
	library *services.LibraryService,
	store *storage.DiskStore,
	sessions *auth.SessionManager,
	resolver auth.IdentityResolver,
	states *auth.StateSigner,
	log *zap.SugaredLogger,
) *Handlers {
	return &Handlers{
		Auth:     &AuthHandler{cfg: cfg, accounts: accounts, sessions: sessions, resolver: resolver, states: states, log: log},
		Library:  &LibraryHandler{cfg: cfg, accounts: accounts, media: media, library: library, sessions: sessions},
		Media:    &MediaHandler{cfg: cfg, media: media, store: store, log: log},
		Playlist: &PlaylistHandler{playlists: playlists},
		Admin:    &AdminHandler{accounts: accounts},
	}
}

// currentUser returns the session snapshot placed by the auth middleware.
// A route reached without one fails closed with ErrUnauthenticated.
func currentUser(c *fiber.Ctx) (*auth.SessionUser, error) {
	if u := auth.UserFromCtx(c); u != nil {
		return u, nil
	}
	return nil, utils.ErrUnauthenticated
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}
