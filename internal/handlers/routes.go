package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cottageplayer/internal/auth"
)

// Setup registers every route with its access policy.
func Setup(app *fiber.App, h *Handlers, sessions *auth.SessionManager) {
	app.Get("/health", h.Health)

	app.Get("/auth/login", h.Auth.Login)
	app.Get("/auth/callback", h.Auth.Callback)
	app.Get("/auth/logout", h.Auth.Logout)
	app.Get("/auth/status", h.Auth.Status)
	app.Get("/auth/unauthorized", h.Auth.Unauthorized)
	app.Get("/auth-required", h.Auth.AuthRequired)

	app.Get("/", sessions.RequireAuth(), h.Library.Index)
	app.Get("/library/:category", sessions.RequireAuth(), h.Library.Category)
	app.Get("/movies", sessions.RequireAuth(), h.Library.CategoryNamed("movies"))
	app.Get("/tv", sessions.RequireAuth(), h.Library.CategoryNamed("tv"))
	app.Get("/photos", sessions.RequireAuth(), h.Library.CategoryNamed("photos"))

	app.Post("/upload", sessions.RequireUploader(), h.Media.Upload)
	app.Put("/media/:filename", sessions.RequireAuth(), h.Media.Update)
	app.Delete("/media/:filename", sessions.RequireAuth(), h.Media.Delete)
	app.Get("/media/*", sessions.RequireAuth(), h.Media.Serve)

	playlists := app.Group("/playlists", sessions.RequireAuth())
	playlists.Get("/", h.Playlist.List)
	playlists.Post("/", h.Playlist.Create)
	playlists.Get("/:id", h.Playlist.Get)
	playlists.Put("/:id", h.Playlist.Update)
	playlists.Delete("/:id", h.Playlist.Delete)
	playlists.Put("/:id/items", h.Playlist.SetItems)
	playlists.Post("/:id/items", h.Playlist.AddItem)
	playlists.Delete("/:id/items/:mediaID", h.Playlist.RemoveItem)

	admin := app.Group("/admin", sessions.RequireAdmin())
	admin.Get("/users", h.Admin.ListUsers)
	admin.Post("/users", h.Admin.AddUser)
	admin.Post("/users/:id/role", h.Admin.ChangeRole)
	admin.Post("/users/:id/active", h.Admin.ChangeActive)
}
