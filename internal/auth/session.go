package auth

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"cottageplayer/internal/models"
)

// SessionUser is the denormalized snapshot of a user's authorization
// fields held for the session's lifetime. It is not a live join: role
// changes only become visible at the next re-sync point.
type SessionUser struct {
	Email   string      `json:"email"`
	Name    string      `json:"name,omitempty"`
	Picture string      `json:"picture,omitempty"`
	Role    models.Role `json:"role"`
	ID      uint        `json:"id"`
}

func SnapshotOf(u *models.User) SessionUser {
	return SessionUser{
		Email:   u.Email,
		Name:    u.Name,
		Picture: u.Picture,
		Role:    u.Role,
		ID:      u.ID,
	}
}

const (
	sessionUserKey        = "user"
	unauthorizedEmailKey  = "unauthorized_email"
	sessionCookieName     = "cottageplayer_session"
	defaultSessionExpires = 24 * time.Hour
)

// SessionManager wraps the fiber session store with typed accessors for
// the snapshot and the stashed unauthorized email.
type SessionManager struct {
	store *session.Store
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		store: session.New(session.Config{
			KeyLookup:      "cookie:" + sessionCookieName,
			Expiration:     defaultSessionExpires,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
	}
}

func (m *SessionManager) User(c *fiber.Ctx) (*SessionUser, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, false
	}
	raw, ok := sess.Get(sessionUserKey).(string)
	if !ok || raw == "" {
		return nil, false
	}
	var u SessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (m *SessionManager) SetUser(c *fiber.Ctx, u SessionUser) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	sess.Set(sessionUserKey, string(raw))
	sess.Delete(unauthorizedEmailKey)
	return sess.Save()
}

// Clear drops the whole session, optionally stashing the rejected email so
// the unauthorized page can display it.
func (m *SessionManager) Clear(c *fiber.Ctx, unauthorizedEmail string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Reset(); err != nil {
		return err
	}
	if unauthorizedEmail != "" {
		sess.Set(unauthorizedEmailKey, unauthorizedEmail)
	}
	return sess.Save()
}

// PopUnauthorizedEmail reads and removes the stashed email.
func (m *SessionManager) PopUnauthorizedEmail(c *fiber.Ctx) string {
	sess, err := m.store.Get(c)
	if err != nil {
		return ""
	}
	email, _ := sess.Get(unauthorizedEmailKey).(string)
	if email != "" {
		sess.Delete(unauthorizedEmailKey)
		_ = sess.Save()
	}
	return email
}
