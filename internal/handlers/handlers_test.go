package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cottageplayer/internal/auth"
	"cottageplayer/internal/config"
	"cottageplayer/internal/database"
	"cottageplayer/internal/models"
	"cottageplayer/internal/repository"
	"cottageplayer/internal/services"
	"cottageplayer/internal/storage"
)

// stubResolver stands in for the identity provider: any login with the
// well-known code resolves to the configured identity.
type stubResolver struct {
	identity auth.Identity
}

func (r *stubResolver) AuthURL(state string) string {
	return "https://sso.example.com/authorize?state=" + url.QueryEscape(state)
}

func (r *stubResolver) Resolve(_ context.Context, code string) (*auth.Identity, error) {
	if code != "good-code" {
		return nil, fmt.Errorf("unknown code %q", code)
	}
	id := r.identity
	return &id, nil
}

type testEnv struct {
	t        *testing.T
	app      *fiber.App
	db       *gorm.DB
	store    *storage.DiskStore
	cfg      *config.Config
	h        *Handlers
	accounts *services.AccountService
	media    *services.MediaService
	resolver *stubResolver
	cookie   *http.Cookie
}

// newTestEnv configures option names so the category/option resolution
// paths are exercised; newTestEnvWithLibrary takes the library section
// as-is (pass only DefaultCategories for a shipped-defaults environment).
func newTestEnv(t *testing.T, autoSignup bool) *testEnv {
	return newTestEnvWithLibrary(t, autoSignup, config.LibraryConf{
		Categories:      config.DefaultCategories(),
		PlaylistOptions: []string{"Music"},
		TagOptions:      []string{"Photos"},
	})
}

func newTestEnvWithLibrary(t *testing.T, autoSignup bool, lib config.LibraryConf) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	log := zap.NewNop().Sugar()
	store, err := storage.NewDiskStore(t.TempDir(), log)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Name = "CottagePlayer"
	cfg.Auth.AllowAutoSignup = autoSignup
	cfg.Storage.MaxUploadMB = 8
	cfg.Library = lib

	accounts := services.NewAccountService(repository.NewUserRepo(db), log)
	media := services.NewMediaService(repository.NewMediaRepo(db), store, log)
	playlists := services.NewPlaylistService(repository.NewPlaylistRepo(db))
	library := services.NewLibraryService(cfg.Library)
	sessions := auth.NewSessionManager()
	resolver := &stubResolver{}
	states := auth.NewStateSigner("test-secret", time.Minute)

	app := fiber.New()
	h := New(cfg, accounts, media, playlists, library, store, sessions, resolver, states, log)
	Setup(app, h, sessions)

	return &testEnv{
		t: t, app: app, db: db, store: store, cfg: cfg, h: h,
		accounts: accounts, media: media, resolver: resolver,
	}
}

// do sends the request carrying the current session cookie and captures
// any refreshed cookie from the response.
func (e *testEnv) do(req *http.Request) *http.Response {
	e.t.Helper()
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	for _, c := range resp.Cookies() {
		if c.Name == "cottageplayer_session" {
			cc := *c
			e.cookie = &cc
		}
	}
	return resp
}

func (e *testEnv) get(target string) *http.Response {
	return e.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (e *testEnv) json(method, target string, payload any) *http.Response {
	e.t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(e.t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) form(method, target string, values url.Values) *http.Response {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

// login drives the full OAuth round trip against the stub resolver.
func (e *testEnv) login(identity auth.Identity) *http.Response {
	e.t.Helper()
	e.resolver.identity = identity

	resp := e.get("/auth/login")
	require.Equal(e.t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(e.t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(e.t, state)

	return e.get("/auth/callback?code=good-code&state=" + url.QueryEscape(state))
}

// loginAs provisions an active account with the given role and signs in.
func (e *testEnv) loginAs(email string, role models.Role) *models.User {
	e.t.Helper()
	user, _, err := e.accounts.AddOrActivate(context.Background(), email, "Test User", role)
	require.NoError(e.t, err)

	resp := e.login(auth.Identity{Email: email, Name: "Test User"})
	require.Equal(e.t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(e.t, "/", resp.Header.Get("Location"))
	return user
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

func envelopeData(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body := decodeBody(t, resp)
	require.Equal(t, "ok", body["status"], "body: %v", body)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "data: %v", body["data"])
	return data
}

func multipartBody(t *testing.T, filename, contentType string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (e *testEnv) upload(filename, contentType string, data []byte, fields map[string]string) *http.Response {
	e.t.Helper()
	buf, formType := multipartBody(e.t, filename, contentType, data, fields)
	req := httptest.NewRequest(http.MethodPost, "/upload", buf)
	req.Header.Set("Content-Type", formType)
	return e.do(req)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.get("/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestUnauthenticatedRequestsRedirect(t *testing.T) {
	env := newTestEnv(t, false)

	for _, target := range []string{"/", "/library/music", "/playlists", "/media/song.mp3"} {
		resp := env.get(target)
		assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode, target)
		assert.Equal(t, "/auth-required", resp.Header.Get("Location"), target)
	}

	resp := env.get("/auth/status")
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["authenticated"])
}

func TestLoginLogoutFlow(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs("viewer@example.com", models.RoleViewer)

	resp := env.get("/auth/status")
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["authenticated"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "viewer@example.com", user["email"])

	resp = env.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodeBody(t, resp)
	assert.Equal(t, "CottagePlayer", page["app_name"])
	assert.Equal(t, false, page["can_upload"])
	assert.Equal(t, false, page["is_admin"])

	resp = env.get("/auth/logout")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	resp = env.get("/auth/status")
	assert.Equal(t, false, decodeBody(t, resp)["authenticated"])
}

func TestCallbackRejectsForgedState(t *testing.T) {
	env := newTestEnv(t, false)
	env.resolver.identity = auth.Identity{Email: "viewer@example.com"}

	forged, err := auth.NewStateSigner("other-secret", time.Minute).Issue()
	require.NoError(t, err)

	resp := env.get("/auth/callback?code=good-code&state=" + url.QueryEscape(forged))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth-required", resp.Header.Get("Location"))

	resp = env.get("/auth/callback?state=whatever")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestUnknownIdentityIsTurnedAway(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.login(auth.Identity{Email: "stranger@example.com", Name: "Stranger"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/unauthorized", resp.Header.Get("Location"))

	// the rejected email is shown once, then cleared
	page := decodeBody(t, env.get("/auth/unauthorized"))
	assert.Equal(t, "stranger@example.com", page["email"])
	page = decodeBody(t, env.get("/auth/unauthorized"))
	assert.Nil(t, page["email"])

	// no account row was created
	user, err := env.accounts.ByEmail(context.Background(), "stranger@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAutoSignupCreatesViewer(t *testing.T) {
	env := newTestEnv(t, true)

	resp := env.login(auth.Identity{Email: "new@example.com", Name: "Newcomer"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	user, err := env.accounts.ByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleViewer, user.Role)
	assert.True(t, user.Active)
}

func TestUploadPolicyAndServing(t *testing.T) {
	env := newTestEnv(t, false)

	env.loginAs("viewer@example.com", models.RoleViewer)
	resp := env.upload("song.mp3", "audio/mpeg", []byte("audio-bytes"), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.loginAs("uploader@example.com", models.RoleUploader)
	resp = env.upload("song.mp3", "audio/mpeg", []byte("audio-bytes"), map[string]string{
		"title":            "A Song",
		"tags":             "rock, live",
		"duration_seconds": "183.5",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := envelopeData(t, resp)
	assert.Equal(t, "song.mp3", data["filename"])
	assert.Equal(t, "audio", data["media_type"])
	assert.Equal(t, []any{"rock", "live"}, data["tags"])
	assert.Equal(t, 183.5, data["duration_seconds"])

	resp = env.get("/media/song.mp3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "audio-bytes", string(raw))

	// nothing outside the media root is reachable
	for _, target := range []string{"/media/../secret.txt", "/media/%2e%2e/secret.txt", "/media/missing.mp3"} {
		resp := env.get(target)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, target)
	}
}

func TestUploadRejectsUnsupportedAndEmptyFiles(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs("uploader@example.com", models.RoleUploader)

	resp := env.upload("notes.txt", "text/plain", []byte("hello"), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.upload("empty.mp3", "audio/mpeg", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.upload("song.mp3", "audio/mpeg", []byte("x"), map[string]string{"duration_seconds": "-3"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// A session snapshot holds the role it was issued with; role changes only
// take effect once the home page refreshes the snapshot.
func TestRoleChangeAppliesAfterHomeRefresh(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.loginAs("promoted@example.com", models.RoleViewer)

	resp := env.upload("song.mp3", "audio/mpeg", []byte("x"), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	require.NoError(t, env.accounts.SetRole(context.Background(), user.ID, models.RoleUploader))

	// still the stale snapshot
	resp = env.upload("song.mp3", "audio/mpeg", []byte("x"), nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.get("/")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.upload("song.mp3", "audio/mpeg", []byte("x"), nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestDeactivatedUserIsSignedOutAtHome(t *testing.T) {
	env := newTestEnv(t, false)
	user := env.loginAs("gone@example.com", models.RoleViewer)

	require.NoError(t, env.accounts.SetActive(context.Background(), user.ID, false))

	resp := env.get("/")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/unauthorized", resp.Header.Get("Location"))

	page := decodeBody(t, env.get("/auth/unauthorized"))
	assert.Equal(t, "gone@example.com", page["email"])
}

func TestMediaOwnershipRules(t *testing.T) {
	env := newTestEnv(t, false)
	owner := env.loginAs("owner@example.com", models.RoleViewer)

	for _, name := range []string{"mine1.mp3", "mine2.mp3"} {
		_, err := env.media.Upload(context.Background(), services.UploadInput{
			Filename: name, MimeType: "audio/mpeg", Data: []byte("x"), OwnerID: &owner.ID,
		})
		require.NoError(t, err)
	}

	// owners may edit and delete their own uploads regardless of role
	title := "Mine"
	resp := env.json(http.MethodPut, "/media/mine1.mp3", map[string]any{"title": title})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Mine", envelopeData(t, resp)["title"])

	resp = env.do(httptest.NewRequest(http.MethodDelete, "/media/mine1.mp3", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// another viewer may not touch them
	env.loginAs("other@example.com", models.RoleViewer)
	resp = env.json(http.MethodPut, "/media/mine2.mp3", map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.do(httptest.NewRequest(http.MethodDelete, "/media/mine2.mp3", nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admins may
	env.loginAs("admin@example.com", models.RoleAdmin)
	resp = env.do(httptest.NewRequest(http.MethodDelete, "/media/mine2.mp3", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(httptest.NewRequest(http.MethodDelete, "/media/mine2.mp3", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlaylistEndpoints(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs("dj@example.com", models.RoleUploader)

	var mediaIDs []uint
	for _, name := range []string{"a.mp3", "b.mp3"} {
		resp := env.upload(name, "audio/mpeg", []byte("x"), nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		mediaIDs = append(mediaIDs, uint(envelopeData(t, resp)["id"].(float64)))
	}

	resp := env.json(http.MethodPost, "/playlists", map[string]any{"name": "Mix", "description": "late night"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	playlistID := uint(envelopeData(t, resp)["id"].(float64))

	target := fmt.Sprintf("/playlists/%d/items", playlistID)
	resp = env.json(http.MethodPut, target, map[string]any{"media_ids": []uint{mediaIDs[1], mediaIDs[0]}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items := envelopeData(t, resp)["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, float64(mediaIDs[1]), first["media_id"])
	assert.Equal(t, float64(0), first["position"])

	// duplicate ids reject the whole replace
	resp = env.json(http.MethodPut, target, map[string]any{"media_ids": []uint{mediaIDs[0], mediaIDs[0]}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/playlists/%d/items/%d", playlistID, mediaIDs[0]), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/playlists/%d/items/%d", playlistID, mediaIDs[0]), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.get(fmt.Sprintf("/playlists/%d", playlistID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := envelopeData(t, resp)
	assert.Equal(t, "Mix", got["name"])
	assert.Len(t, got["items"], 1)

	// an owned playlist is closed to other non-admin users
	env.loginAs("other@example.com", models.RoleViewer)
	resp = env.json(http.MethodPut, fmt.Sprintf("/playlists/%d", playlistID), map[string]any{"name": "Stolen"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.get(fmt.Sprintf("/playlists/%d", playlistID))
	assert.Equal(t, http.StatusOK, resp.StatusCode, "reading stays open to any signed-in user")

	resp = env.get("/playlists/notanumber")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminUserManagement(t *testing.T) {
	env := newTestEnv(t, false)

	env.loginAs("viewer@example.com", models.RoleViewer)
	resp := env.get("/admin/users")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	env.loginAs("admin@example.com", models.RoleAdmin)

	resp = env.form(http.MethodPost, "/admin/users", url.Values{
		"email": {"New@Example.com"},
		"name":  {"New Person"},
		"role":  {"uploader"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := envelopeData(t, resp)
	assert.Equal(t, true, data["created"])
	created := data["user"].(map[string]any)
	assert.Equal(t, "new@example.com", created["email"])
	assert.Equal(t, "uploader", created["role"])
	userID := uint(created["id"].(float64))

	// provisioning the same email again reports the existing row
	resp = env.form(http.MethodPost, "/admin/users", url.Values{"email": {"new@example.com"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, envelopeData(t, resp)["created"])

	resp = env.form(http.MethodPost, "/admin/users", url.Values{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = env.form(http.MethodPost, "/admin/users", url.Values{"email": {"x@y.z"}, "role": {"superuser"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.form(http.MethodPost, fmt.Sprintf("/admin/users/%d/role", userID), url.Values{"role": {"admin"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.form(http.MethodPost, fmt.Sprintf("/admin/users/%d/active", userID), url.Values{"active": {"false"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.get("/admin/users")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := envelopeData(t, resp)
	assert.Len(t, listing["users"], 3)
	assert.Equal(t, []any{"viewer", "uploader", "admin"}, listing["roles"])

	// the deactivated account can no longer sign in
	resp = env.login(auth.Identity{Email: "new@example.com"})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth/unauthorized", resp.Header.Get("Location"))
}

// With a "Music" playlist option configured, the music page narrows to
// that playlist tag on top of the type filter.
func TestCategoryPages(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs("dj@example.com", models.RoleUploader)

	resp := env.upload("song.mp3", "audio/mpeg", []byte("x"), map[string]string{"playlists": "Music"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = env.upload("loose.mp3", "audio/mpeg", []byte("x"), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// the music page pre-selects the Music playlist option
	page := decodeBody(t, env.get("/library/music"))
	items := page["media_items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "song.mp3", items[0].(map[string]any)["filename"])

	// home with only a type filter shows both
	page = decodeBody(t, env.get("/?type=audio/"))
	assert.Len(t, page["media_items"], 2)

	for _, target := range []string{"/movies", "/tv", "/photos"} {
		resp := env.get(target)
		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.Empty(t, decodeBody(t, resp)["media_items"], target)
	}

	resp = env.get("/library/podcasts")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// Out of the box no option names are configured, so category pages filter
// by type alone: a fresh upload with no tags shows up on the music page.
func TestMusicPageIncludesUntaggedUploadWithDefaults(t *testing.T) {
	env := newTestEnvWithLibrary(t, false, config.LibraryConf{Categories: config.DefaultCategories()})
	env.loginAs("dj@example.com", models.RoleUploader)

	resp := env.upload("song.mp3", "audio/mpeg", []byte("x"), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	page := decodeBody(t, env.get("/library/music"))
	items := page["media_items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "song.mp3", items[0].(map[string]any)["filename"])

	// other categories still exclude it by type
	for _, target := range []string{"/movies", "/photos"} {
		assert.Empty(t, decodeBody(t, env.get(target))["media_items"], target)
	}
}

// Routes registered without the session middleware must fail closed with
// 401 instead of dereferencing a missing snapshot.
func TestHandlersFailClosedWithoutSession(t *testing.T) {
	env := newTestEnv(t, false)

	bare := fiber.New()
	bare.Get("/", env.h.Library.Index)
	bare.Get("/library/:category", env.h.Library.Category)
	bare.Post("/upload", env.h.Media.Upload)
	bare.Put("/media/:filename", env.h.Media.Update)
	bare.Post("/playlists", env.h.Playlist.Create)
	bare.Put("/playlists/:id", env.h.Playlist.Update)

	cases := []*http.Request{
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodGet, "/library/music", nil),
		httptest.NewRequest(http.MethodPost, "/upload", nil),
		httptest.NewRequest(http.MethodPut, "/media/song.mp3", nil),
		httptest.NewRequest(http.MethodPost, "/playlists", nil),
		httptest.NewRequest(http.MethodPut, "/playlists/1", nil),
	}
	for _, req := range cases {
		resp, err := bare.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", req.Method, req.URL.Path)
	}
}
