package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/bookmarks-api/internal/api"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/config"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/repository"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/database/service"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/dto"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/handler"
	"github.com/EgehanKilicarslan/bookmarks-api/internal/middleware"
)

const (
	HealthEndpoint    = "/healthz"
	SignupEndpoint    = "/users"
	LoginEndpoint     = "/users/login"
	MeEndpoint        = "/users/me"
	TagsEndpoint      = "/tags"
	BookmarksEndpoint = "/bookmarks"
)

// TestApp is the full HTTP stack on top of an in-memory database
type TestApp struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Store   repository.Store
	Clock   *Clock
	Config  *config.Config
	Auth    service.AuthService
	Limiter middleware.LoginLimiter
}

// NewTestApp wires the router the same way main does, with a no-op login
// limiter unless one is given
func NewTestApp(t *testing.T, limiter ...middleware.LoginLimiter) *TestApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := TestConfig()
	log := TestLogger()
	db := NewTestDB(t)
	store := repository.NewStore(db)
	clock := NewClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	var l middleware.LoginLimiter = &middleware.NoOpLoginLimiter{}
	if len(limiter) > 0 {
		l = limiter[0]
	}

	authService := service.NewAuthServiceWithClock(store, cfg, log, clock.Now)
	tagService := service.NewTagServiceWithClock(store, log, clock.Now)
	bookmarkService := service.NewBookmarkServiceWithClock(store, log, clock.Now)

	router := api.SetupRouter(api.Handlers{
		Users:     handler.NewUserHandler(authService, l, log),
		Tags:      handler.NewTagHandler(tagService, log),
		Bookmarks: handler.NewBookmarkHandler(bookmarkService, log),
		Auth:      middleware.NewAuthMiddleware(authService, log),
	}, cfg.CORSAllowedOrigins, log)

	return &TestApp{
		Router:  router,
		DB:      db,
		Store:   store,
		Clock:   clock,
		Config:  cfg,
		Auth:    authService,
		Limiter: l,
	}
}

// Do sends a request through the router. body is JSON encoded unless it is
// nil or already a string.
func (a *TestApp) Do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

// Signup creates an account and fails the test unless it returns 201
func (a *TestApp) Signup(t *testing.T, email, password string) dto.UserOut {
	t.Helper()

	w := a.Do(t, http.MethodPost, SignupEndpoint, "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out dto.UserOut
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// Login returns an access token for an existing account
func (a *TestApp) Login(t *testing.T, email, password string) string {
	t.Helper()

	w := a.Do(t, http.MethodPost, LoginEndpoint, "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out dto.Token
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.AccessToken
}

// NewUser signs up and logs in, returning the access token
func (a *TestApp) NewUser(t *testing.T, email string) string {
	t.Helper()
	a.Signup(t, email, "password123")
	return a.Login(t, email, "password123")
}

// CreateBookmark posts a bookmark and decodes the response
func (a *TestApp) CreateBookmark(t *testing.T, token, url string, tags ...string) dto.BookmarkOut {
	t.Helper()

	if tags == nil {
		tags = []string{}
	}
	w := a.Do(t, http.MethodPost, BookmarksEndpoint, token, map[string]any{"url": url, "tags": tags})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out dto.BookmarkOut
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// BookmarkPath returns /bookmarks/{id}
func BookmarkPath(id uint) string {
	return fmt.Sprintf("%s/%d", BookmarksEndpoint, id)
}

// TagPath returns /tags/{id}
func TagPath(id uint) string {
	return fmt.Sprintf("%s/%d", TagsEndpoint, id)
}

// Decode unmarshals a recorded response body
func Decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
