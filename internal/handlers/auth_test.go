package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abeltade/derese/internal/constants"
	"github.com/Abeltade/derese/internal/database"
	"github.com/Abeltade/derese/internal/dto"
	"github.com/Abeltade/derese/internal/middleware"
	"github.com/Abeltade/derese/internal/models"
	"github.com/Abeltade/derese/internal/repository"
	"github.com/Abeltade/derese/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo, bcrypt.MinCost)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func newSessionRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newSessionRouter()
	r.POST("/api/auth/signup", env.handler.Signup)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "newuser", response.Username)
}

func TestAuthHandler_Signup_DuplicateUsername(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newSessionRouter()
	r.POST("/api/auth/signup", env.handler.Signup)

	w := postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, r, "/api/auth/signup", map[string]string{
		"username": "alice",
		"password": "other",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The original credentials still work
	_, err := env.authService.Login(services.LoginInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newSessionRouter()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "existing", response.Username)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "existing",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newSessionRouter()
	r.POST("/api/auth/login", env.handler.Login)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_SessionGate(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Username: "alice",
		Password: "secret",
	})
	require.NoError(t, err)

	r := newSessionRouter()
	r.POST("/api/auth/login", env.handler.Login)
	r.POST("/api/auth/logout", env.handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), env.handler.GetCurrentUser)

	// Without a session the gate rejects the request
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Log in and retry with the session cookie
	w = postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sessionCookies := w.Result().Cookies()
	require.NotEmpty(t, sessionCookies)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range sessionCookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "alice", response.Username)

	// Logout clears the session
	w = postJSON(t, r, "/api/auth/logout", map[string]string{}, sessionCookies...)
	require.Equal(t, http.StatusOK, w.Code)
	clearedCookies := w.Result().Cookies()

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range clearedCookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Username: "current-user",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Username, response.Username)
}
