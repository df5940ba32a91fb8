package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abeltade/derese/internal/constants"
	"github.com/Abeltade/derese/internal/database"
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

// apiTestEnv is a fully wired router with a logged-in session, used by
// the hierarchy and farmer handler tests.
type apiTestEnv struct {
	db               *gorm.DB
	router           *gin.Engine
	cookies          []*http.Cookie
	hierarchyService *services.HierarchyService
	farmerService    *services.FarmerService
}

func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Woreda{},
		&models.Kebele{},
		&models.Farmer{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	hierarchyRepo := repository.NewHierarchyRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)

	authService := services.NewAuthService(userRepo, bcrypt.MinCost)
	hierarchyService := services.NewHierarchyService(hierarchyRepo)
	farmerService := services.NewFarmerService(farmerRepo, hierarchyRepo, t.TempDir())

	authHandler := NewAuthHandler(authService)
	hierarchyHandler := NewHierarchyHandler(hierarchyService)
	importHandler := NewImportHandler(hierarchyService)
	farmerHandler := NewFarmerHandler(farmerService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		woredas := api.Group("/woredas")
		woredas.Use(middleware.RequireAuth())
		{
			woredas.GET("", hierarchyHandler.ListWoredas)
			woredas.POST("", hierarchyHandler.CreateWoreda)
			woredas.PUT("/:id", hierarchyHandler.UpdateWoreda)
			woredas.DELETE("/:id", hierarchyHandler.DeleteWoreda)
			woredas.GET("/:id/kebeles", hierarchyHandler.ListKebeles)
			woredas.POST("/:id/kebeles", hierarchyHandler.AddKebeles)
		}

		kebeles := api.Group("/kebeles")
		kebeles.Use(middleware.RequireAuth())
		{
			kebeles.PUT("/:id", hierarchyHandler.UpdateKebele)
			kebeles.DELETE("/:id", hierarchyHandler.DeleteKebele)
		}

		hierarchy := api.Group("/hierarchy")
		hierarchy.Use(middleware.RequireAuth())
		{
			hierarchy.POST("/import", importHandler.ImportHierarchy)
			hierarchy.GET("/template", importHandler.DownloadTemplate)
		}

		farmers := api.Group("/farmers")
		farmers.Use(middleware.RequireAuth())
		{
			farmers.GET("", farmerHandler.ListFarmers)
			farmers.POST("", farmerHandler.RegisterFarmer)
			farmers.GET("/export", farmerHandler.ExportFarmersCSV)
			farmers.PATCH("/:id", farmerHandler.UpdateFarmer)
			farmers.DELETE("/:id", farmerHandler.DeleteFarmer)
		}
	}

	env := apiTestEnv{
		db:               db,
		router:           r,
		hierarchyService: hierarchyService,
		farmerService:    farmerService,
	}

	// Create a user and log in so protected routes are reachable
	_, err = authService.Register(services.RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	env.cookies = w.Result().Cookies()
	require.NotEmpty(t, env.cookies)

	return env
}

func marshalBody(t *testing.T, payload interface{}) io.Reader {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func (env apiTestEnv) do(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env apiTestEnv) doJSON(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body := marshalBody(t, payload)
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range env.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}
