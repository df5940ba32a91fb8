package main

import (
	"log"

	"github.com/Abeltade/derese/internal/config"
	"github.com/Abeltade/derese/internal/constants"
	"github.com/Abeltade/derese/internal/database"
	"github.com/Abeltade/derese/internal/handlers"
	"github.com/Abeltade/derese/internal/middleware"
	"github.com/Abeltade/derese/internal/repository"
	"github.com/Abeltade/derese/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup cookie session middleware
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Wire repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	hierarchyRepo := repository.NewHierarchyRepository(db)
	farmerRepo := repository.NewFarmerRepository(db)

	authService := services.NewAuthService(userRepo, cfg.BcryptCost)
	hierarchyService := services.NewHierarchyService(hierarchyRepo)
	farmerService := services.NewFarmerService(farmerRepo, hierarchyRepo, cfg.ExportDir)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	hierarchyHandler := handlers.NewHierarchyHandler(hierarchyService)
	importHandler := handlers.NewImportHandler(hierarchyService)
	farmerHandler := handlers.NewFarmerHandler(farmerService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Farmer Registration API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Hierarchy routes (protected)
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

		// Bulk import routes (protected)
		hierarchy := api.Group("/hierarchy")
		hierarchy.Use(middleware.RequireAuth())
		{
			hierarchy.POST("/import", importHandler.ImportHierarchy)
			hierarchy.GET("/template", importHandler.DownloadTemplate)
		}

		// Farmer routes (protected)
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

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
