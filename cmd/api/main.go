package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sic/internal/config"
	"sic/internal/database"
	"sic/internal/domain/admin"
	"sic/internal/domain/audit"
	"sic/internal/domain/auth"
	"sic/internal/domain/record"
	"sic/internal/domain/report"
	"sic/internal/domain/storage"
	"sic/internal/pkg/jwt"
	"sic/internal/realtime"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := auth.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	recordRepo := record.NewRepository(db)
	if err := userRepo.Migrate(); err != nil {
		log.Fatal(err)
	}
	if err := auditRepo.Migrate(); err != nil {
		log.Fatal(err)
	}
	if err := recordRepo.Migrate(); err != nil {
		log.Fatal(err)
	}

	store, err := storage.NewStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	jwtService := jwt.New(cfg.JWTSecret, cfg.JWTAccessTTL)
	hub := realtime.NewHub(cfg.NotifyDebounce)

	authService := auth.NewService(userRepo, jwtService, cfg.ResetCodeTTL, cfg.ResetBlock)
	authHandler := auth.NewHandler(authService)

	recordService := record.NewService(recordRepo, auditRepo, hub)
	recordHandler := record.NewHandler(recordService)

	reportService := report.NewService(recordRepo)
	reportHandler := report.NewHandler(reportService)

	adminService := admin.NewService(userRepo, auditRepo, hub)
	adminHandler := admin.NewHandler(adminService)

	storageHandler := storage.NewHandler(store)
	wsHandler := realtime.NewWSHandler(hub, jwtService)

	r := gin.Default()
	r.Static("/static", store.PublicDir())
	r.GET("/ws", wsHandler.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(auth.JWTAuth(jwtService, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			recordHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			storageHandler.RegisterRoutes(protected)

			adminOnly := protected.Group("/")
			adminOnly.Use(auth.RequireAdmin())
			{
				recordHandler.RegisterAdminRoutes(adminOnly)
				adminHandler.RegisterRoutes(adminOnly.Group("/admin"))
			}
		}
	}

	log.Printf("Listening on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
