package main

import (
	"context"

	"github.com/FlorianMayr1208/present-picker/internal/auth"
	"github.com/FlorianMayr1208/present-picker/internal/browse"
	"github.com/FlorianMayr1208/present-picker/internal/catalog"
	"github.com/FlorianMayr1208/present-picker/internal/config"
	"github.com/FlorianMayr1208/present-picker/internal/db"
	"github.com/FlorianMayr1208/present-picker/internal/logger"
	"github.com/FlorianMayr1208/present-picker/internal/router"
	"github.com/FlorianMayr1208/present-picker/internal/storage"
	"github.com/FlorianMayr1208/present-picker/internal/transfer"

	"github.com/sirupsen/logrus"
)

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("❌ Config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// ───────────────────────── STORE ─────────────────────────
	var catalogRepo catalog.Repository
	var userRepo auth.UserRepository

	switch cfg.StoreDriver {
	case "postgres":
		pool, err := db.ConnectPostgres(cfg.DatabaseURL, log)
		if err != nil {
			log.Fatalf("❌ Postgres: %v", err)
		}
		defer pool.Close()

		catalogRepo = catalog.NewPostgresRepository(pool)
		userRepo = auth.NewPostgresUserRepository(pool)

	case "json":
		repo, err := catalog.LoadJSONCatalog(cfg.DataDir, cfg.SliderMax)
		if err != nil {
			log.Fatalf("❌ JSON catalog: %v", err)
		}
		catalogRepo = repo
		userRepo = auth.NewInMemoryUserRepository()

	default:
		log.Fatalf("❌ Unknown STORE_DRIVER: %s", cfg.StoreDriver)
	}

	// ───────────────────────── STORAGE ─────────────────────────
	if cfg.R2Endpoint == "" {
		log.Fatal("❌ R2_ENDPOINT is not set")
	}
	r2Client, err := storage.NewR2Client(context.Background(), storage.Settings{
		Endpoint:  cfg.R2Endpoint,
		AccessKey: cfg.R2AccessKey,
		SecretKey: cfg.R2SecretKey,
		Bucket:    cfg.R2Bucket,
		BaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		log.Fatalf("❌ R2 init failed: %v", err)
	}

	// ───────────────────────── AUTH ─────────────────────────
	auth.ConfigureJWT(cfg.JWTSecret)

	authService := auth.NewService(userRepo)
	if cfg.AdminEmail != "" {
		if err := authService.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("❌ Admin seed failed: %v", err)
		}
	}

	// ───────────────────────── SERVICES ─────────────────────────
	catalogService := catalog.NewService(catalogRepo, cfg.SliderMax)
	browseService := browse.NewService(catalogService)
	transferService := transfer.NewService(catalogService, log)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(router.Handlers{
		Auth:     auth.NewHandler(authService),
		Browse:   browse.NewHandler(browseService),
		Admin:    catalog.NewAdminHandler(catalogService, r2Client),
		Transfer: transfer.NewHandler(transferService),
	})

	// ───────────────────────── START ─────────────────────────
	log.Infof("🚀 API running at http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
