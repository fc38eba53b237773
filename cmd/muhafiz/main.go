package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/muhafiz/muhafiz-api/app/repository"
	"github.com/muhafiz/muhafiz-api/internal/pkg/config"
	"github.com/muhafiz/muhafiz-api/internal/pkg/database"
	"github.com/muhafiz/muhafiz-api/internal/pkg/geodata"
	"github.com/muhafiz/muhafiz-api/internal/pkg/router"
	"github.com/muhafiz/muhafiz-api/internal/pkg/storage"
	"github.com/muhafiz/muhafiz-api/internal/pkg/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(context.Background(), cfg.Media)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Media storage backend: %s", store.Backend())

	app := NewApplication(cfg, db, store)
	err = app.Listen(cfg.ListenAddr())
	log.Fatal(err)
}

func NewApplication(cfg *config.Config, db *gorm.DB, store storage.Store) *fiber.App {
	// init fiber app
	app := fiber.New(fiber.Config{
		AppName:           "muhafiz-api",
		BodyLimit:         cfg.MaxUploadBytes,
		EnablePrintRoutes: cfg.IsDev(),
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app, router.Dependencies{
		Config:   cfg,
		DB:       db,
		Repos:    repository.NewFactory(db).GetRepositories(),
		Ingestor: upload.NewIngestor(store),
		Geodata:  geodata.NewClient(cfg.ZoneServiceURL, cfg.SafeRouteServiceURL, cfg.ProxyTimeout),
	})

	return app
}
