package main

import (
	"fmt"
	"os"

	"github.com/chronoline/backend/internal/app"
	"github.com/chronoline/backend/internal/db"
	"github.com/chronoline/backend/internal/handlers"
	"github.com/chronoline/backend/internal/ingest"
	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/repos"
	"github.com/chronoline/backend/internal/server"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	gdb := postgresService.DB()

	log.Info("Setting up repos...")
	eventRepo := repos.NewEventRepo(gdb, log)
	eventSourceRepo := repos.NewEventSourceRepo(gdb, log)
	eventLocationRepo := repos.NewEventLocationRepo(gdb, log)
	categoryRepo := repos.NewCategoryRepo(gdb, log)

	log.Info("Setting up ingestion pipeline...")
	icons, err := ingest.LoadIconSet(cfg.IconDir, log)
	if err != nil {
		log.Fatal("Failed to load category icons", "error", err)
	}
	registry := ingest.NewRepoRegistry(categoryRepo)
	engine := ingest.NewEngine(gdb, log, eventRepo, eventSourceRepo, eventLocationRepo, registry, icons, cfg.Policy)
	runner := ingest.NewRunner(engine, log)

	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:    cfg.AllowOrigins,
		EventHandler:    handlers.NewEventHandler(eventRepo, eventSourceRepo, eventLocationRepo, log),
		CategoryHandler: handlers.NewCategoryHandler(categoryRepo, log),
		IngestHandler:   handlers.NewIngestHandler(runner, log),
	})

	addr := ":" + cfg.HTTPPort
	log.Info("Starting HTTP server", "addr", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("HTTP server exited", "error", err)
	}
}
