package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/chronoline/backend/internal/app"
	"github.com/chronoline/backend/internal/db"
	"github.com/chronoline/backend/internal/ingest"
	"github.com/chronoline/backend/internal/loader"
	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/repos"
	"github.com/chronoline/backend/internal/utils"
)

// Batch ingester: reads a JSON or CSV file of candidate events and runs it
// through the ingestion pipeline. Configured via environment, like the
// other entrypoints: INGEST_FILE (required), INGEST_FORMAT (json|csv|auto),
// INGEST_ACTOR_ID, INGEST_DRY_RUN.
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

	file := utils.GetEnv("INGEST_FILE", "", log)
	if file == "" {
		log.Fatal("INGEST_FILE is required")
	}
	format := strings.ToLower(utils.GetEnv("INGEST_FORMAT", "auto", log))
	if format == "auto" {
		switch {
		case strings.HasSuffix(file, ".json"):
			format = "json"
		case strings.HasSuffix(file, ".csv"):
			format = "csv"
		default:
			log.Fatal("Cannot auto-detect format, set INGEST_FORMAT", "file", file)
		}
	}

	var actorID *uuid.UUID
	if raw := utils.GetEnv("INGEST_ACTOR_ID", "", log); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			log.Fatal("INGEST_ACTOR_ID is not a valid UUID", "value", raw)
		}
		actorID = &id
	}
	cfg.Policy.DryRun = utils.GetEnvAsBool("INGEST_DRY_RUN", false, log)

	var events []any
	switch format {
	case "json":
		events, err = loader.LoadJSONFile(file)
	case "csv":
		events, err = loader.LoadCSVFile(file)
	default:
		log.Fatal("Unsupported format", "format", format)
	}
	if err != nil {
		log.Fatal("Failed to load events", "file", file, "error", err)
	}
	log.Info("Loaded candidate events", "file", file, "format", format, "count", len(events))

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	gdb := postgresService.DB()

	icons, err := ingest.LoadIconSet(cfg.IconDir, log)
	if err != nil {
		log.Fatal("Failed to load category icons", "error", err)
	}
	engine := ingest.NewEngine(
		gdb,
		log,
		repos.NewEventRepo(gdb, log),
		repos.NewEventSourceRepo(gdb, log),
		repos.NewEventLocationRepo(gdb, log),
		ingest.NewRepoRegistry(repos.NewCategoryRepo(gdb, log)),
		icons,
		cfg.Policy,
	)
	runner := ingest.NewRunner(engine, log)

	stats := runner.IngestAll(context.Background(), events, actorID)
	log.Info("Ingestion finished", "summary", stats.Summary(10))

	if len(stats.Errors) > 0 {
		os.Exit(1)
	}
}
