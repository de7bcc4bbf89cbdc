package ingest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/google/uuid"

	"github.com/chronoline/backend/internal/pkg/logger"
)

// Runner feeds a sequence of candidate events through the engine, strictly
// in order, one at a time. A single rejection never aborts the run; only a
// dead store does, since retrying writes against it produces no signal.
type Runner struct {
	engine *Engine
	log    *logger.Logger
}

func NewRunner(engine *Engine, baseLog *logger.Logger) *Runner {
	return &Runner{engine: engine, log: baseLog.With("service", "BatchRunner")}
}

// IngestAll processes events in order and returns the run statistics. Every
// rejection is recorded in the stats error list with its position.
func (r *Runner) IngestAll(ctx context.Context, events []any, actorID *uuid.UUID) *Stats {
	st := NewStats()
	r.log.Info("Starting batch ingestion", "events", len(events))

	seenTitles := map[string]struct{}{}
	for i, raw := range events {
		if r.engine.policy.SkipDuplicateTitles {
			if title := rawTitle(raw); title != "" {
				if _, seen := seenTitles[title]; seen {
					st.EventsSkipped++
					r.log.Warn("Skipping duplicate title in batch", "index", i+1, "title", title)
					continue
				}
				seenTitles[title] = struct{}{}
			}
		}

		id, err := r.engine.Ingest(ctx, raw, actorID, st)
		if err != nil {
			st.addError(Reason(err))
			r.log.Warn("Event rejected", "index", i+1, "total", len(events), "reason", Reason(err))
			if r.storeUnavailable(ctx, err) {
				r.log.Error("Store unreachable, aborting run", "processed", i+1, "remaining", len(events)-i-1)
				break
			}
			continue
		}
		r.log.Info("Event ingested", "index", i+1, "total", len(events), "id", id)
	}

	r.log.Info("Batch ingestion finished",
		"events_created", st.EventsCreated,
		"sources_created", st.SourcesCreated,
		"events_skipped", st.EventsSkipped,
		"image_fallbacks", st.ImageFallbacks,
		"errors", len(st.Errors),
	)
	return st
}

// rawTitle pulls the title out of an unvalidated candidate for batch-level
// dedup; invalid records fall through to the engine for a proper reject.
func rawTitle(raw any) string {
	rec, ok := raw.(map[string]any)
	if !ok {
		return ""
	}
	title, _ := rec["title"].(string)
	return title
}

// storeUnavailable reports whether the store itself is gone, the one
// condition that aborts a run instead of skipping the current item. Known
// connection sentinels decide fast; otherwise a ping settles it, since
// drivers wrap dial failures in their own error types. Only persistence
// rejects warrant the check: validation rejects say nothing about the
// store.
func (r *Runner) storeUnavailable(ctx context.Context, err error) bool {
	if !errors.Is(err, ErrPersistence) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	sqlDB, dbErr := r.engine.db.DB()
	if dbErr != nil {
		return true
	}
	return sqlDB.PingContext(ctx) != nil
}
