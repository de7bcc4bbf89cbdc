package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/repos"
	"github.com/chronoline/backend/internal/timeutil"
	"github.com/chronoline/backend/internal/types"
)

// Policy names the admission choices left to deployment instead of baking
// them in as side effects.
type Policy struct {
	// RequireSources rejects events whose candidate source list contains no
	// valid entry. Off by default: sources are optional at the persistence
	// boundary, producers that want >=1 opt in.
	RequireSources bool
	// TrustSuppliedImages persists a supplied image URL as-is, with no
	// reachability check. When off the supplied URL is discarded and the
	// category fallback applies. There is never network I/O either way.
	TrustSuppliedImages bool
	// SkipDuplicateTitles makes the batch runner drop candidates whose title
	// already appeared earlier in the same run. The engine itself never
	// deduplicates: identity assignment is always fresh.
	SkipDuplicateTitles bool
	// DryRun validates and resolves but writes nothing; counters report what
	// would have happened.
	DryRun bool
}

func DefaultPolicy() Policy {
	return Policy{TrustSuppliedImages: true}
}

// Engine turns one candidate event into durable rows: validate, check the
// category registry, resolve the image, assign an identifier and commit the
// event with its sources and primary location as a single unit of work.
type Engine struct {
	db        *gorm.DB
	log       *logger.Logger
	events    repos.EventRepo
	sources   repos.EventSourceRepo
	locations repos.EventLocationRepo
	registry  CategoryRegistry
	icons     *IconSet
	policy    Policy
}

func NewEngine(
	db *gorm.DB,
	baseLog *logger.Logger,
	events repos.EventRepo,
	sources repos.EventSourceRepo,
	locations repos.EventLocationRepo,
	registry CategoryRegistry,
	icons *IconSet,
	policy Policy,
) *Engine {
	return &Engine{
		db:        db,
		log:       baseLog.With("service", "IngestEngine"),
		events:    events,
		sources:   sources,
		locations: locations,
		registry:  registry,
		icons:     icons,
		policy:    policy,
	}
}

// Ingest admits a single raw candidate. On success it returns the new event
// id; on rejection it returns a taxonomy-tagged error and guarantees no
// partial state survives. Counters on st are updated either way; st is
// run-scoped state owned by the caller, never shared between runs.
func (e *Engine) Ingest(ctx context.Context, raw any, actorID *uuid.UUID, st *Stats) (uuid.UUID, error) {
	ev, err := parseEvent(raw)
	if err != nil {
		st.EventsSkipped++
		return uuid.Nil, err
	}

	// Per-source validation is best-effort: a bad citation is skipped with a
	// warning, it never sinks the event.
	valid := make([]*CandidateSource, 0, len(ev.Sources))
	for i, rawSrc := range ev.Sources {
		src, srcErr := parseSource(rawSrc, fmt.Sprintf("sources[%d]", i))
		if srcErr != nil {
			e.log.Warn("Skipping invalid source", "event", ev.Title, "reason", Reason(srcErr))
			continue
		}
		valid = append(valid, src)
	}
	if e.policy.RequireSources && len(valid) == 0 {
		st.EventsSkipped++
		return uuid.Nil, StructuralError("event has no valid sources")
	}

	exists, err := e.registry.Exists(ctx, ev.Category)
	if err != nil {
		st.EventsSkipped++
		return uuid.Nil, PersistenceError(fmt.Errorf("category registry lookup: %w", err))
	}
	if !exists {
		st.EventsSkipped++
		return uuid.Nil, ReferentialError(fmt.Sprintf("category '%s' not found in registry", ev.Category))
	}

	imageURL := e.resolveImage(ev, st)

	eventID := uuid.New()

	if e.policy.DryRun {
		e.log.Info("[dry run] would create event", "title", ev.Title, "id", eventID, "sources", len(valid))
		st.EventsCreated++
		st.SourcesCreated += len(valid)
		return eventID, nil
	}

	inserted := 0
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &types.Event{
			ID:               eventID,
			TimelineSeconds:  timeutil.UnixToTimeline(ev.UnixSeconds).String(),
			UnixSeconds:      ev.UnixSeconds,
			UnixNanos:        ev.UnixNanos,
			PrecisionLevel:   ev.Precision,
			UncertaintyRange: ev.UncertaintyRange,
			Title:            ev.Title,
			Description:      ev.Description,
			Category:         ev.Category,
			ImageURL:         imageURL,
			ImportanceScore:  ev.ImportanceScore,
			CreatedByUserID:  actorID,
		}
		if _, err := e.events.Create(ctx, tx, []*types.Event{row}); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		for _, src := range valid {
			srcRow := &types.EventSource{
				ID:               uuid.New(),
				EventID:          eventID,
				SourceType:       src.SourceType,
				Title:            src.Title,
				URL:              src.URL,
				Citation:         src.Citation,
				CredibilityScore: src.CredibilityScore,
				AddedByUserID:    actorID,
			}
			if _, err := e.sources.Create(ctx, tx, []*types.EventSource{srcRow}); err != nil {
				return fmt.Errorf("insert source: %w", err)
			}
			inserted++
		}

		loc, err := buildLocation(eventID, ev)
		if err != nil {
			return err
		}
		if _, err := e.locations.Create(ctx, tx, []*types.EventLocation{loc}); err != nil {
			return fmt.Errorf("insert location: %w", err)
		}
		return nil
	})
	if err != nil {
		// The whole unit of work rolled back: event, sources and location are
		// all-or-nothing.
		st.EventsSkipped++
		tagged := PersistenceError(err)
		e.log.Error("Event ingestion rolled back", "title", ev.Title, "error", err)
		return uuid.Nil, tagged
	}

	st.EventsCreated++
	st.SourcesCreated += inserted
	e.log.Info("Created event", "title", ev.Title, "id", eventID, "sources", inserted)
	return eventID, nil
}

// resolveImage picks the persisted image URL: the supplied one when policy
// trusts it, else the category placeholder, else nothing.
func (e *Engine) resolveImage(ev *CandidateEvent, st *Stats) *string {
	if ev.ImageURL != nil && e.policy.TrustSuppliedImages {
		return ev.ImageURL
	}
	if url, ok := e.icons.Resolve(ev.Category); ok {
		e.log.Debug("Using category icon fallback", "category", ev.Category, "icon", url)
		st.ImageFallbacks++
		return &url
	}
	return nil
}

func buildLocation(eventID uuid.UUID, ev *CandidateEvent) (*types.EventLocation, error) {
	name := "Unknown"
	if ev.LocationName != nil {
		name = *ev.LocationName
	}
	point, err := json.Marshal(map[string]any{
		"type":        "Point",
		"coordinates": []float64{ev.Longitude, ev.Latitude},
	})
	if err != nil {
		return nil, fmt.Errorf("encode location point: %w", err)
	}
	return &types.EventLocation{
		ID:           uuid.New(),
		EventID:      eventID,
		LocationName: name,
		LocationType: "primary",
		IsPrimary:    true,
		Latitude:     ev.Latitude,
		Longitude:    ev.Longitude,
		GeoJSON:      datatypes.JSON(point),
	}, nil
}
