package ingest

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/repos"
	"github.com/chronoline/backend/internal/repos/testutil"
	"github.com/chronoline/backend/internal/types"
)

type engineFixture struct {
	db     *gorm.DB
	engine *Engine
	stats  *Stats
}

func newEngineFixture(t *testing.T, icons map[string]string, policy Policy) *engineFixture {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	ctx := context.Background()
	testutil.SeedCategory(t, ctx, gdb, "space_exploration", "Space Programs")
	testutil.SeedLeafCategory(t, ctx, gdb, "space_exploration", "space_exploration.moon_landing", "Moon Exploration")
	testutil.SeedCategory(t, ctx, gdb, "medicine", "Medicine")
	testutil.SeedLeafCategory(t, ctx, gdb, "medicine", "medicine.vaccines", "Vaccines")

	categoryRepo := repos.NewCategoryRepo(gdb, log)
	engine := NewEngine(
		gdb,
		log,
		repos.NewEventRepo(gdb, log),
		repos.NewEventSourceRepo(gdb, log),
		repos.NewEventLocationRepo(gdb, log),
		NewRepoRegistry(categoryRepo),
		NewIconSet(icons),
		policy,
	)
	return &engineFixture{db: gdb, engine: engine, stats: NewStats()}
}

func (f *engineFixture) counts(t *testing.T) (events, sources, locations int64) {
	t.Helper()
	for _, c := range []struct {
		model any
		out   *int64
	}{
		{&types.Event{}, &events},
		{&types.EventSource{}, &sources},
		{&types.EventLocation{}, &locations},
	} {
		if err := f.db.Model(c.model).Count(c.out).Error; err != nil {
			t.Fatalf("count rows: %v", err)
		}
	}
	return events, sources, locations
}

func TestIngestRejectsInvalidWithoutWrites(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	for _, field := range []string{"title", "unix_seconds", "precision_level", "latitude", "longitude", "category"} {
		ev := validCandidate()
		delete(ev, field)
		_, err := f.engine.Ingest(context.Background(), ev, nil, f.stats)
		if err == nil {
			t.Fatalf("missing %s: expected reject", field)
		}
		if !errors.Is(err, ErrStructural) {
			t.Fatalf("missing %s: error %v should be structural", field, err)
		}
	}

	events, sources, locations := f.counts(t)
	if events != 0 || sources != 0 || locations != 0 {
		t.Fatalf("rejects must not write: events=%d sources=%d locations=%d", events, sources, locations)
	}
	if f.stats.EventsSkipped != 6 {
		t.Fatalf("EventsSkipped = %d, want 6", f.stats.EventsSkipped)
	}
}

func TestIngestRejectsUnknownCategoryAsReferential(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	ev := validCandidate()
	ev["category"] = "alchemy.transmutation"
	_, err := f.engine.Ingest(context.Background(), ev, nil, f.stats)
	if !errors.Is(err, ErrReferential) {
		t.Fatalf("error %v should be referential", err)
	}
	if errors.Is(err, ErrStructural) {
		t.Fatalf("referential reject must not be tagged structural")
	}

	// Parent nodes are not leaves, so they are not valid event categories.
	ev = validCandidate()
	ev["category"] = "space_exploration"
	if _, err := f.engine.Ingest(context.Background(), ev, nil, f.stats); !errors.Is(err, ErrReferential) {
		t.Fatalf("parent category: error %v should be referential", err)
	}

	if events, _, _ := f.counts(t); events != 0 {
		t.Fatalf("referential rejects must not write, got %d events", events)
	}
}

func TestIngestAppliesFallbackImage(t *testing.T) {
	f := newEngineFixture(t, map[string]string{
		"space_exploration": "/images/categories/space_exploration.svg",
	}, DefaultPolicy())

	id, err := f.engine.Ingest(context.Background(), validCandidate(), nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var row types.Event
	if err := f.db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.ImageURL == nil || *row.ImageURL != "/images/categories/space_exploration.svg" {
		t.Fatalf("ImageURL = %v, want parent category icon", row.ImageURL)
	}
	if f.stats.ImageFallbacks != 1 {
		t.Fatalf("ImageFallbacks = %d, want 1", f.stats.ImageFallbacks)
	}
}

func TestIngestTrustsSuppliedImage(t *testing.T) {
	f := newEngineFixture(t, map[string]string{
		"space_exploration": "/images/categories/space_exploration.svg",
	}, DefaultPolicy())

	ev := validCandidate()
	ev["image_url"] = "https://upload.example.org/apollo11.jpg"
	id, err := f.engine.Ingest(context.Background(), ev, nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var row types.Event
	if err := f.db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.ImageURL == nil || *row.ImageURL != "https://upload.example.org/apollo11.jpg" {
		t.Fatalf("ImageURL = %v, want the supplied URL unchanged", row.ImageURL)
	}
	if f.stats.ImageFallbacks != 0 {
		t.Fatalf("ImageFallbacks = %d, want 0", f.stats.ImageFallbacks)
	}
}

func TestIngestUntrustedImagePolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.TrustSuppliedImages = false
	f := newEngineFixture(t, map[string]string{
		"space_exploration": "/images/categories/space_exploration.svg",
	}, policy)

	ev := validCandidate()
	ev["image_url"] = "https://upload.example.org/apollo11.jpg"
	id, err := f.engine.Ingest(context.Background(), ev, nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var row types.Event
	if err := f.db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.ImageURL == nil || *row.ImageURL != "/images/categories/space_exploration.svg" {
		t.Fatalf("ImageURL = %v, want fallback under untrusted policy", row.ImageURL)
	}
	if f.stats.ImageFallbacks != 1 {
		t.Fatalf("ImageFallbacks = %d, want 1", f.stats.ImageFallbacks)
	}
}

func TestIngestNoImageNoFallback(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	id, err := f.engine.Ingest(context.Background(), validCandidate(), nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	var row types.Event
	if err := f.db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.ImageURL != nil {
		t.Fatalf("ImageURL = %v, want nil when neither image nor fallback exists", *row.ImageURL)
	}
}

func TestIngestSkipsInvalidSourcesBestEffort(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	ev := validCandidate()
	ev["sources"] = []any{
		map[string]any{"url": "https://example.org/a", "source_type": "wikipedia"},
		map[string]any{"citation": "missing url and title"},
		map[string]any{"title": "NASA Mission Report", "credibility_score": 90},
	}
	id, err := f.engine.Ingest(context.Background(), ev, nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	n, err := repos.NewEventSourceRepo(f.db, testutil.Logger(t)).CountByEventID(context.Background(), nil, id)
	if err != nil {
		t.Fatalf("count sources: %v", err)
	}
	if n != 2 {
		t.Fatalf("persisted sources = %d, want 2 (bad one skipped)", n)
	}
	if f.stats.SourcesCreated != 2 {
		t.Fatalf("SourcesCreated = %d, want 2", f.stats.SourcesCreated)
	}
	if f.stats.EventsCreated != 1 {
		t.Fatalf("EventsCreated = %d, want 1", f.stats.EventsCreated)
	}
}

func TestIngestRequireSourcesPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.RequireSources = true
	f := newEngineFixture(t, nil, policy)

	_, err := f.engine.Ingest(context.Background(), validCandidate(), nil, f.stats)
	if !errors.Is(err, ErrStructural) {
		t.Fatalf("zero-source event under RequireSources: error %v should be structural", err)
	}

	ev := validCandidate()
	ev["sources"] = []any{map[string]any{"url": "https://example.org"}}
	if _, err := f.engine.Ingest(context.Background(), ev, nil, f.stats); err != nil {
		t.Fatalf("one valid source should satisfy RequireSources: %v", err)
	}
}

func TestIngestWritesPrimaryLocation(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	ev := validCandidate()
	ev["latitude"] = 48.8566
	ev["longitude"] = 2.3522
	ev["location_name"] = "Paris"
	id, err := f.engine.Ingest(context.Background(), ev, nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var loc types.EventLocation
	if err := f.db.First(&loc, "event_id = ?", id).Error; err != nil {
		t.Fatalf("load location: %v", err)
	}
	if !loc.IsPrimary || loc.LocationType != "primary" {
		t.Fatalf("location not marked primary: %+v", loc)
	}
	if loc.LocationName != "Paris" {
		t.Fatalf("LocationName = %q, want Paris", loc.LocationName)
	}
	if math.Abs(loc.Latitude-48.8566) > 1e-9 || math.Abs(loc.Longitude-2.3522) > 1e-9 {
		t.Fatalf("coordinates = (%v, %v)", loc.Latitude, loc.Longitude)
	}
}

func TestIngestLocationNameDefaultsToUnknown(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	id, err := f.engine.Ingest(context.Background(), validCandidate(), nil, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	var loc types.EventLocation
	if err := f.db.First(&loc, "event_id = ?", id).Error; err != nil {
		t.Fatalf("load location: %v", err)
	}
	if loc.LocationName != "Unknown" {
		t.Fatalf("LocationName = %q, want Unknown", loc.LocationName)
	}
}

func TestIngestNeverDeduplicates(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	id1, err := f.engine.Ingest(context.Background(), validCandidate(), nil, f.stats)
	if err != nil {
		t.Fatalf("first Ingest: %v", err)
	}
	id2, err := f.engine.Ingest(context.Background(), validCandidate(), nil, f.stats)
	if err != nil {
		t.Fatalf("second Ingest: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("identity assignment must be fresh per attempt")
	}
	if events, _, _ := f.counts(t); events != 2 {
		t.Fatalf("events = %d, want 2 distinct rows", events)
	}
}

func TestIngestAttributesActor(t *testing.T) {
	f := newEngineFixture(t, nil, DefaultPolicy())

	actor := uuid.New()
	ev := validCandidate()
	ev["sources"] = []any{map[string]any{"url": "https://example.org"}}
	id, err := f.engine.Ingest(context.Background(), ev, &actor, f.stats)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var row types.Event
	if err := f.db.First(&row, "id = ?", id).Error; err != nil {
		t.Fatalf("load event: %v", err)
	}
	if row.CreatedByUserID == nil || *row.CreatedByUserID != actor {
		t.Fatalf("CreatedByUserID = %v, want %v", row.CreatedByUserID, actor)
	}
	var src types.EventSource
	if err := f.db.First(&src, "event_id = ?", id).Error; err != nil {
		t.Fatalf("load source: %v", err)
	}
	if src.AddedByUserID == nil || *src.AddedByUserID != actor {
		t.Fatalf("AddedByUserID = %v, want %v", src.AddedByUserID, actor)
	}
}

func TestIngestDryRunWritesNothing(t *testing.T) {
	policy := DefaultPolicy()
	policy.DryRun = true
	f := newEngineFixture(t, nil, policy)

	ev := validCandidate()
	ev["sources"] = []any{map[string]any{"url": "https://example.org"}}
	if _, err := f.engine.Ingest(context.Background(), ev, nil, f.stats); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	events, sources, locations := f.counts(t)
	if events != 0 || sources != 0 || locations != 0 {
		t.Fatalf("dry run wrote rows: events=%d sources=%d locations=%d", events, sources, locations)
	}
	if f.stats.EventsCreated != 1 || f.stats.SourcesCreated != 1 {
		t.Fatalf("dry run should count would-be writes, got %+v", f.stats)
	}
}

// failAfterSourceRepo fails source inserts after the first one, simulating a
// mid-transaction persistence fault.
type failAfterSourceRepo struct {
	repos.EventSourceRepo
	calls int
}

func (r *failAfterSourceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.EventSource) ([]*types.EventSource, error) {
	r.calls++
	if r.calls > 1 {
		return nil, errors.New("simulated insert failure")
	}
	return r.EventSourceRepo.Create(ctx, tx, rows)
}

func TestIngestRollsBackWholeUnitOfWork(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	testutil.SeedCategory(t, ctx, gdb, "space_exploration", "Space Programs")
	testutil.SeedLeafCategory(t, ctx, gdb, "space_exploration", "space_exploration.moon_landing", "Moon Exploration")

	failing := &failAfterSourceRepo{EventSourceRepo: repos.NewEventSourceRepo(gdb, log)}
	engine := NewEngine(
		gdb,
		log,
		repos.NewEventRepo(gdb, log),
		failing,
		repos.NewEventLocationRepo(gdb, log),
		NewRepoRegistry(repos.NewCategoryRepo(gdb, log)),
		NewIconSet(nil),
		DefaultPolicy(),
	)

	ev := validCandidate()
	ev["sources"] = []any{
		map[string]any{"url": "https://example.org/a"},
		map[string]any{"url": "https://example.org/b"},
	}
	st := NewStats()
	_, err := engine.Ingest(ctx, ev, nil, st)
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("error %v should be a persistence reject", err)
	}
	if st.EventsSkipped != 1 || st.EventsCreated != 0 || st.SourcesCreated != 0 {
		t.Fatalf("stats after rollback = %+v", st)
	}

	for model, name := range map[any]string{
		&types.Event{}:         "events",
		&types.EventSource{}:   "event_sources",
		&types.EventLocation{}: "event_locations",
	} {
		var n int64
		if err := gdb.Model(model).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Fatalf("%s has %d rows after rollback, want 0", name, n)
		}
	}
}
