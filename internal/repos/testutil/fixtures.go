package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/types"
)

// SeedCategory inserts a parent category and returns it.
func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, id, name string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:          id,
		Name:        name,
		Description: name,
		Color:       "#6b7280",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category %s: %v", id, err)
	}
	return c
}

// SeedLeafCategory inserts a leaf category under the given parent.
func SeedLeafCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, parentID, id, name string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:          id,
		Name:        name,
		Description: name,
		Color:       "#6b7280",
		ParentID:    &parentID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed leaf category %s: %v", id, err)
	}
	return c
}

// SeedEvent inserts a bare event row.
func SeedEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, title, category string, unixSeconds int64) *types.Event {
	tb.Helper()
	e := &types.Event{
		ID:              uuid.New(),
		TimelineSeconds: "0",
		UnixSeconds:     unixSeconds,
		PrecisionLevel:  types.PrecisionDay,
		Title:           title,
		Category:        category,
		ImportanceScore: 50,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed event %s: %v", title, err)
	}
	return e
}
