package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/types"
)

type EventLocationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.EventLocation) ([]*types.EventLocation, error)
	GetPrimaryByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EventLocation, error)
}

type eventLocationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventLocationRepo(db *gorm.DB, baseLog *logger.Logger) EventLocationRepo {
	return &eventLocationRepo{db: db, log: baseLog.With("repo", "EventLocationRepo")}
}

func (r *eventLocationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.EventLocation) ([]*types.EventLocation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.EventLocation{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventLocationRepo) GetPrimaryByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (*types.EventLocation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if eventID == uuid.Nil {
		return nil, nil
	}
	var out []*types.EventLocation
	if err := t.WithContext(ctx).
		Where("event_id = ? AND is_primary = ?", eventID, true).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
