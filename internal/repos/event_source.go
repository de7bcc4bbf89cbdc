package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/types"
)

type EventSourceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.EventSource) ([]*types.EventSource, error)
	GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventSource, error)
	CountByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error)
}

type eventSourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventSourceRepo(db *gorm.DB, baseLog *logger.Logger) EventSourceRepo {
	return &eventSourceRepo{db: db, log: baseLog.With("repo", "EventSourceRepo")}
}

func (r *eventSourceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.EventSource) ([]*types.EventSource, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.EventSource{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventSourceRepo) GetByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) ([]*types.EventSource, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.EventSource
	if eventID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventSourceRepo) CountByEventID(ctx context.Context, tx *gorm.DB, eventID uuid.UUID) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.EventSource{}).Where("event_id = ?", eventID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
