package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/types"
)

// EventQuery filters event listings. Time bounds are Unix seconds.
type EventQuery struct {
	StartSeconds  *int64
	EndSeconds    *int64
	Category      *string
	MinImportance *int
	Search        *string
	Limit         int
	Offset        int
}

type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Event) ([]*types.Event, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Event, error)
	GetByTitle(ctx context.Context, tx *gorm.DB, title string) ([]*types.Event, error)
	List(ctx context.Context, tx *gorm.DB, q EventQuery) ([]*types.Event, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "EventRepo")}
}

func (r *eventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Event) ([]*types.Event, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Event{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Event, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Event
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *eventRepo) GetByTitle(ctx context.Context, tx *gorm.DB, title string) ([]*types.Event, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Event
	if title == "" {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("title = ?", title).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) List(ctx context.Context, tx *gorm.DB, q EventQuery) ([]*types.Event, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	stmt := t.WithContext(ctx).Model(&types.Event{})
	if q.StartSeconds != nil {
		stmt = stmt.Where("unix_seconds >= ?", *q.StartSeconds)
	}
	if q.EndSeconds != nil {
		stmt = stmt.Where("unix_seconds <= ?", *q.EndSeconds)
	}
	if q.Category != nil && *q.Category != "" {
		stmt = stmt.Where("category = ?", *q.Category)
	}
	if q.MinImportance != nil {
		stmt = stmt.Where("importance_score >= ?", *q.MinImportance)
	}
	if q.Search != nil && *q.Search != "" {
		like := "%" + *q.Search + "%"
		stmt = stmt.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}
	if q.Offset > 0 {
		stmt = stmt.Offset(q.Offset)
	}
	var out []*types.Event
	if err := stmt.Order("unix_seconds ASC, title ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.Event{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
