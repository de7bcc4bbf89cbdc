package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/chronoline/backend/internal/pkg/logger"
	"github.com/chronoline/backend/internal/types"
)

type CategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Category) ([]*types.Category, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Category, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Category, error)
	// ExistsLeaf reports whether id names a leaf category (a row with a
	// parent). Parent nodes are grouping-only and never valid on an event.
	ExistsLeaf(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Category) ([]*types.Category, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Category{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.Category, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == "" {
		return nil, nil
	}
	var out []*types.Category
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *categoryRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Category, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Category
	if err := t.WithContext(ctx).
		Order("parent_id NULLS FIRST, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) ExistsLeaf(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == "" {
		return false, nil
	}
	var n int64
	if err := t.WithContext(ctx).Model(&types.Category{}).
		Where("id = ? AND parent_id IS NOT NULL", id).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
