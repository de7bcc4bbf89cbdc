package types

import (
	"time"

	"github.com/google/uuid"
)

// Event is a durable timeline event. Rows are created atomically with their
// sources and primary location and are never mutated by the ingestion core.
type Event struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// Big Bang-relative seconds kept alongside the Unix representation for
	// backward compat with the timeline renderer.
	TimelineSeconds  string         `gorm:"column:timeline_seconds;not null" json:"timeline_seconds"`
	UnixSeconds      int64          `gorm:"column:unix_seconds;not null;index" json:"unix_seconds"`
	UnixNanos        int32          `gorm:"column:unix_nanos;not null;default:0" json:"unix_nanos"`
	PrecisionLevel   PrecisionLevel `gorm:"column:precision_level;not null" json:"precision_level"`
	UncertaintyRange *string        `gorm:"column:uncertainty_range" json:"uncertainty_range,omitempty"`

	Title       string  `gorm:"column:title;not null" json:"title"`
	Description *string `gorm:"column:description;type:text" json:"description,omitempty"`
	Category    string  `gorm:"column:category;not null;index" json:"category"`
	ImageURL    *string `gorm:"column:image_url" json:"image_url,omitempty"`

	ImportanceScore int `gorm:"column:importance_score;not null;default:50" json:"importance_score"`

	CreatedByUserID *uuid.UUID `gorm:"type:uuid;column:created_by_user_id" json:"created_by_user_id,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string { return "events" }
