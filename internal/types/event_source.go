package types

import (
	"time"

	"github.com/google/uuid"
)

// EventSource is a citation attached to exactly one event.
type EventSource struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	SourceType       SourceKind `gorm:"column:source_type;not null;default:'other'" json:"source_type"`
	Title            *string    `gorm:"column:title" json:"title,omitempty"`
	URL              *string    `gorm:"column:url" json:"url,omitempty"`
	Citation         *string    `gorm:"column:citation;type:text" json:"citation,omitempty"`
	CredibilityScore int        `gorm:"column:credibility_score;not null;default:50" json:"credibility_score"`

	AddedByUserID *uuid.UUID `gorm:"type:uuid;column:added_by_user_id" json:"added_by_user_id,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (EventSource) TableName() string { return "event_sources" }
