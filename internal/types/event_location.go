package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventLocation is an event's canonical geographic point. The ingestion
// core writes at most one per event, always marked primary.
type EventLocation struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event   *Event    `gorm:"constraint:OnDelete:CASCADE;foreignKey:EventID;references:ID" json:"event,omitempty"`

	LocationName string `gorm:"column:location_name;not null;default:'Unknown'" json:"location_name"`
	LocationType string `gorm:"column:location_type;not null;default:'primary'" json:"location_type"`
	IsPrimary    bool   `gorm:"column:is_primary;not null;default:true" json:"is_primary"`

	Latitude  float64 `gorm:"column:latitude;not null" json:"latitude"`
	Longitude float64 `gorm:"column:longitude;not null" json:"longitude"`
	// GeoJSON Point payload, coordinates in [lon, lat] order.
	GeoJSON datatypes.JSON `gorm:"column:geojson" json:"geojson,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (EventLocation) TableName() string { return "event_locations" }
