package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeatherObservation is one generated weather report for a location.
// Risk signals are ephemeral inputs to a single cycle; rows exist for audit
// and are never re-read mid-cycle.
type WeatherObservation struct {
	ID                 int       `gorm:"primary_key" json:"id"`
	LocationId         int       `gorm:"not null;index" json:"location_id"`
	ObservedAt         time.Time `gorm:"not null" json:"observed_at"`
	TemperatureCelsius float64   `json:"temperature_celsius"`
	Conditions         string    `gorm:"size:100" json:"conditions"`
	RawPayload         string    `gorm:"type:text" json:"raw_payload"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NewsEvent is one generated disruption event. A nil LocationId means the
// event affects all locations.
type NewsEvent struct {
	ID           int             `gorm:"primary_key" json:"id"`
	Title        string          `gorm:"size:200" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	EventType    string          `gorm:"size:50" json:"event_type"`
	LocationId   *int            `gorm:"index" json:"location_id"`
	ImpactFactor decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"impact_factor"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	Source       string          `gorm:"size:100" json:"source"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// AppliesTo reports whether the event impacts the given location.
func (e *NewsEvent) AppliesTo(locationId int) bool {
	return e.LocationId == nil || *e.LocationId == locationId
}
