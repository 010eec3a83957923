package scouting

import (
	"time"

	"github.com/google/uuid"
)

// PhysicalMeasurement is one age/height/weight snapshot taken by a coach.
type PhysicalMeasurement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Age       int       `gorm:"column:age;not null" json:"age"`
	Height    float64   `gorm:"column:height;not null" json:"height"`
	Weight    float64   `gorm:"column:weight;not null" json:"weight"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PhysicalMeasurement) TableName() string { return "physical_measurement" }

// TechnicalMeasurement holds shooting and assist percentages in [0,100].
type TechnicalMeasurement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FreeThrowPct  float64   `gorm:"column:free_throw_pct;not null" json:"free_throw_pct"`
	ThreePointPct float64   `gorm:"column:three_point_pct;not null" json:"three_point_pct"`
	TwoPointPct   float64   `gorm:"column:two_point_pct;not null" json:"two_point_pct"`
	AssistsPct    float64   `gorm:"column:assists_pct;not null" json:"assists_pct"`
	CreatedAt     time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (TechnicalMeasurement) TableName() string { return "technical_measurement" }
