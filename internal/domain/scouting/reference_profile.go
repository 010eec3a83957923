package scouting

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceProfile is the "gold athlete" target set for one age category.
// AgeCategory is the upper bound of the bracket and is unique.
type ReferenceProfile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AgeCategory        int       `gorm:"column:age_category;not null;uniqueIndex:idx_reference_profile_age_category" json:"age_category"`
	IdealWeight        float64   `gorm:"column:ideal_weight;not null" json:"ideal_weight"`
	IdealHeight        float64   `gorm:"column:ideal_height;not null" json:"ideal_height"`
	IdealFreeThrowPct  float64   `gorm:"column:ideal_free_throw_pct;not null" json:"ideal_free_throw_pct"`
	IdealThreePointPct float64   `gorm:"column:ideal_three_point_pct;not null" json:"ideal_three_point_pct"`
	IdealTwoPointPct   float64   `gorm:"column:ideal_two_point_pct;not null" json:"ideal_two_point_pct"`
	IdealAssistPct     float64   `gorm:"column:ideal_assist_pct;not null" json:"ideal_assist_pct"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (ReferenceProfile) TableName() string { return "reference_profile" }
