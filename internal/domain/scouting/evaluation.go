package scouting

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation links one physical and one technical snapshot, optionally a reference profile.
// Athlete, coach and history associations live in join tables; the average score is never stored.
type Evaluation struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	EvaluatedAt            time.Time  `gorm:"column:evaluated_at;not null;index" json:"evaluated_at"`
	ReferenceProfileID     *uuid.UUID `gorm:"type:uuid;column:reference_profile_id;index" json:"reference_profile_id,omitempty"`
	PhysicalMeasurementID  uuid.UUID  `gorm:"type:uuid;column:physical_measurement_id;not null;index" json:"physical_measurement_id"`
	TechnicalMeasurementID uuid.UUID  `gorm:"type:uuid;column:technical_measurement_id;not null;index" json:"technical_measurement_id"`
	Version                int        `gorm:"column:version;not null;default:1" json:"version"`
	CreatedAt              time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"not null" json:"updated_at"`
}

func (Evaluation) TableName() string { return "evaluation" }

// AthleteEvaluation is the insert-only subject link of an evaluation.
type AthleteEvaluation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EvaluationID uuid.UUID `gorm:"type:uuid;column:evaluation_id;not null;uniqueIndex:idx_athlete_evaluation_pair" json:"evaluation_id"`
	AthleteID    uuid.UUID `gorm:"type:uuid;column:athlete_id;not null;uniqueIndex:idx_athlete_evaluation_pair;index" json:"athlete_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (AthleteEvaluation) TableName() string { return "athlete_evaluation" }

// CoachEvaluation is the insert-only ownership link of an evaluation.
type CoachEvaluation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EvaluationID uuid.UUID `gorm:"type:uuid;column:evaluation_id;not null;uniqueIndex:idx_coach_evaluation_pair" json:"evaluation_id"`
	CoachID      uuid.UUID `gorm:"type:uuid;column:coach_id;not null;uniqueIndex:idx_coach_evaluation_pair;index" json:"coach_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (CoachEvaluation) TableName() string { return "coach_evaluation" }
