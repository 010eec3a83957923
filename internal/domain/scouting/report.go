package scouting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportKind string

const (
	ReportKindEvaluation ReportKind = "evaluation"
	ReportKindStatistics ReportKind = "statistics"
)

// Report is a persisted read-model snapshot handed to document renderers.
type Report struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Kind         ReportKind     `gorm:"column:kind;not null;index" json:"kind"`
	AthleteID    uuid.UUID      `gorm:"type:uuid;column:athlete_id;not null;index" json:"athlete_id"`
	EvaluationID *uuid.UUID     `gorm:"type:uuid;column:evaluation_id;index" json:"evaluation_id,omitempty"`
	FileName     string         `gorm:"column:file_name;not null" json:"file_name"`
	Payload      datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt    time.Time      `gorm:"not null;index" json:"created_at"`
}

func (Report) TableName() string { return "report" }
