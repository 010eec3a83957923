package scouting

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records that an evaluation was created or revised at RecordedAt. It carries no diff.
type HistoryEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
}

func (HistoryEntry) TableName() string { return "history_entry" }

// EvaluationHistory links a ledger entry to the evaluation it describes.
type EvaluationHistory struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EvaluationID   uuid.UUID `gorm:"type:uuid;column:evaluation_id;not null;uniqueIndex:idx_evaluation_history_pair;index" json:"evaluation_id"`
	HistoryEntryID uuid.UUID `gorm:"type:uuid;column:history_entry_id;not null;uniqueIndex:idx_evaluation_history_pair" json:"history_entry_id"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (EvaluationHistory) TableName() string { return "evaluation_history" }
