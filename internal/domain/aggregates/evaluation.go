package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var EvaluationAggregateContract = Contract{
	Name:             "Scouting.EvaluationAggregate",
	WriteTxOwnership: WriteTxOwnedByAggregate,
	ReadPolicy:       ReadPolicyInvariantScoped,
	Notes:            "Owns evaluation rows, their athlete/coach links and the history ledger entry appended on every write.",
}

// EvaluationAggregate owns evaluation write invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeForbidden, CodeConflict, CodeRetryable, CodeInternal.
type EvaluationAggregate interface {
	Aggregate

	// Create checks the referenced records, inserts the evaluation with its athlete and coach links
	// and appends the first history entry.
	Create(ctx context.Context, in CreateEvaluationInput) (EvaluationWriteResult, error)

	// Update applies the supplied references under the coach ownership check, bumps the version
	// and appends one history entry.
	Update(ctx context.Context, in UpdateEvaluationInput) (EvaluationWriteResult, error)

	// Remove deletes the evaluation and its link rows. History entries are kept.
	Remove(ctx context.Context, in RemoveEvaluationInput) (RemoveEvaluationResult, error)
}

type CreateEvaluationInput struct {
	PhysicalMeasurementID  uuid.UUID
	TechnicalMeasurementID uuid.UUID
	ReferenceProfileID     *uuid.UUID
	AthleteID              uuid.UUID
	CoachID                uuid.UUID
	EvaluatedAt            *time.Time
}

// UpdateEvaluationInput carries a partial update; nil fields are left untouched.
type UpdateEvaluationInput struct {
	EvaluationID           uuid.UUID
	CoachID                uuid.UUID
	PhysicalMeasurementID  *uuid.UUID
	TechnicalMeasurementID *uuid.UUID
	ReferenceProfileID     *uuid.UUID
	EvaluatedAt            *time.Time
	ExpectedVersion        *int
}

type EvaluationWriteResult struct {
	EvaluationID   uuid.UUID
	HistoryEntryID uuid.UUID
	Version        int
	EvaluatedAt    time.Time
	RecordedAt     time.Time
}

type RemoveEvaluationInput struct {
	EvaluationID uuid.UUID
	CoachID      uuid.UUID
}

type RemoveEvaluationResult struct {
	EvaluationID uuid.UUID
	RemovedAt    time.Time
}
