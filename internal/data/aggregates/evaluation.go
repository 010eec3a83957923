package aggregates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/data/repos"
	types "github.com/christianrafael21/hoopscout/internal/domain"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
)

const evaluationTable = "evaluation"

type EvaluationAggregateDeps struct {
	Base BaseDeps

	Evaluations       repos.EvaluationRepo
	Physical          repos.PhysicalMeasurementRepo
	Technical         repos.TechnicalMeasurementRepo
	Profiles          repos.ReferenceProfileRepo
	Athletes          repos.AthleteEvaluationRepo
	Coaches           repos.CoachEvaluationRepo
	History           repos.HistoryEntryRepo
	EvaluationHistory repos.EvaluationHistoryRepo
}

type evaluationAggregate struct {
	deps EvaluationAggregateDeps
}

func NewEvaluationAggregate(deps EvaluationAggregateDeps) domainagg.EvaluationAggregate {
	deps.Base = deps.Base.withDefaults()
	return &evaluationAggregate{deps: deps}
}

func (a *evaluationAggregate) Contract() domainagg.Contract {
	return domainagg.EvaluationAggregateContract
}

func (a *evaluationAggregate) configured() bool {
	d := a.deps
	return d.Evaluations != nil && d.Physical != nil && d.Technical != nil && d.Profiles != nil &&
		d.Athletes != nil && d.Coaches != nil && d.History != nil && d.EvaluationHistory != nil
}

func (a *evaluationAggregate) Create(ctx context.Context, in domainagg.CreateEvaluationInput) (domainagg.EvaluationWriteResult, error) {
	const op = "Scouting.Evaluation.Create"
	var out domainagg.EvaluationWriteResult
	switch {
	case in.PhysicalMeasurementID == uuid.Nil:
		return out, domainagg.Validation(op, "missing physical_measurement_id")
	case in.TechnicalMeasurementID == uuid.Nil:
		return out, domainagg.Validation(op, "missing technical_measurement_id")
	case in.AthleteID == uuid.Nil:
		return out, domainagg.Validation(op, "missing athlete_id")
	case in.CoachID == uuid.Nil:
		return out, domainagg.Validation(op, "missing coach_id")
	case in.ReferenceProfileID != nil && *in.ReferenceProfileID == uuid.Nil:
		return out, domainagg.Validation(op, "invalid reference_profile_id")
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "evaluation aggregate repos not configured", nil)
	}

	now := a.deps.Base.now()
	evaluatedAt := now
	if in.EvaluatedAt != nil && !in.EvaluatedAt.IsZero() {
		evaluatedAt = in.EvaluatedAt.UTC()
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireReferences(dbc, op, &in.PhysicalMeasurementID, &in.TechnicalMeasurementID, in.ReferenceProfileID); err != nil {
			return err
		}

		ev, err := a.deps.Evaluations.Create(dbc, &types.Evaluation{
			ID:                     uuid.New(),
			EvaluatedAt:            evaluatedAt,
			ReferenceProfileID:     in.ReferenceProfileID,
			PhysicalMeasurementID:  in.PhysicalMeasurementID,
			TechnicalMeasurementID: in.TechnicalMeasurementID,
			Version:                1,
			CreatedAt:              now,
			UpdatedAt:              now,
		})
		if err != nil {
			return err
		}

		entry, err := a.appendHistory(dbc, ev.ID, now)
		if err != nil {
			return err
		}

		if _, err := a.deps.Coaches.Link(dbc, ev.ID, in.CoachID); err != nil {
			return err
		}
		if _, err := a.deps.Athletes.Link(dbc, ev.ID, in.AthleteID); err != nil {
			return err
		}

		out = domainagg.EvaluationWriteResult{
			EvaluationID:   ev.ID,
			HistoryEntryID: entry.ID,
			Version:        ev.Version,
			EvaluatedAt:    ev.EvaluatedAt,
			RecordedAt:     entry.RecordedAt,
		}
		return nil
	})
	return out, err
}

func (a *evaluationAggregate) Update(ctx context.Context, in domainagg.UpdateEvaluationInput) (domainagg.EvaluationWriteResult, error) {
	const op = "Scouting.Evaluation.Update"
	var out domainagg.EvaluationWriteResult
	switch {
	case in.EvaluationID == uuid.Nil:
		return out, domainagg.Validation(op, "missing evaluation_id")
	case in.CoachID == uuid.Nil:
		return out, domainagg.Validation(op, "missing coach_id")
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "evaluation aggregate repos not configured", nil)
	}

	now := a.deps.Base.now()

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		// Ownership is settled before the payload is looked at.
		ev, err := a.lockOwned(dbc, op, in.EvaluationID, in.CoachID)
		if err != nil {
			return err
		}
		if err := validateUpdatePayload(op, in); err != nil {
			return err
		}
		if err := a.requireReferences(dbc, op, in.PhysicalMeasurementID, in.TechnicalMeasurementID, in.ReferenceProfileID); err != nil {
			return err
		}
		if in.ExpectedVersion != nil {
			if err := RequireVersionMatch(ev.Version, *in.ExpectedVersion); err != nil {
				return err
			}
		}

		nextVersion := ev.Version + 1
		updates := map[string]any{
			"version":    nextVersion,
			"updated_at": now,
		}
		evaluatedAt := ev.EvaluatedAt
		if in.PhysicalMeasurementID != nil {
			updates["physical_measurement_id"] = *in.PhysicalMeasurementID
		}
		if in.TechnicalMeasurementID != nil {
			updates["technical_measurement_id"] = *in.TechnicalMeasurementID
		}
		if in.ReferenceProfileID != nil {
			updates["reference_profile_id"] = *in.ReferenceProfileID
		}
		if in.EvaluatedAt != nil && !in.EvaluatedAt.IsZero() {
			evaluatedAt = in.EvaluatedAt.UTC()
			updates["evaluated_at"] = evaluatedAt
		}

		ok, err := a.deps.Base.CASGuard.UpdateByVersion(dbc, evaluationTable, ev.ID, ev.Version, updates)
		if err != nil {
			return err
		}
		if err := RequireCASSuccess(ok, "evaluation changed concurrently"); err != nil {
			return err
		}

		entry, err := a.appendHistory(dbc, ev.ID, now)
		if err != nil {
			return err
		}

		out = domainagg.EvaluationWriteResult{
			EvaluationID:   ev.ID,
			HistoryEntryID: entry.ID,
			Version:        nextVersion,
			EvaluatedAt:    evaluatedAt,
			RecordedAt:     entry.RecordedAt,
		}
		return nil
	})
	return out, err
}

func (a *evaluationAggregate) Remove(ctx context.Context, in domainagg.RemoveEvaluationInput) (domainagg.RemoveEvaluationResult, error) {
	const op = "Scouting.Evaluation.Remove"
	var out domainagg.RemoveEvaluationResult
	if in.EvaluationID == uuid.Nil {
		return out, domainagg.Validation(op, "missing evaluation_id")
	}
	if in.CoachID == uuid.Nil {
		return out, domainagg.Validation(op, "missing coach_id")
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "evaluation aggregate repos not configured", nil)
	}

	now := a.deps.Base.now()

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		ev, err := a.lockOwned(dbc, op, in.EvaluationID, in.CoachID)
		if err != nil {
			return err
		}

		if err := a.deps.Athletes.DeleteByEvaluationID(dbc, ev.ID); err != nil {
			return err
		}
		if err := a.deps.Coaches.DeleteByEvaluationID(dbc, ev.ID); err != nil {
			return err
		}
		if err := a.deps.EvaluationHistory.DeleteByEvaluationID(dbc, ev.ID); err != nil {
			return err
		}
		n, err := a.deps.Evaluations.Delete(dbc, ev.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ConflictError("evaluation removed concurrently")
		}

		out = domainagg.RemoveEvaluationResult{EvaluationID: ev.ID, RemovedAt: now}
		return nil
	})
	return out, err
}

func validateUpdatePayload(op string, in domainagg.UpdateEvaluationInput) error {
	switch {
	case in.PhysicalMeasurementID != nil && *in.PhysicalMeasurementID == uuid.Nil:
		return domainagg.Validation(op, "invalid physical_measurement_id")
	case in.TechnicalMeasurementID != nil && *in.TechnicalMeasurementID == uuid.Nil:
		return domainagg.Validation(op, "invalid technical_measurement_id")
	case in.ReferenceProfileID != nil && *in.ReferenceProfileID == uuid.Nil:
		return domainagg.Validation(op, "invalid reference_profile_id")
	case in.ExpectedVersion != nil && *in.ExpectedVersion < 1:
		return domainagg.Validation(op, "expected version must be >= 1")
	}
	return nil
}

// lockOwned loads the evaluation FOR UPDATE and checks that coachID holds an ownership link.
func (a *evaluationAggregate) lockOwned(dbc dbctx.Context, op string, evaluationID, coachID uuid.UUID) (*types.Evaluation, error) {
	ev, err := a.deps.Evaluations.LockByID(dbc, evaluationID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domainagg.NotFound(op, fmt.Sprintf("evaluation not found: %s", evaluationID))
	}
	owned, err := a.deps.Coaches.Exists(dbc, ev.ID, coachID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, domainagg.Forbidden(op, "coach is not linked to this evaluation")
	}
	return ev, nil
}

// requireReferences checks that every non-nil reference points at an existing row and
// holds a share lock on it until commit, so a concurrent delete cannot orphan the evaluation.
func (a *evaluationAggregate) requireReferences(dbc dbctx.Context, op string, physicalID, technicalID, profileID *uuid.UUID) error {
	if physicalID != nil {
		row, err := a.deps.Physical.LockByID(dbc, *physicalID, repos.LockShare)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "physical measurement not found")
		}
	}
	if technicalID != nil {
		row, err := a.deps.Technical.LockByID(dbc, *technicalID, repos.LockShare)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "technical measurement not found")
		}
	}
	if profileID != nil {
		row, err := a.deps.Profiles.LockByID(dbc, *profileID, repos.LockShare)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "reference profile not found")
		}
	}
	return nil
}

func (a *evaluationAggregate) appendHistory(dbc dbctx.Context, evaluationID uuid.UUID, at time.Time) (*types.HistoryEntry, error) {
	entry, err := a.deps.History.Create(dbc, at)
	if err != nil {
		return nil, err
	}
	n, err := a.deps.EvaluationHistory.Link(dbc, evaluationID, entry.ID)
	if err != nil {
		return nil, err
	}
	if n != 1 {
		return nil, InvariantError("history entry was not linked to the evaluation")
	}
	return entry, nil
}
