package scouting

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// AthleteEvaluationRepo manages the insert-only evaluation subject links.
type AthleteEvaluationRepo interface {
	Link(dbc dbctx.Context, evaluationID, athleteID uuid.UUID) (int, error)
	GetByEvaluationIDs(dbc dbctx.Context, evaluationIDs []uuid.UUID) ([]*types.AthleteEvaluation, error)
	DeleteByEvaluationID(dbc dbctx.Context, evaluationID uuid.UUID) error
}

type athleteEvaluationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAthleteEvaluationRepo(db *gorm.DB, baseLog *logger.Logger) AthleteEvaluationRepo {
	return &athleteEvaluationRepo{db: db, log: baseLog.With("repo", "AthleteEvaluationRepo")}
}

// Link returns the number of rows inserted; an existing pair inserts nothing.
func (r *athleteEvaluationRepo) Link(dbc dbctx.Context, evaluationID, athleteID uuid.UUID) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if evaluationID == uuid.Nil || athleteID == uuid.Nil {
		return 0, nil
	}
	row := &types.AthleteEvaluation{ID: uuid.New(), EvaluationID: evaluationID, AthleteID: athleteID}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "evaluation_id"}, {Name: "athlete_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *athleteEvaluationRepo) GetByEvaluationIDs(dbc dbctx.Context, evaluationIDs []uuid.UUID) ([]*types.AthleteEvaluation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.AthleteEvaluation
	if len(evaluationIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("evaluation_id IN ?", evaluationIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *athleteEvaluationRepo) DeleteByEvaluationID(dbc dbctx.Context, evaluationID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("evaluation_id = ?", evaluationID).Delete(&types.AthleteEvaluation{}).Error
}

// CoachEvaluationRepo manages ownership links; they decide who may mutate an evaluation.
type CoachEvaluationRepo interface {
	Link(dbc dbctx.Context, evaluationID, coachID uuid.UUID) (int, error)
	Exists(dbc dbctx.Context, evaluationID, coachID uuid.UUID) (bool, error)
	GetByEvaluationIDs(dbc dbctx.Context, evaluationIDs []uuid.UUID) ([]*types.CoachEvaluation, error)
	DeleteByEvaluationID(dbc dbctx.Context, evaluationID uuid.UUID) error
}

type coachEvaluationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachEvaluationRepo(db *gorm.DB, baseLog *logger.Logger) CoachEvaluationRepo {
	return &coachEvaluationRepo{db: db, log: baseLog.With("repo", "CoachEvaluationRepo")}
}

func (r *coachEvaluationRepo) Link(dbc dbctx.Context, evaluationID, coachID uuid.UUID) (int, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if evaluationID == uuid.Nil || coachID == uuid.Nil {
		return 0, nil
	}
	row := &types.CoachEvaluation{ID: uuid.New(), EvaluationID: evaluationID, CoachID: coachID}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "evaluation_id"}, {Name: "coach_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

func (r *coachEvaluationRepo) Exists(dbc dbctx.Context, evaluationID, coachID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if evaluationID == uuid.Nil || coachID == uuid.Nil {
		return false, nil
	}
	var n int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.CoachEvaluation{}).
		Where("evaluation_id = ? AND coach_id = ?", evaluationID, coachID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *coachEvaluationRepo) GetByEvaluationIDs(dbc dbctx.Context, evaluationIDs []uuid.UUID) ([]*types.CoachEvaluation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.CoachEvaluation
	if len(evaluationIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("evaluation_id IN ?", evaluationIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *coachEvaluationRepo) DeleteByEvaluationID(dbc dbctx.Context, evaluationID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("evaluation_id = ?", evaluationID).Delete(&types.CoachEvaluation{}).Error
}
