package scouting

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// Reference columns an evaluation can point at.
const (
	RefPhysicalMeasurement  = "physical_measurement_id"
	RefTechnicalMeasurement = "technical_measurement_id"
	RefReferenceProfile     = "reference_profile_id"
)

type EvaluationRepo interface {
	Create(dbc dbctx.Context, row *types.Evaluation) (*types.Evaluation, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Evaluation, error)
	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Evaluation, error)
	ListByAthlete(dbc dbctx.Context, athleteID uuid.UUID) ([]*types.Evaluation, error)

	// CountReferencing counts evaluations whose column (one of the Ref* constants) equals id.
	CountReferencing(dbc dbctx.Context, column string, id uuid.UUID) (int64, error)

	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type evaluationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEvaluationRepo(db *gorm.DB, baseLog *logger.Logger) EvaluationRepo {
	return &evaluationRepo{db: db, log: baseLog.With("repo", "EvaluationRepo")}
}

func (r *evaluationRepo) Create(dbc dbctx.Context, row *types.Evaluation) (*types.Evaluation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.Version <= 0 {
		row.Version = 1
	}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *evaluationRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Evaluation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Evaluation
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// LockByID reads the row with FOR UPDATE; sqlite ignores the locking clause.
func (r *evaluationRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Evaluation, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Evaluation
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *evaluationRepo) ListByAthlete(dbc dbctx.Context, athleteID uuid.UUID) ([]*types.Evaluation, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.Evaluation
	if athleteID == uuid.Nil {
		return out, nil
	}
	err := t.WithContext(dbc.Ctx).
		Table("evaluation AS e").
		Select("e.*").
		Joins("JOIN athlete_evaluation ae ON ae.evaluation_id = e.id").
		Where("ae.athlete_id = ?", athleteID).
		Order("e.evaluated_at DESC").
		Order("e.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *evaluationRepo) CountReferencing(dbc dbctx.Context, column string, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	switch column {
	case RefPhysicalMeasurement, RefTechnicalMeasurement, RefReferenceProfile:
	default:
		return 0, gorm.ErrInvalidField
	}
	var n int64
	err := t.WithContext(dbc.Ctx).
		Model(&types.Evaluation{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: id}).
		Count(&n).Error
	return n, err
}

func (r *evaluationRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.Evaluation{})
	return res.RowsAffected, res.Error
}
