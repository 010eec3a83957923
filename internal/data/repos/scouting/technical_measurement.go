package scouting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type TechnicalMeasurementRepo interface {
	Create(dbc dbctx.Context, row *types.TechnicalMeasurement) (*types.TechnicalMeasurement, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.TechnicalMeasurement, error)
	LockByID(dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*types.TechnicalMeasurement, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.TechnicalMeasurement, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type technicalMeasurementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTechnicalMeasurementRepo(db *gorm.DB, baseLog *logger.Logger) TechnicalMeasurementRepo {
	return &technicalMeasurementRepo{db: db, log: baseLog.With("repo", "TechnicalMeasurementRepo")}
}

func (r *technicalMeasurementRepo) Create(dbc dbctx.Context, row *types.TechnicalMeasurement) (*types.TechnicalMeasurement, error) {
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
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *technicalMeasurementRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.TechnicalMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.TechnicalMeasurement
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *technicalMeasurementRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.TechnicalMeasurement, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *technicalMeasurementRepo) LockByID(dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*types.TechnicalMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return lockRowByID[types.TechnicalMeasurement](t, dbc, id, strength)
}

func (r *technicalMeasurementRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.TechnicalMeasurement{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *technicalMeasurementRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.TechnicalMeasurement{})
	return res.RowsAffected, res.Error
}
