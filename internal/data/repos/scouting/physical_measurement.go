package scouting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type PhysicalMeasurementRepo interface {
	Create(dbc dbctx.Context, row *types.PhysicalMeasurement) (*types.PhysicalMeasurement, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PhysicalMeasurement, error)
	LockByID(dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*types.PhysicalMeasurement, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.PhysicalMeasurement, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type physicalMeasurementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPhysicalMeasurementRepo(db *gorm.DB, baseLog *logger.Logger) PhysicalMeasurementRepo {
	return &physicalMeasurementRepo{db: db, log: baseLog.With("repo", "PhysicalMeasurementRepo")}
}

func (r *physicalMeasurementRepo) Create(dbc dbctx.Context, row *types.PhysicalMeasurement) (*types.PhysicalMeasurement, error) {
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

func (r *physicalMeasurementRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.PhysicalMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.PhysicalMeasurement
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *physicalMeasurementRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.PhysicalMeasurement, error) {
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

func (r *physicalMeasurementRepo) LockByID(dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*types.PhysicalMeasurement, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return lockRowByID[types.PhysicalMeasurement](t, dbc, id, strength)
}

func (r *physicalMeasurementRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.PhysicalMeasurement{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *physicalMeasurementRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.PhysicalMeasurement{})
	return res.RowsAffected, res.Error
}
