package scouting

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type ReferenceProfileRepo interface {
	Create(dbc dbctx.Context, row *types.ReferenceProfile) (*types.ReferenceProfile, error)
	UpsertByAgeCategory(dbc dbctx.Context, rows []*types.ReferenceProfile) error

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ReferenceProfile, error)
	LockByID(dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*types.ReferenceProfile, error)
	GetByAgeCategory(dbc dbctx.Context, category int) (*types.ReferenceProfile, error)
	List(dbc dbctx.Context) ([]*types.ReferenceProfile, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type referenceProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferenceProfileRepo(db *gorm.DB, baseLog *logger.Logger) ReferenceProfileRepo {
	return &referenceProfileRepo{db: db, log: baseLog.With("repo", "ReferenceProfileRepo")}
}

func (r *referenceProfileRepo) Create(dbc dbctx.Context, row *types.ReferenceProfile) (*types.ReferenceProfile, error) {
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

// UpsertByAgeCategory inserts profiles and overwrites the targets of existing categories.
func (r *referenceProfileRepo) UpsertByAgeCategory(dbc dbctx.Context, rows []*types.ReferenceProfile) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row != nil && row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "age_category"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"ideal_weight",
				"ideal_height",
				"ideal_free_throw_pct",
				"ideal_three_point_pct",
				"ideal_two_point_pct",
				"ideal_assist_pct",
				"updated_at",
			}),
		}).
		Create(&rows).Error
}

func (r *referenceProfileRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ReferenceProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.ReferenceProfile
	if err := t.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *referenceProfileRepo) GetByAgeCategory(dbc dbctx.Context, category int) (*types.ReferenceProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.ReferenceProfile
	if err := t.WithContext(dbc.Ctx).Where("age_category = ?", category).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *referenceProfileRepo) List(dbc dbctx.Context) ([]*types.ReferenceProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.ReferenceProfile
	if err := t.WithContext(dbc.Ctx).Order("age_category ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *referenceProfileRepo) LockByID(dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*types.ReferenceProfile, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return lockRowByID[types.ReferenceProfile](t, dbc, id, strength)
}

func (r *referenceProfileRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.ReferenceProfile{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *referenceProfileRepo) Delete(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).Where("id = ?", id).Delete(&types.ReferenceProfile{})
	return res.RowsAffected, res.Error
}
