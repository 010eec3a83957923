package scouting

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
)

// LockStrength is the row lock taken by the LockByID repo methods. Locks are only
// held inside a transaction; the sqlite dialect drops the clause and relies on
// its single writer connection.
type LockStrength string

const (
	// LockShare is held by writers that are about to reference the row.
	LockShare LockStrength = "SHARE"
	// LockUpdate is held by the delete path.
	LockUpdate LockStrength = "UPDATE"
)

func lockRowByID[T any](t *gorm.DB, dbc dbctx.Context, id uuid.UUID, strength LockStrength) (*T, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*T
	err := t.WithContext(dbc.Ctx).
		Clauses(clause.Locking{Strength: string(strength)}).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
