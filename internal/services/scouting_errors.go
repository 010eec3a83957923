package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/data/aggregates"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
)

// firstViolation returns the first failing bounds check as a validation error.
func firstViolation(op string, checks ...error) error {
	for _, err := range checks {
		if err == nil {
			continue
		}
		if fe, ok := scoring.AsFieldError(err); ok {
			return domainagg.Validation(op, fe.Message)
		}
		return domainagg.Wrap(domainagg.CodeValidation, op, err)
	}
	return nil
}

// inTx runs fn in one transaction and maps the outcome onto the aggregate error taxonomy.
func inTx(ctx context.Context, db *gorm.DB, op string, fn func(dbc dbctx.Context) error) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	return aggregates.MapError(op, err)
}
