package aggregates

import (
	"context"

	"gorm.io/gorm"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/platform/ctxutil"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// TxRunner is the unit of work behind every evaluation write: the evaluation row,
// its coach/athlete links and the history ledger entry commit or roll back together.
// Row locks taken through dbc.Tx (evaluation FOR UPDATE, references FOR SHARE) are
// held until InTx returns.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type TxRunnerOption func(*gormTxRunner)

// WithRollbackLog logs every rolled back unit of work at debug with the caller's
// trace ids and actor.
func WithRollbackLog(log *logger.Logger) TxRunnerOption {
	return func(r *gormTxRunner) {
		if log != nil {
			r.log = log.With("component", "TxRunner")
		}
	}
}

type gormTxRunner struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormTxRunner(db *gorm.DB, opts ...TxRunnerOption) TxRunner {
	r := &gormTxRunner{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "aggregate.tx", "transaction runner has nil db", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if err != nil && r.log != nil {
		fields := append([]interface{}{"code", string(domainagg.CodeOf(err))}, ctxutil.CallerFields(ctx)...)
		r.log.Debug("unit of work rolled back", fields...)
	}
	return err
}
