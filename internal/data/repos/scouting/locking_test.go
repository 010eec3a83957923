package scouting

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/christianrafael21/hoopscout/internal/data/repos/testutil"
	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
)

// sqlRecorder keeps every statement gorm traces, including dry runs.
type sqlRecorder struct {
	gormLogger.Interface
	mu  sync.Mutex
	sql []string
}

func newSQLRecorder() *sqlRecorder {
	return &sqlRecorder{Interface: gormLogger.Discard}
}

func (r *sqlRecorder) LogMode(gormLogger.LogLevel) gormLogger.Interface { return r }

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	s, _ := fc()
	r.mu.Lock()
	r.sql = append(r.sql, s)
	r.mu.Unlock()
}

func (r *sqlRecorder) last(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sql) == 0 {
		t.Fatalf("no statement recorded")
	}
	return r.sql[len(r.sql)-1]
}

func TestLockByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)

	physical := NewPhysicalMeasurementRepo(db, log)
	technical := NewTechnicalMeasurementRepo(db, log)
	profiles := NewReferenceProfileRepo(db, log)

	p := testutil.SeedPhysical(t, ctx, tx, 16, 1.80, 70)
	tm := testutil.SeedTechnical(t, ctx, tx, 80, 30, 50, 20)
	rp := testutil.SeedProfile(t, ctx, tx, 18)

	for _, strength := range []LockStrength{LockShare, LockUpdate} {
		gotP, err := physical.LockByID(dbc, p.ID, strength)
		if err != nil || gotP == nil || gotP.ID != p.ID {
			t.Fatalf("physical %s: err=%v row=%v", strength, err, gotP)
		}
		gotT, err := technical.LockByID(dbc, tm.ID, strength)
		if err != nil || gotT == nil || gotT.FreeThrowPct != 80 {
			t.Fatalf("technical %s: err=%v row=%v", strength, err, gotT)
		}
		gotR, err := profiles.LockByID(dbc, rp.ID, strength)
		if err != nil || gotR == nil || gotR.AgeCategory != 18 {
			t.Fatalf("profile %s: err=%v row=%v", strength, err, gotR)
		}

		missing, err := physical.LockByID(dbc, uuid.New(), strength)
		if err != nil || missing != nil {
			t.Fatalf("missing %s: want nil got=%v err=%v", strength, missing, err)
		}
		none, err := profiles.LockByID(dbc, uuid.Nil, strength)
		if err != nil || none != nil {
			t.Fatalf("nil id %s: want nil got=%v err=%v", strength, none, err)
		}
	}
}

func TestLockByID_RenderedClause(t *testing.T) {
	rec := newSQLRecorder()
	pg, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=hoopscout dbname=hoopscout sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		t.Fatalf("open dry-run postgres: %v", err)
	}
	log := testutil.Logger(t)
	dbc := dbctx.New(context.Background())
	id := uuid.New()

	if _, err := NewPhysicalMeasurementRepo(pg, log).LockByID(dbc, id, LockShare); err != nil {
		t.Fatalf("dry-run share: %v", err)
	}
	if sql := rec.last(t); !strings.HasSuffix(sql, "FOR SHARE") || !strings.Contains(sql, `"physical_measurement"`) {
		t.Fatalf("postgres share lock: got=%q", sql)
	}
	if _, err := NewReferenceProfileRepo(pg, log).LockByID(dbc, id, LockUpdate); err != nil {
		t.Fatalf("dry-run update: %v", err)
	}
	if sql := rec.last(t); !strings.HasSuffix(sql, "FOR UPDATE") {
		t.Fatalf("postgres update lock: got=%q", sql)
	}

	liteRec := newSQLRecorder()
	lite := testutil.Isolated(t).Session(&gorm.Session{DryRun: true, Logger: liteRec})
	if _, err := NewTechnicalMeasurementRepo(lite, log).LockByID(dbc, id, LockShare); err != nil {
		t.Fatalf("dry-run sqlite: %v", err)
	}
	if sql := liteRec.last(t); strings.Contains(sql, "FOR ") {
		t.Fatalf("sqlite must not render a lock clause: got=%q", sql)
	}
}

// A delete that locks the measurement FOR UPDATE has to wait for an evaluation
// create holding FOR SHARE on it, and then sees the new reference.
func TestLockByID_DeleteWaitsForReferencingWriter(t *testing.T) {
	if os.Getenv("TEST_POSTGRES_DSN") == "" {
		t.Skip("needs TEST_POSTGRES_DSN: sqlite serializes writers on one connection")
	}
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()
	physical := NewPhysicalMeasurementRepo(db, log)
	evaluations := NewEvaluationRepo(db, log)

	p := testutil.SeedPhysical(t, ctx, db, 15, 1.75, 66)
	tm := testutil.SeedTechnical(t, ctx, db, 70, 30, 45, 20)
	evalID := uuid.New()
	t.Cleanup(func() {
		db.Where("id = ?", evalID).Delete(&types.Evaluation{})
		db.Where("id = ?", p.ID).Delete(&types.PhysicalMeasurement{})
		db.Where("id = ?", tm.ID).Delete(&types.TechnicalMeasurement{})
	})

	writer := db.Begin()
	if writer.Error != nil {
		t.Fatalf("begin writer: %v", writer.Error)
	}
	wdbc := dbctx.Context{Ctx: ctx, Tx: writer}
	if row, err := physical.LockByID(wdbc, p.ID, LockShare); err != nil || row == nil {
		writer.Rollback()
		t.Fatalf("writer share lock: err=%v row=%v", err, row)
	}

	type deleteResult struct {
		refs int64
		err  error
	}
	done := make(chan deleteResult, 1)
	go func() {
		var out deleteResult
		out.err = db.Transaction(func(tx *gorm.DB) error {
			ddbc := dbctx.Context{Ctx: ctx, Tx: tx}
			if _, err := physical.LockByID(ddbc, p.ID, LockUpdate); err != nil {
				return err
			}
			n, err := evaluations.CountReferencing(ddbc, RefPhysicalMeasurement, p.ID)
			out.refs = n
			return err
		})
		done <- out
	}()

	select {
	case res := <-done:
		writer.Rollback()
		t.Fatalf("delete path did not wait for the share lock: %+v", res)
	case <-time.After(200 * time.Millisecond):
	}

	now := time.Now().UTC()
	if _, err := evaluations.Create(wdbc, &types.Evaluation{
		ID:                     evalID,
		EvaluatedAt:            now,
		PhysicalMeasurementID:  p.ID,
		TechnicalMeasurementID: tm.ID,
		Version:                1,
		CreatedAt:              now,
		UpdatedAt:              now,
	}); err != nil {
		writer.Rollback()
		t.Fatalf("writer create: %v", err)
	}
	if err := writer.Commit().Error; err != nil {
		t.Fatalf("writer commit: %v", err)
	}

	select {
	case res := <-done:
		if res.err != nil {
			t.Fatalf("delete path: %v", res.err)
		}
		if res.refs != 1 {
			t.Fatalf("delete path after writer commit: refs want=1 got=%d", res.refs)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("delete path still blocked after writer commit")
	}
}
