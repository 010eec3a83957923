package scouting

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/data/repos/testutil"
	types "github.com/christianrafael21/hoopscout/internal/domain"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
)

func TestPhysicalMeasurementRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewPhysicalMeasurementRepo(db, testutil.Logger(t))

	a, err := repo.Create(dbc, &types.PhysicalMeasurement{Age: 16, Height: 1.85, Weight: 75})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Fatalf("Create: expected generated id")
	}
	b := testutil.SeedPhysical(t, ctx, tx, 14, 1.70, 60)

	got, err := repo.GetByID(dbc, a.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v row=%v", err, got)
	}
	if got.Age != 16 || got.Height != 1.85 || got.Weight != 75 {
		t.Fatalf("GetByID: unexpected row %+v", got)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID(missing): err=%v row=%v", err, missing)
	}

	rows, err := repo.GetByIDs(dbc, []uuid.UUID{a.ID, b.ID})
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}

	if err := repo.UpdateFields(dbc, a.ID, map[string]interface{}{"weight": 77.5}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, _ = repo.GetByID(dbc, a.ID)
	if got.Weight != 77.5 || got.Height != 1.85 {
		t.Fatalf("UpdateFields: expected weight 77.5 with height untouched, got %+v", got)
	}

	n, err := repo.Delete(dbc, a.ID)
	if err != nil || n != 1 {
		t.Fatalf("Delete: err=%v n=%d", err, n)
	}
	n, err = repo.Delete(dbc, a.ID)
	if err != nil || n != 0 {
		t.Fatalf("Delete(again): err=%v n=%d", err, n)
	}
}

func TestTechnicalMeasurementRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewTechnicalMeasurementRepo(db, testutil.Logger(t))

	row, err := repo.Create(dbc, &types.TechnicalMeasurement{FreeThrowPct: 80, ThreePointPct: 35, TwoPointPct: 50, AssistsPct: 12})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.UpdateFields(dbc, row.ID, map[string]interface{}{"assists_pct": 20.0}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err := repo.GetByID(dbc, row.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: err=%v row=%v", err, got)
	}
	if got.AssistsPct != 20 || got.FreeThrowPct != 80 {
		t.Fatalf("UpdateFields: unexpected row %+v", got)
	}
}

func TestReferenceProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewReferenceProfileRepo(db, testutil.Logger(t))

	junior := testutil.SeedProfile(t, ctx, tx, 18)
	youth := testutil.SeedProfile(t, ctx, tx, 15)

	list, err := repo.List(dbc)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(list))
	}
	if list[0].ID != youth.ID || list[1].ID != junior.ID {
		t.Fatalf("List: expected ascending age category")
	}

	got, err := repo.GetByAgeCategory(dbc, 15)
	if err != nil || got == nil || got.ID != youth.ID {
		t.Fatalf("GetByAgeCategory: err=%v row=%v", err, got)
	}
	none, err := repo.GetByAgeCategory(dbc, 12)
	if err != nil || none != nil {
		t.Fatalf("GetByAgeCategory(12): err=%v row=%v", err, none)
	}

	if _, err := repo.Create(dbc, &types.ReferenceProfile{AgeCategory: 15, IdealHeight: 1.8, IdealWeight: 70}); err == nil {
		t.Fatalf("Create: expected unique violation on age category")
	}
}

func TestReferenceProfileRepo_Upsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewReferenceProfileRepo(db, testutil.Logger(t))

	seed := []*types.ReferenceProfile{
		{AgeCategory: 15, IdealHeight: 1.80, IdealWeight: 70, IdealFreeThrowPct: 70},
		{AgeCategory: 18, IdealHeight: 1.90, IdealWeight: 82, IdealFreeThrowPct: 80},
	}
	if err := repo.UpsertByAgeCategory(dbc, seed); err != nil {
		t.Fatalf("UpsertByAgeCategory: %v", err)
	}
	again := []*types.ReferenceProfile{
		{AgeCategory: 15, IdealHeight: 1.82, IdealWeight: 71, IdealFreeThrowPct: 72},
	}
	if err := repo.UpsertByAgeCategory(dbc, again); err != nil {
		t.Fatalf("UpsertByAgeCategory(again): %v", err)
	}

	list, err := repo.List(dbc)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: err=%v len=%d", err, len(list))
	}
	if list[0].IdealHeight != 1.82 || list[0].IdealFreeThrowPct != 72 {
		t.Fatalf("UpsertByAgeCategory: expected updated youth profile, got %+v", list[0])
	}
}
