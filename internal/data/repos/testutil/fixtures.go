package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/christianrafael21/hoopscout/internal/domain"
)

func SeedPhysical(tb testing.TB, ctx context.Context, tx *gorm.DB, age int, height, weight float64) *types.PhysicalMeasurement {
	tb.Helper()
	row := &types.PhysicalMeasurement{ID: uuid.New(), Age: age, Height: height, Weight: weight}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed physical measurement: %v", err)
	}
	return row
}

func SeedTechnical(tb testing.TB, ctx context.Context, tx *gorm.DB, ft, three, two, ast float64) *types.TechnicalMeasurement {
	tb.Helper()
	row := &types.TechnicalMeasurement{
		ID:            uuid.New(),
		FreeThrowPct:  ft,
		ThreePointPct: three,
		TwoPointPct:   two,
		AssistsPct:    ast,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed technical measurement: %v", err)
	}
	return row
}

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, category int) *types.ReferenceProfile {
	tb.Helper()
	row := &types.ReferenceProfile{
		ID:                 uuid.New(),
		AgeCategory:        category,
		IdealWeight:        80,
		IdealHeight:        1.90,
		IdealFreeThrowPct:  90,
		IdealThreePointPct: 45,
		IdealTwoPointPct:   60,
		IdealAssistPct:     40,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed reference profile: %v", err)
	}
	return row
}

// SeedEvaluation inserts an evaluation with its athlete and coach links but no history.
func SeedEvaluation(tb testing.TB, ctx context.Context, tx *gorm.DB, physicalID, technicalID, athleteID, coachID uuid.UUID, at time.Time) *types.Evaluation {
	tb.Helper()
	ev := &types.Evaluation{
		ID:                     uuid.New(),
		EvaluatedAt:            at.UTC(),
		PhysicalMeasurementID:  physicalID,
		TechnicalMeasurementID: technicalID,
		Version:                1,
	}
	if err := tx.WithContext(ctx).Create(ev).Error; err != nil {
		tb.Fatalf("seed evaluation: %v", err)
	}
	if err := tx.WithContext(ctx).Create(&types.AthleteEvaluation{ID: uuid.New(), EvaluationID: ev.ID, AthleteID: athleteID}).Error; err != nil {
		tb.Fatalf("seed athlete link: %v", err)
	}
	if err := tx.WithContext(ctx).Create(&types.CoachEvaluation{ID: uuid.New(), EvaluationID: ev.ID, CoachID: coachID}).Error; err != nil {
		tb.Fatalf("seed coach link: %v", err)
	}
	return ev
}
