package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/data/aggregates"
	"github.com/christianrafael21/hoopscout/internal/data/repos"
	"github.com/christianrafael21/hoopscout/internal/data/repos/testutil"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/observability"
)

type scoutingEnv struct {
	ctx context.Context
	db  *gorm.DB

	metrics      *observability.Metrics
	profiles     ReferenceProfileService
	measurements MeasurementService
	evaluations  EvaluationService
	statistics   StatisticsService
	comparison   ComparisonService
	reports      ReportService
}

func steppingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(step)
		return cur
	}
}

func newScoutingEnv(t *testing.T) *scoutingEnv {
	t.Helper()
	db := testutil.Isolated(t)
	log := testutil.Logger(t)
	bounds := scoring.DefaultBounds()
	clock := steppingClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), time.Second)

	physical := repos.NewPhysicalMeasurementRepo(db, log)
	technical := repos.NewTechnicalMeasurementRepo(db, log)
	profiles := repos.NewReferenceProfileRepo(db, log)
	evaluations := repos.NewEvaluationRepo(db, log)
	athletes := repos.NewAthleteEvaluationRepo(db, log)
	coaches := repos.NewCoachEvaluationRepo(db, log)
	history := repos.NewHistoryEntryRepo(db, log)

	metrics := observability.NewMetrics(observability.WithNamespace("test"))
	agg := aggregates.NewEvaluationAggregate(aggregates.EvaluationAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.NewObservabilityHooks(metrics),
			Clock: clock,
		},
		Evaluations:       evaluations,
		Physical:          physical,
		Technical:         technical,
		Profiles:          profiles,
		Athletes:          athletes,
		Coaches:           coaches,
		History:           history,
		EvaluationHistory: repos.NewEvaluationHistoryRepo(db, log),
	})

	env := &scoutingEnv{ctx: context.Background(), db: db, metrics: metrics}
	env.profiles = NewReferenceProfileService(db, log, bounds, profiles, evaluations)
	env.measurements = NewMeasurementService(db, log, bounds, physical, technical, evaluations)
	env.evaluations = NewEvaluationService(EvaluationServiceDeps{
		Log:         log,
		Aggregate:   agg,
		Evaluations: evaluations,
		Physical:    physical,
		Technical:   technical,
		Profiles:    profiles,
		Athletes:    athletes,
		Coaches:     coaches,
		History:     history,
	})
	env.statistics = NewStatisticsService(log, env.evaluations)
	env.comparison = NewComparisonService(log, env.evaluations, env.profiles, scoring.DefaultEliteProfile())
	env.reports = NewReportService(ReportServiceDeps{
		Log:         log,
		Metrics:     metrics,
		Reports:     repos.NewReportRepo(db, log),
		Evaluations: env.evaluations,
		Statistics:  env.statistics,
		Comparison:  env.comparison,
		Clock:       clock,
	})
	return env
}

func (e *scoutingEnv) mustPhysical(t *testing.T, age int, height, weight float64) uuid.UUID {
	t.Helper()
	row, err := e.measurements.CreatePhysical(e.ctx, PhysicalInput{Age: age, Height: height, Weight: weight})
	if err != nil {
		t.Fatalf("CreatePhysical: %v", err)
	}
	return row.ID
}

func (e *scoutingEnv) mustTechnical(t *testing.T, ft, three, two, ast float64) uuid.UUID {
	t.Helper()
	row, err := e.measurements.CreateTechnical(e.ctx, TechnicalInput{FreeThrowPct: ft, ThreePointPct: three, TwoPointPct: two, AssistsPct: ast})
	if err != nil {
		t.Fatalf("CreateTechnical: %v", err)
	}
	return row.ID
}

func (e *scoutingEnv) mustProfile(t *testing.T, category int) ReferenceProfileInput {
	t.Helper()
	in := ReferenceProfileInput{
		AgeCategory:        category,
		IdealWeight:        80,
		IdealHeight:        1.90,
		IdealFreeThrowPct:  90,
		IdealThreePointPct: 45,
		IdealTwoPointPct:   60,
		IdealAssistPct:     40,
	}
	if _, err := e.profiles.Create(e.ctx, in); err != nil {
		t.Fatalf("Create profile %d: %v", category, err)
	}
	return in
}
