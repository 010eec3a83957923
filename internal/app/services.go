package app

import (
	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/data/aggregates"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/observability"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
	"github.com/christianrafael21/hoopscout/internal/services"
)

type Services struct {
	Auth services.AuthService

	EvaluationAggregate domainagg.EvaluationAggregate

	ReferenceProfiles services.ReferenceProfileService
	Measurements      services.MeasurementService
	Evaluations       services.EvaluationService
	Statistics        services.StatisticsService
	Comparison        services.ComparisonService
	Reports           services.ReportService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	evaluationAgg := aggregates.NewEvaluationAggregate(aggregates.EvaluationAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:    db,
			Log:   log,
			Hooks: aggregates.ChainHooks(aggregates.NewObservabilityHooks(metrics), aggregates.NewLogHooks(log)),
		},
		Evaluations:       r.Evaluation,
		Physical:          r.PhysicalMeasurement,
		Technical:         r.TechnicalMeasurement,
		Profiles:          r.ReferenceProfile,
		Athletes:          r.AthleteEvaluation,
		Coaches:           r.CoachEvaluation,
		History:           r.HistoryEntry,
		EvaluationHistory: r.EvaluationHistory,
	})

	profiles := services.NewReferenceProfileService(db, log, cfg.Bounds, r.ReferenceProfile, r.Evaluation)
	measurements := services.NewMeasurementService(db, log, cfg.Bounds, r.PhysicalMeasurement, r.TechnicalMeasurement, r.Evaluation)
	evaluations := services.NewEvaluationService(services.EvaluationServiceDeps{
		Log:         log,
		Aggregate:   evaluationAgg,
		Evaluations: r.Evaluation,
		Physical:    r.PhysicalMeasurement,
		Technical:   r.TechnicalMeasurement,
		Profiles:    r.ReferenceProfile,
		Athletes:    r.AthleteEvaluation,
		Coaches:     r.CoachEvaluation,
		History:     r.HistoryEntry,
	})
	statistics := services.NewStatisticsService(log, evaluations)
	comparison := services.NewComparisonService(log, evaluations, profiles, scoring.DefaultEliteProfile())
	reports := services.NewReportService(services.ReportServiceDeps{
		Log:         log,
		Metrics:     metrics,
		Reports:     r.Report,
		Evaluations: evaluations,
		Statistics:  statistics,
		Comparison:  comparison,
	})

	return Services{
		Auth:                services.NewAuthService(log, cfg.JWT.Secret, cfg.JWT.TTL),
		EvaluationAggregate: evaluationAgg,
		ReferenceProfiles:   profiles,
		Measurements:        measurements,
		Evaluations:         evaluations,
		Statistics:          statistics,
		Comparison:          comparison,
		Reports:             reports,
	}
}
