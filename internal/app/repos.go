package app

import (
	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/data/repos"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type Repos struct {
	PhysicalMeasurement  repos.PhysicalMeasurementRepo
	TechnicalMeasurement repos.TechnicalMeasurementRepo
	ReferenceProfile     repos.ReferenceProfileRepo

	Evaluation        repos.EvaluationRepo
	AthleteEvaluation repos.AthleteEvaluationRepo
	CoachEvaluation   repos.CoachEvaluationRepo

	HistoryEntry      repos.HistoryEntryRepo
	EvaluationHistory repos.EvaluationHistoryRepo

	Report repos.ReportRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		PhysicalMeasurement:  repos.NewPhysicalMeasurementRepo(db, log),
		TechnicalMeasurement: repos.NewTechnicalMeasurementRepo(db, log),
		ReferenceProfile:     repos.NewReferenceProfileRepo(db, log),

		Evaluation:        repos.NewEvaluationRepo(db, log),
		AthleteEvaluation: repos.NewAthleteEvaluationRepo(db, log),
		CoachEvaluation:   repos.NewCoachEvaluationRepo(db, log),

		HistoryEntry:      repos.NewHistoryEntryRepo(db, log),
		EvaluationHistory: repos.NewEvaluationHistoryRepo(db, log),

		Report: repos.NewReportRepo(db, log),
	}
}
