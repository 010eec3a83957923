package domain

import "github.com/christianrafael21/hoopscout/internal/domain/scouting"

type PhysicalMeasurement = scouting.PhysicalMeasurement
type TechnicalMeasurement = scouting.TechnicalMeasurement
type ReferenceProfile = scouting.ReferenceProfile

type Evaluation = scouting.Evaluation
type AthleteEvaluation = scouting.AthleteEvaluation
type CoachEvaluation = scouting.CoachEvaluation

type HistoryEntry = scouting.HistoryEntry
type EvaluationHistory = scouting.EvaluationHistory

type Report = scouting.Report
type ReportKind = scouting.ReportKind

const (
	ReportKindEvaluation = scouting.ReportKindEvaluation
	ReportKindStatistics = scouting.ReportKindStatistics
)

// Models lists every persisted scouting table in migration order.
func Models() []any {
	return []any{
		&PhysicalMeasurement{},
		&TechnicalMeasurement{},
		&ReferenceProfile{},
		&Evaluation{},
		&AthleteEvaluation{},
		&CoachEvaluation{},
		&HistoryEntry{},
		&EvaluationHistory{},
		&Report{},
	}
}
