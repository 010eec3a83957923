package repos

import (
	"github.com/christianrafael21/hoopscout/internal/data/repos/scouting"
)

type PhysicalMeasurementRepo = scouting.PhysicalMeasurementRepo
type TechnicalMeasurementRepo = scouting.TechnicalMeasurementRepo
type ReferenceProfileRepo = scouting.ReferenceProfileRepo

type EvaluationRepo = scouting.EvaluationRepo
type AthleteEvaluationRepo = scouting.AthleteEvaluationRepo
type CoachEvaluationRepo = scouting.CoachEvaluationRepo

type HistoryEntryRepo = scouting.HistoryEntryRepo
type EvaluationHistoryRepo = scouting.EvaluationHistoryRepo
type HistoryItem = scouting.HistoryItem

type ReportRepo = scouting.ReportRepo

type LockStrength = scouting.LockStrength

var (
	NewPhysicalMeasurementRepo  = scouting.NewPhysicalMeasurementRepo
	NewTechnicalMeasurementRepo = scouting.NewTechnicalMeasurementRepo
	NewReferenceProfileRepo     = scouting.NewReferenceProfileRepo
	NewEvaluationRepo           = scouting.NewEvaluationRepo
	NewAthleteEvaluationRepo    = scouting.NewAthleteEvaluationRepo
	NewCoachEvaluationRepo      = scouting.NewCoachEvaluationRepo
	NewHistoryEntryRepo         = scouting.NewHistoryEntryRepo
	NewEvaluationHistoryRepo    = scouting.NewEvaluationHistoryRepo
	NewReportRepo               = scouting.NewReportRepo
)

const (
	RefPhysicalMeasurement  = scouting.RefPhysicalMeasurement
	RefTechnicalMeasurement = scouting.RefTechnicalMeasurement
	RefReferenceProfile     = scouting.RefReferenceProfile
)

const (
	LockShare  = scouting.LockShare
	LockUpdate = scouting.LockUpdate
)
