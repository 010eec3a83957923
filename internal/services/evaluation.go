package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/christianrafael21/hoopscout/internal/data/aggregates"
	"github.com/christianrafael21/hoopscout/internal/data/repos"
	types "github.com/christianrafael21/hoopscout/internal/domain"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// EvaluationView is an evaluation with its links and measurements resolved.
// AverageScore is derived on read and never stored.
type EvaluationView struct {
	ID               uuid.UUID                   `json:"id"`
	EvaluatedAt      time.Time                   `json:"evaluated_at"`
	Version          int                         `json:"version"`
	AthleteID        uuid.UUID                   `json:"athlete_id"`
	CoachID          uuid.UUID                   `json:"coach_id"`
	Physical         *types.PhysicalMeasurement  `json:"physical_measurement"`
	Technical        *types.TechnicalMeasurement `json:"technical_measurement"`
	ReferenceProfile *types.ReferenceProfile     `json:"reference_profile,omitempty"`
	AverageScore     float64                     `json:"average_score"`
}

type EvaluationService interface {
	Create(ctx context.Context, in domainagg.CreateEvaluationInput) (*EvaluationView, error)
	Update(ctx context.Context, in domainagg.UpdateEvaluationInput) (*EvaluationView, error)
	Remove(ctx context.Context, in domainagg.RemoveEvaluationInput) error

	GetByID(ctx context.Context, id uuid.UUID) (*EvaluationView, error)
	GetByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*EvaluationView, error)
	GetHistoryByAthlete(ctx context.Context, athleteID uuid.UUID) ([]repos.HistoryItem, error)
}

type evaluationService struct {
	log         *logger.Logger
	aggregate   domainagg.EvaluationAggregate
	evaluations repos.EvaluationRepo
	physical    repos.PhysicalMeasurementRepo
	technical   repos.TechnicalMeasurementRepo
	profiles    repos.ReferenceProfileRepo
	athletes    repos.AthleteEvaluationRepo
	coaches     repos.CoachEvaluationRepo
	history     repos.HistoryEntryRepo
}

type EvaluationServiceDeps struct {
	Log         *logger.Logger
	Aggregate   domainagg.EvaluationAggregate
	Evaluations repos.EvaluationRepo
	Physical    repos.PhysicalMeasurementRepo
	Technical   repos.TechnicalMeasurementRepo
	Profiles    repos.ReferenceProfileRepo
	Athletes    repos.AthleteEvaluationRepo
	Coaches     repos.CoachEvaluationRepo
	History     repos.HistoryEntryRepo
}

func NewEvaluationService(deps EvaluationServiceDeps) EvaluationService {
	return &evaluationService{
		log:         deps.Log.With("service", "EvaluationService"),
		aggregate:   deps.Aggregate,
		evaluations: deps.Evaluations,
		physical:    deps.Physical,
		technical:   deps.Technical,
		profiles:    deps.Profiles,
		athletes:    deps.Athletes,
		coaches:     deps.Coaches,
		history:     deps.History,
	}
}

func (s *evaluationService) Create(ctx context.Context, in domainagg.CreateEvaluationInput) (*EvaluationView, error) {
	res, err := s.aggregate.Create(ctx, in)
	if err != nil {
		s.log.Warn("evaluation create rejected", "coach_id", in.CoachID, "code", domainagg.CodeOf(err), "error", domainagg.MessageOf(err))
		return nil, err
	}
	s.log.Info("evaluation created", "evaluation_id", res.EvaluationID, "athlete_id", in.AthleteID, "coach_id", in.CoachID)
	return s.GetByID(ctx, res.EvaluationID)
}

func (s *evaluationService) Update(ctx context.Context, in domainagg.UpdateEvaluationInput) (*EvaluationView, error) {
	res, err := s.aggregate.Update(ctx, in)
	if err != nil {
		s.log.Warn("evaluation update rejected", "evaluation_id", in.EvaluationID, "coach_id", in.CoachID, "code", domainagg.CodeOf(err), "error", domainagg.MessageOf(err))
		return nil, err
	}
	s.log.Info("evaluation updated", "evaluation_id", res.EvaluationID, "version", res.Version)
	return s.GetByID(ctx, res.EvaluationID)
}

func (s *evaluationService) Remove(ctx context.Context, in domainagg.RemoveEvaluationInput) error {
	if _, err := s.aggregate.Remove(ctx, in); err != nil {
		s.log.Warn("evaluation remove rejected", "evaluation_id", in.EvaluationID, "coach_id", in.CoachID, "code", domainagg.CodeOf(err), "error", domainagg.MessageOf(err))
		return err
	}
	s.log.Info("evaluation removed", "evaluation_id", in.EvaluationID)
	return nil
}

func (s *evaluationService) GetByID(ctx context.Context, id uuid.UUID) (*EvaluationView, error) {
	const op = "Scouting.Evaluation.GetByID"
	dbc := dbctx.New(ctx)
	ev, err := s.evaluations.GetByID(dbc, id)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if ev == nil {
		return nil, domainagg.NotFound(op, "evaluation not found")
	}
	views, err := s.hydrate(dbc, []*types.Evaluation{ev})
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return views[0], nil
}

func (s *evaluationService) GetByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*EvaluationView, error) {
	const op = "Scouting.Evaluation.GetByAthlete"
	if athleteID == uuid.Nil {
		return nil, domainagg.Validation(op, "missing athlete_id")
	}
	dbc := dbctx.New(ctx)
	rows, err := s.evaluations.ListByAthlete(dbc, athleteID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	views, err := s.hydrate(dbc, rows)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return views, nil
}

func (s *evaluationService) GetHistoryByAthlete(ctx context.Context, athleteID uuid.UUID) ([]repos.HistoryItem, error) {
	const op = "Scouting.Evaluation.GetHistoryByAthlete"
	if athleteID == uuid.Nil {
		return nil, domainagg.Validation(op, "missing athlete_id")
	}
	items, err := s.history.ListByAthlete(dbctx.New(ctx), athleteID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return items, nil
}

// hydrate resolves links and measurements with one query per table, keeping the order of rows.
func (s *evaluationService) hydrate(dbc dbctx.Context, rows []*types.Evaluation) ([]*EvaluationView, error) {
	out := make([]*EvaluationView, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	evalIDs := make([]uuid.UUID, 0, len(rows))
	physIDs := make([]uuid.UUID, 0, len(rows))
	techIDs := make([]uuid.UUID, 0, len(rows))
	for _, ev := range rows {
		evalIDs = append(evalIDs, ev.ID)
		physIDs = append(physIDs, ev.PhysicalMeasurementID)
		techIDs = append(techIDs, ev.TechnicalMeasurementID)
	}

	athleteLinks, err := s.athletes.GetByEvaluationIDs(dbc, evalIDs)
	if err != nil {
		return nil, err
	}
	athleteByEval := make(map[uuid.UUID]uuid.UUID, len(athleteLinks))
	for _, l := range athleteLinks {
		athleteByEval[l.EvaluationID] = l.AthleteID
	}

	coachLinks, err := s.coaches.GetByEvaluationIDs(dbc, evalIDs)
	if err != nil {
		return nil, err
	}
	coachByEval := make(map[uuid.UUID]uuid.UUID, len(coachLinks))
	for _, l := range coachLinks {
		coachByEval[l.EvaluationID] = l.CoachID
	}

	physRows, err := s.physical.GetByIDs(dbc, physIDs)
	if err != nil {
		return nil, err
	}
	physByID := make(map[uuid.UUID]*types.PhysicalMeasurement, len(physRows))
	for _, p := range physRows {
		physByID[p.ID] = p
	}

	techRows, err := s.technical.GetByIDs(dbc, techIDs)
	if err != nil {
		return nil, err
	}
	techByID := make(map[uuid.UUID]*types.TechnicalMeasurement, len(techRows))
	for _, t := range techRows {
		techByID[t.ID] = t
	}

	profileByID := map[uuid.UUID]*types.ReferenceProfile{}
	for _, ev := range rows {
		view := &EvaluationView{
			ID:          ev.ID,
			EvaluatedAt: ev.EvaluatedAt,
			Version:     ev.Version,
			AthleteID:   athleteByEval[ev.ID],
			CoachID:     coachByEval[ev.ID],
			Physical:    physByID[ev.PhysicalMeasurementID],
			Technical:   techByID[ev.TechnicalMeasurementID],
		}
		if ev.ReferenceProfileID != nil {
			p, ok := profileByID[*ev.ReferenceProfileID]
			if !ok {
				p, err = s.profiles.GetByID(dbc, *ev.ReferenceProfileID)
				if err != nil {
					return nil, err
				}
				profileByID[*ev.ReferenceProfileID] = p
			}
			view.ReferenceProfile = p
		}
		view.AverageScore = scoring.AverageScore(technicalScores(view.Technical))
		out = append(out, view)
	}
	return out, nil
}

func technicalScores(t *types.TechnicalMeasurement) *scoring.TechnicalScores {
	if t == nil {
		return nil
	}
	return &scoring.TechnicalScores{
		FreeThrow:  t.FreeThrowPct,
		ThreePoint: t.ThreePointPct,
		TwoPoint:   t.TwoPointPct,
		Assists:    t.AssistsPct,
	}
}
