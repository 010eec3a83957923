package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/christianrafael21/hoopscout/internal/data/aggregates"
	"github.com/christianrafael21/hoopscout/internal/data/repos"
	types "github.com/christianrafael21/hoopscout/internal/domain"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/observability"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// EvaluationReportPayload is stored as the JSON payload of an evaluation report.
type EvaluationReportPayload struct {
	Evaluation *EvaluationView `json:"evaluation"`
	Comparison *Comparison     `json:"comparison,omitempty"`
}

// StatisticsReportPayload is stored as the JSON payload of a statistics report.
type StatisticsReportPayload struct {
	AthleteID  uuid.UUID           `json:"athlete_id"`
	Statistics *scoring.Statistics `json:"statistics"`
	History    []repos.HistoryItem `json:"history"`
}

type ReportService interface {
	GenerateEvaluationReport(ctx context.Context, evaluationID uuid.UUID) (*types.Report, error)
	GenerateStatisticsReport(ctx context.Context, athleteID uuid.UUID) (*types.Report, error)
	ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*types.Report, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Report, error)
	RenderScorecard(ctx context.Context, reportID uuid.UUID) ([]byte, error)
}

type ReportServiceDeps struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	Reports     repos.ReportRepo
	Evaluations EvaluationService
	Statistics  StatisticsService
	Comparison  ComparisonService
	Renderer    ScorecardRenderer
	Clock       func() time.Time
}

type reportService struct {
	log         *logger.Logger
	metrics     *observability.Metrics
	reports     repos.ReportRepo
	evaluations EvaluationService
	statistics  StatisticsService
	comparison  ComparisonService
	renderer    ScorecardRenderer
	clock       func() time.Time
}

func NewReportService(deps ReportServiceDeps) ReportService {
	if deps.Renderer == nil {
		deps.Renderer = NewScorecardRenderer()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &reportService{
		log:         deps.Log.With("service", "ReportService"),
		metrics:     deps.Metrics,
		reports:     deps.Reports,
		evaluations: deps.Evaluations,
		statistics:  deps.Statistics,
		comparison:  deps.Comparison,
		renderer:    deps.Renderer,
		clock:       deps.Clock,
	}
}

func reportFileName(kind types.ReportKind, athleteID uuid.UUID, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d.png", kind, athleteID, at.UnixMilli())
}

func (s *reportService) GenerateEvaluationReport(ctx context.Context, evaluationID uuid.UUID) (*types.Report, error) {
	const op = "Scouting.Report.GenerateEvaluation"
	var payload EvaluationReportPayload

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		view, err := s.evaluations.GetByID(gctx, evaluationID)
		if err != nil {
			return err
		}
		payload.Evaluation = view
		return nil
	})
	g.Go(func() error {
		cmp, err := s.comparison.Compare(gctx, evaluationID)
		switch {
		case err == nil:
			payload.Comparison = cmp
		case domainagg.IsCode(err, domainagg.CodeNotFound), domainagg.IsCode(err, domainagg.CodeValidation):
			// No category target for this athlete; the report carries the evaluation alone.
		default:
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	evalID := payload.Evaluation.ID
	return s.persist(ctx, op, types.ReportKindEvaluation, payload.Evaluation.AthleteID, &evalID, payload)
}

func (s *reportService) GenerateStatisticsReport(ctx context.Context, athleteID uuid.UUID) (*types.Report, error) {
	const op = "Scouting.Report.GenerateStatistics"
	payload := StatisticsReportPayload{AthleteID: athleteID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.statistics.ForAthlete(gctx, athleteID)
		if err != nil {
			return err
		}
		payload.Statistics = stats
		return nil
	})
	g.Go(func() error {
		items, err := s.evaluations.GetHistoryByAthlete(gctx, athleteID)
		if err != nil {
			return err
		}
		payload.History = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.persist(ctx, op, types.ReportKindStatistics, athleteID, nil, payload)
}

func (s *reportService) persist(ctx context.Context, op string, kind types.ReportKind, athleteID uuid.UUID, evaluationID *uuid.UUID, payload any) (*types.Report, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	now := s.clock().UTC()
	row, err := s.reports.Create(dbctx.New(ctx), &types.Report{
		ID:           uuid.New(),
		Kind:         kind,
		AthleteID:    athleteID,
		EvaluationID: evaluationID,
		FileName:     reportFileName(kind, athleteID, now),
		Payload:      datatypes.JSON(raw),
		CreatedAt:    now,
	})
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	s.metrics.IncReportGenerated(string(kind))
	s.log.Info("report generated", "report_id", row.ID, "kind", kind, "athlete_id", athleteID)
	return row, nil
}

func (s *reportService) ListByAthlete(ctx context.Context, athleteID uuid.UUID) ([]*types.Report, error) {
	const op = "Scouting.Report.ListByAthlete"
	if athleteID == uuid.Nil {
		return nil, domainagg.Validation(op, "missing athlete_id")
	}
	rows, err := s.reports.ListByAthlete(dbctx.New(ctx), athleteID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return rows, nil
}

func (s *reportService) GetByID(ctx context.Context, id uuid.UUID) (*types.Report, error) {
	const op = "Scouting.Report.GetByID"
	row, err := s.reports.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NotFound(op, "report not found")
	}
	return row, nil
}

func (s *reportService) RenderScorecard(ctx context.Context, reportID uuid.UUID) ([]byte, error) {
	const op = "Scouting.Report.RenderScorecard"
	row, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	card, err := scorecardFor(row)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	png, err := s.renderer.Render(card)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
	return png, nil
}

func scorecardFor(row *types.Report) (Scorecard, error) {
	switch row.Kind {
	case types.ReportKindEvaluation:
		var p EvaluationReportPayload
		if err := json.Unmarshal(row.Payload, &p); err != nil {
			return Scorecard{}, fmt.Errorf("decode evaluation payload: %w", err)
		}
		if p.Evaluation == nil {
			return Scorecard{}, fmt.Errorf("evaluation payload is empty")
		}
		card := Scorecard{
			Title:     "Evaluation scorecard",
			Subtitle:  "Evaluated " + p.Evaluation.EvaluatedAt.Format("2006-01-02"),
			ScoreLine: fmt.Sprintf("Average score %.2f / 10", p.Evaluation.AverageScore),
		}
		if p.Comparison != nil {
			card.ScoreLine += fmt.Sprintf("   Suitability %.2f", p.Comparison.Suitability)
		}
		if t := p.Evaluation.Technical; t != nil {
			card.Bars = technicalBars(t.FreeThrowPct, t.ThreePointPct, t.TwoPointPct, t.AssistsPct)
		}
		return card, nil
	case types.ReportKindStatistics:
		var p StatisticsReportPayload
		if err := json.Unmarshal(row.Payload, &p); err != nil {
			return Scorecard{}, fmt.Errorf("decode statistics payload: %w", err)
		}
		if p.Statistics == nil {
			return Scorecard{}, fmt.Errorf("statistics payload is empty")
		}
		st := p.Statistics
		return Scorecard{
			Title:    "Athlete statistics",
			Subtitle: fmt.Sprintf("%d evaluation(s)", st.TotalEvaluations),
			ScoreLine: fmt.Sprintf("Mean score %.2f / 10   Evolution %+.2f (%+.1f%%)",
				st.MeanScore, st.Evolution.Delta, st.Evolution.PercentDelta),
			Bars: technicalBars(st.MeanTechnical.FreeThrow, st.MeanTechnical.ThreePoint, st.MeanTechnical.TwoPoint, st.MeanTechnical.Assists),
		}, nil
	default:
		return Scorecard{}, fmt.Errorf("unknown report kind %q", row.Kind)
	}
}

func technicalBars(ft, three, two, ast float64) []ScorecardBar {
	return []ScorecardBar{
		{Label: "Free throw", Value: ft},
		{Label: "Three point", Value: three},
		{Label: "Two point", Value: two},
		{Label: "Assists", Value: ast},
	}
}
