package services

import (
	"context"

	"github.com/google/uuid"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type StatisticsService interface {
	ForAthlete(ctx context.Context, athleteID uuid.UUID) (*scoring.Statistics, error)
}

type statisticsService struct {
	log         *logger.Logger
	evaluations EvaluationService
}

func NewStatisticsService(log *logger.Logger, evaluations EvaluationService) StatisticsService {
	return &statisticsService{
		log:         log.With("service", "StatisticsService"),
		evaluations: evaluations,
	}
}

func (s *statisticsService) ForAthlete(ctx context.Context, athleteID uuid.UUID) (*scoring.Statistics, error) {
	const op = "Scouting.Statistics.ForAthlete"
	views, err := s.evaluations.GetByAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domainagg.NotFound(op, "no evaluations found for athlete")
	}
	stats := scoring.Aggregate(samplesFromViews(views))
	return &stats, nil
}

func samplesFromViews(views []*EvaluationView) []scoring.Sample {
	out := make([]scoring.Sample, 0, len(views))
	for _, v := range views {
		sample := scoring.Sample{
			EvaluatedAt: v.EvaluatedAt,
			Technical:   technicalScores(v.Technical),
		}
		if sample.Technical != nil {
			score := v.AverageScore
			sample.Score = &score
		}
		if v.Physical != nil {
			sample.Physical = &scoring.PhysicalSample{
				Age:    v.Physical.Age,
				Height: v.Physical.Height,
				Weight: v.Physical.Weight,
			}
		}
		out = append(out, sample)
	}
	return out
}
