package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	types "github.com/christianrafael21/hoopscout/internal/domain"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

// ComparisonField is one measured value against its category target.
type ComparisonField struct {
	Field           string  `json:"field"`
	Value           float64 `json:"value"`
	Target          float64 `json:"target"`
	PercentOfTarget float64 `json:"percent_of_target"`
}

type Comparison struct {
	EvaluationID     uuid.UUID               `json:"evaluation_id"`
	AthleteID        uuid.UUID               `json:"athlete_id"`
	Age              int                     `json:"age"`
	AgeCategory      int                     `json:"age_category"`
	ReferenceProfile *types.ReferenceProfile `json:"reference_profile"`
	Fields           []ComparisonField       `json:"fields"`
	AverageScore     float64                 `json:"average_score"`
	Suitability      float64                 `json:"suitability"`
}

type ComparisonService interface {
	Compare(ctx context.Context, evaluationID uuid.UUID) (*Comparison, error)
}

type comparisonService struct {
	log         *logger.Logger
	evaluations EvaluationService
	profiles    ReferenceProfileService
	elite       scoring.EliteProfile
}

func NewComparisonService(log *logger.Logger, evaluations EvaluationService, profiles ReferenceProfileService, elite scoring.EliteProfile) ComparisonService {
	return &comparisonService{
		log:         log.With("service", "ComparisonService"),
		evaluations: evaluations,
		profiles:    profiles,
		elite:       elite,
	}
}

func (s *comparisonService) Compare(ctx context.Context, evaluationID uuid.UUID) (*Comparison, error) {
	const op = "Scouting.Comparison.Compare"
	view, err := s.evaluations.GetByID(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if view.Physical == nil || view.Technical == nil {
		return nil, domainagg.NewError(domainagg.CodeInvariantViolation, op, "evaluation measurements are missing", nil)
	}

	category, err := scoring.CategoryForAge(view.Physical.Age)
	if err != nil {
		return nil, domainagg.Wrap(domainagg.CodeValidation, op, err)
	}
	profile, err := s.profiles.GetByAgeCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	p, t := view.Physical, view.Technical
	field := func(name string, value, target float64) ComparisonField {
		return ComparisonField{
			Field:           name,
			Value:           value,
			Target:          target,
			PercentOfTarget: scoring.Round2(scoring.PercentOfTarget(value, target)),
		}
	}
	out := &Comparison{
		EvaluationID:     view.ID,
		AthleteID:        view.AthleteID,
		Age:              p.Age,
		AgeCategory:      category,
		ReferenceProfile: profile,
		AverageScore:     view.AverageScore,
		Fields: []ComparisonField{
			field("height", p.Height, profile.IdealHeight),
			field("weight", p.Weight, profile.IdealWeight),
			field("free_throw_pct", t.FreeThrowPct, profile.IdealFreeThrowPct),
			field("three_point_pct", t.ThreePointPct, profile.IdealThreePointPct),
			field("two_point_pct", t.TwoPointPct, profile.IdealTwoPointPct),
			field("assists_pct", t.AssistsPct, profile.IdealAssistPct),
		},
	}

	age := p.Age
	suitability, err := scoring.Suitability(scoring.SuitabilityInput{
		Height:     &p.Height,
		Weight:     &p.Weight,
		Age:        &age,
		FreeThrow:  &t.FreeThrowPct,
		TwoPoint:   &t.TwoPointPct,
		ThreePoint: &t.ThreePointPct,
		Assists:    &t.AssistsPct,
	}, s.elite)
	switch {
	case errors.Is(err, scoring.ErrInvalidEliteProfile):
		return nil, domainagg.Wrap(domainagg.CodeInternal, op, err)
	case err != nil:
		return nil, domainagg.Wrap(domainagg.CodeValidation, op, err)
	}
	out.Suitability = suitability
	return out, nil
}
