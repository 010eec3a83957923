package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/christianrafael21/hoopscout/internal/data/aggregates"
	"github.com/christianrafael21/hoopscout/internal/data/repos"
	types "github.com/christianrafael21/hoopscout/internal/domain"
	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/domain/scoring"
	"github.com/christianrafael21/hoopscout/internal/platform/dbctx"
	"github.com/christianrafael21/hoopscout/internal/platform/logger"
)

type ReferenceProfileInput struct {
	AgeCategory        int     `json:"age_category" yaml:"age_category"`
	IdealWeight        float64 `json:"ideal_weight" yaml:"ideal_weight"`
	IdealHeight        float64 `json:"ideal_height" yaml:"ideal_height"`
	IdealFreeThrowPct  float64 `json:"ideal_free_throw_pct" yaml:"ideal_free_throw_pct"`
	IdealThreePointPct float64 `json:"ideal_three_point_pct" yaml:"ideal_three_point_pct"`
	IdealTwoPointPct   float64 `json:"ideal_two_point_pct" yaml:"ideal_two_point_pct"`
	IdealAssistPct     float64 `json:"ideal_assist_pct" yaml:"ideal_assist_pct"`
}

// ReferenceProfilePatch is a partial update; nil fields keep their stored value.
type ReferenceProfilePatch struct {
	AgeCategory        *int
	IdealWeight        *float64
	IdealHeight        *float64
	IdealFreeThrowPct  *float64
	IdealThreePointPct *float64
	IdealTwoPointPct   *float64
	IdealAssistPct     *float64
}

type ReferenceProfileService interface {
	Create(ctx context.Context, in ReferenceProfileInput) (*types.ReferenceProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.ReferenceProfile, error)
	GetByAgeCategory(ctx context.Context, age int) (*types.ReferenceProfile, error)
	List(ctx context.Context) ([]*types.ReferenceProfile, error)
	Update(ctx context.Context, id uuid.UUID, patch ReferenceProfilePatch) (*types.ReferenceProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Seed upserts profiles keyed by age category.
	Seed(ctx context.Context, in []ReferenceProfileInput) (int, error)
}

type referenceProfileService struct {
	db          *gorm.DB
	log         *logger.Logger
	bounds      scoring.Bounds
	profiles    repos.ReferenceProfileRepo
	evaluations repos.EvaluationRepo
}

func NewReferenceProfileService(db *gorm.DB, log *logger.Logger, bounds scoring.Bounds, profiles repos.ReferenceProfileRepo, evaluations repos.EvaluationRepo) ReferenceProfileService {
	return &referenceProfileService{
		db:          db,
		log:         log.With("service", "ReferenceProfileService"),
		bounds:      bounds,
		profiles:    profiles,
		evaluations: evaluations,
	}
}

func (s *referenceProfileService) validate(op string, in ReferenceProfileInput) error {
	b := s.bounds
	return firstViolation(op,
		b.CheckAgeCategory("age_category", in.AgeCategory),
		b.CheckWeight("ideal_weight", in.IdealWeight),
		b.CheckHeight("ideal_height", in.IdealHeight),
		b.CheckPercent("ideal_free_throw_pct", in.IdealFreeThrowPct),
		b.CheckPercent("ideal_three_point_pct", in.IdealThreePointPct),
		b.CheckPercent("ideal_two_point_pct", in.IdealTwoPointPct),
		b.CheckPercent("ideal_assist_pct", in.IdealAssistPct),
	)
}

func (in ReferenceProfileInput) row() *types.ReferenceProfile {
	return &types.ReferenceProfile{
		AgeCategory:        in.AgeCategory,
		IdealWeight:        in.IdealWeight,
		IdealHeight:        in.IdealHeight,
		IdealFreeThrowPct:  in.IdealFreeThrowPct,
		IdealThreePointPct: in.IdealThreePointPct,
		IdealTwoPointPct:   in.IdealTwoPointPct,
		IdealAssistPct:     in.IdealAssistPct,
	}
}

func (s *referenceProfileService) Create(ctx context.Context, in ReferenceProfileInput) (*types.ReferenceProfile, error) {
	const op = "Scouting.ReferenceProfile.Create"
	if err := s.validate(op, in); err != nil {
		return nil, err
	}
	var out *types.ReferenceProfile
	err := inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		existing, err := s.profiles.GetByAgeCategory(dbc, in.AgeCategory)
		if err != nil {
			return err
		}
		if existing != nil {
			return domainagg.Conflict(op, fmt.Sprintf("reference profile for age category %d already exists", in.AgeCategory))
		}
		out, err = s.profiles.Create(dbc, in.row())
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("reference profile created", "profile_id", out.ID, "age_category", out.AgeCategory)
	return out, nil
}

func (s *referenceProfileService) GetByID(ctx context.Context, id uuid.UUID) (*types.ReferenceProfile, error) {
	const op = "Scouting.ReferenceProfile.GetByID"
	row, err := s.profiles.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NotFound(op, "reference profile not found")
	}
	return row, nil
}

func (s *referenceProfileService) GetByAgeCategory(ctx context.Context, age int) (*types.ReferenceProfile, error) {
	const op = "Scouting.ReferenceProfile.GetByAgeCategory"
	if s.bounds.CheckAgeCategory("age_category", age) != nil {
		return nil, domainagg.Validation(op, "age category not allowed")
	}
	row, err := s.profiles.GetByAgeCategory(dbctx.New(ctx), age)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NotFound(op, fmt.Sprintf("no reference profile for age category %d", age))
	}
	return row, nil
}

func (s *referenceProfileService) List(ctx context.Context) ([]*types.ReferenceProfile, error) {
	rows, err := s.profiles.List(dbctx.New(ctx))
	if err != nil {
		return nil, aggregates.MapError("Scouting.ReferenceProfile.List", err)
	}
	return rows, nil
}

func (s *referenceProfileService) Update(ctx context.Context, id uuid.UUID, patch ReferenceProfilePatch) (*types.ReferenceProfile, error) {
	const op = "Scouting.ReferenceProfile.Update"
	b := s.bounds
	updates := map[string]interface{}{}
	var checks []error
	if patch.AgeCategory != nil {
		checks = append(checks, b.CheckAgeCategory("age_category", *patch.AgeCategory))
		updates["age_category"] = *patch.AgeCategory
	}
	if patch.IdealWeight != nil {
		checks = append(checks, b.CheckWeight("ideal_weight", *patch.IdealWeight))
		updates["ideal_weight"] = *patch.IdealWeight
	}
	if patch.IdealHeight != nil {
		checks = append(checks, b.CheckHeight("ideal_height", *patch.IdealHeight))
		updates["ideal_height"] = *patch.IdealHeight
	}
	if patch.IdealFreeThrowPct != nil {
		checks = append(checks, b.CheckPercent("ideal_free_throw_pct", *patch.IdealFreeThrowPct))
		updates["ideal_free_throw_pct"] = *patch.IdealFreeThrowPct
	}
	if patch.IdealThreePointPct != nil {
		checks = append(checks, b.CheckPercent("ideal_three_point_pct", *patch.IdealThreePointPct))
		updates["ideal_three_point_pct"] = *patch.IdealThreePointPct
	}
	if patch.IdealTwoPointPct != nil {
		checks = append(checks, b.CheckPercent("ideal_two_point_pct", *patch.IdealTwoPointPct))
		updates["ideal_two_point_pct"] = *patch.IdealTwoPointPct
	}
	if patch.IdealAssistPct != nil {
		checks = append(checks, b.CheckPercent("ideal_assist_pct", *patch.IdealAssistPct))
		updates["ideal_assist_pct"] = *patch.IdealAssistPct
	}
	if err := firstViolation(op, checks...); err != nil {
		return nil, err
	}

	var out *types.ReferenceProfile
	err := inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		row, err := s.profiles.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "reference profile not found")
		}
		if patch.AgeCategory != nil && *patch.AgeCategory != row.AgeCategory {
			taken, err := s.profiles.GetByAgeCategory(dbc, *patch.AgeCategory)
			if err != nil {
				return err
			}
			if taken != nil {
				return domainagg.Conflict(op, fmt.Sprintf("reference profile for age category %d already exists", *patch.AgeCategory))
			}
		}
		if len(updates) > 0 {
			if err := s.profiles.UpdateFields(dbc, id, updates); err != nil {
				return err
			}
		}
		out, err = s.profiles.GetByID(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *referenceProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "Scouting.ReferenceProfile.Delete"
	return inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		row, err := s.profiles.LockByID(dbc, id, repos.LockUpdate)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "reference profile not found")
		}
		refs, err := s.evaluations.CountReferencing(dbc, repos.RefReferenceProfile, id)
		if err != nil {
			return err
		}
		if refs > 0 {
			return domainagg.Conflict(op, fmt.Sprintf("reference profile is used by %d evaluation(s)", refs))
		}
		_, err = s.profiles.Delete(dbc, id)
		return err
	})
}

func (s *referenceProfileService) Seed(ctx context.Context, in []ReferenceProfileInput) (int, error) {
	const op = "Scouting.ReferenceProfile.Seed"
	rows := make([]*types.ReferenceProfile, 0, len(in))
	seen := map[int]bool{}
	for _, p := range in {
		if err := s.validate(op, p); err != nil {
			return 0, err
		}
		if seen[p.AgeCategory] {
			return 0, domainagg.Validation(op, fmt.Sprintf("age category %d listed twice", p.AgeCategory))
		}
		seen[p.AgeCategory] = true
		rows = append(rows, p.row())
	}
	if len(rows) == 0 {
		return 0, nil
	}
	err := inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		return s.profiles.UpsertByAgeCategory(dbc, rows)
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("reference profiles seeded", "count", len(rows))
	return len(rows), nil
}
