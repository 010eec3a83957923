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

type PhysicalInput struct {
	Age    int
	Height float64
	Weight float64
}

type PhysicalPatch struct {
	Age    *int
	Height *float64
	Weight *float64
}

type TechnicalInput struct {
	FreeThrowPct  float64
	ThreePointPct float64
	TwoPointPct   float64
	AssistsPct    float64
}

type TechnicalPatch struct {
	FreeThrowPct  *float64
	ThreePointPct *float64
	TwoPointPct   *float64
	AssistsPct    *float64
}

// MeasurementService is the store for physical and technical measurement records.
type MeasurementService interface {
	CreatePhysical(ctx context.Context, in PhysicalInput) (*types.PhysicalMeasurement, error)
	GetPhysical(ctx context.Context, id uuid.UUID) (*types.PhysicalMeasurement, error)
	UpdatePhysical(ctx context.Context, id uuid.UUID, patch PhysicalPatch) (*types.PhysicalMeasurement, error)
	DeletePhysical(ctx context.Context, id uuid.UUID) error

	CreateTechnical(ctx context.Context, in TechnicalInput) (*types.TechnicalMeasurement, error)
	GetTechnical(ctx context.Context, id uuid.UUID) (*types.TechnicalMeasurement, error)
	UpdateTechnical(ctx context.Context, id uuid.UUID, patch TechnicalPatch) (*types.TechnicalMeasurement, error)
	DeleteTechnical(ctx context.Context, id uuid.UUID) error
}

type measurementService struct {
	db          *gorm.DB
	log         *logger.Logger
	bounds      scoring.Bounds
	physical    repos.PhysicalMeasurementRepo
	technical   repos.TechnicalMeasurementRepo
	evaluations repos.EvaluationRepo
}

func NewMeasurementService(
	db *gorm.DB,
	log *logger.Logger,
	bounds scoring.Bounds,
	physical repos.PhysicalMeasurementRepo,
	technical repos.TechnicalMeasurementRepo,
	evaluations repos.EvaluationRepo,
) MeasurementService {
	return &measurementService{
		db:          db,
		log:         log.With("service", "MeasurementService"),
		bounds:      bounds,
		physical:    physical,
		technical:   technical,
		evaluations: evaluations,
	}
}

func (s *measurementService) CreatePhysical(ctx context.Context, in PhysicalInput) (*types.PhysicalMeasurement, error) {
	const op = "Scouting.PhysicalMeasurement.Create"
	b := s.bounds
	if err := firstViolation(op,
		b.CheckAge("age", in.Age),
		b.CheckHeight("height", in.Height),
		b.CheckWeight("weight", in.Weight),
	); err != nil {
		return nil, err
	}
	row, err := s.physical.Create(dbctx.New(ctx), &types.PhysicalMeasurement{Age: in.Age, Height: in.Height, Weight: in.Weight})
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return row, nil
}

func (s *measurementService) GetPhysical(ctx context.Context, id uuid.UUID) (*types.PhysicalMeasurement, error) {
	const op = "Scouting.PhysicalMeasurement.Get"
	row, err := s.physical.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NotFound(op, "physical measurement not found")
	}
	return row, nil
}

func (s *measurementService) UpdatePhysical(ctx context.Context, id uuid.UUID, patch PhysicalPatch) (*types.PhysicalMeasurement, error) {
	const op = "Scouting.PhysicalMeasurement.Update"
	b := s.bounds
	updates := map[string]interface{}{}
	var checks []error
	if patch.Age != nil {
		checks = append(checks, b.CheckAge("age", *patch.Age))
		updates["age"] = *patch.Age
	}
	if patch.Height != nil {
		checks = append(checks, b.CheckHeight("height", *patch.Height))
		updates["height"] = *patch.Height
	}
	if patch.Weight != nil {
		checks = append(checks, b.CheckWeight("weight", *patch.Weight))
		updates["weight"] = *patch.Weight
	}
	if err := firstViolation(op, checks...); err != nil {
		return nil, err
	}

	var out *types.PhysicalMeasurement
	err := inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		row, err := s.physical.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "physical measurement not found")
		}
		if len(updates) > 0 {
			if err := s.physical.UpdateFields(dbc, id, updates); err != nil {
				return err
			}
		}
		out, err = s.physical.GetByID(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *measurementService) DeletePhysical(ctx context.Context, id uuid.UUID) error {
	const op = "Scouting.PhysicalMeasurement.Delete"
	return inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		row, err := s.physical.LockByID(dbc, id, repos.LockUpdate)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "physical measurement not found")
		}
		if err := s.requireUnreferenced(dbc, op, repos.RefPhysicalMeasurement, id); err != nil {
			return err
		}
		_, err = s.physical.Delete(dbc, id)
		return err
	})
}

func (s *measurementService) CreateTechnical(ctx context.Context, in TechnicalInput) (*types.TechnicalMeasurement, error) {
	const op = "Scouting.TechnicalMeasurement.Create"
	b := s.bounds
	if err := firstViolation(op,
		b.CheckPercent("free_throw_pct", in.FreeThrowPct),
		b.CheckPercent("three_point_pct", in.ThreePointPct),
		b.CheckPercent("two_point_pct", in.TwoPointPct),
		b.CheckPercent("assists_pct", in.AssistsPct),
	); err != nil {
		return nil, err
	}
	row, err := s.technical.Create(dbctx.New(ctx), &types.TechnicalMeasurement{
		FreeThrowPct:  in.FreeThrowPct,
		ThreePointPct: in.ThreePointPct,
		TwoPointPct:   in.TwoPointPct,
		AssistsPct:    in.AssistsPct,
	})
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	return row, nil
}

func (s *measurementService) GetTechnical(ctx context.Context, id uuid.UUID) (*types.TechnicalMeasurement, error) {
	const op = "Scouting.TechnicalMeasurement.Get"
	row, err := s.technical.GetByID(dbctx.New(ctx), id)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	if row == nil {
		return nil, domainagg.NotFound(op, "technical measurement not found")
	}
	return row, nil
}

func (s *measurementService) UpdateTechnical(ctx context.Context, id uuid.UUID, patch TechnicalPatch) (*types.TechnicalMeasurement, error) {
	const op = "Scouting.TechnicalMeasurement.Update"
	b := s.bounds
	updates := map[string]interface{}{}
	var checks []error
	for _, f := range []struct {
		col string
		v   *float64
	}{
		{"free_throw_pct", patch.FreeThrowPct},
		{"three_point_pct", patch.ThreePointPct},
		{"two_point_pct", patch.TwoPointPct},
		{"assists_pct", patch.AssistsPct},
	} {
		if f.v == nil {
			continue
		}
		checks = append(checks, b.CheckPercent(f.col, *f.v))
		updates[f.col] = *f.v
	}
	if err := firstViolation(op, checks...); err != nil {
		return nil, err
	}

	var out *types.TechnicalMeasurement
	err := inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		row, err := s.technical.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "technical measurement not found")
		}
		if len(updates) > 0 {
			if err := s.technical.UpdateFields(dbc, id, updates); err != nil {
				return err
			}
		}
		out, err = s.technical.GetByID(dbc, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *measurementService) DeleteTechnical(ctx context.Context, id uuid.UUID) error {
	const op = "Scouting.TechnicalMeasurement.Delete"
	return inTx(ctx, s.db, op, func(dbc dbctx.Context) error {
		row, err := s.technical.LockByID(dbc, id, repos.LockUpdate)
		if err != nil {
			return err
		}
		if row == nil {
			return domainagg.NotFound(op, "technical measurement not found")
		}
		if err := s.requireUnreferenced(dbc, op, repos.RefTechnicalMeasurement, id); err != nil {
			return err
		}
		_, err = s.technical.Delete(dbc, id)
		return err
	})
}

func (s *measurementService) requireUnreferenced(dbc dbctx.Context, op, column string, id uuid.UUID) error {
	refs, err := s.evaluations.CountReferencing(dbc, column, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domainagg.Conflict(op, fmt.Sprintf("measurement is used by %d evaluation(s)", refs))
	}
	return nil
}
