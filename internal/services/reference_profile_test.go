package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	domainagg "github.com/christianrafael21/hoopscout/internal/domain/aggregates"
	"github.com/christianrafael21/hoopscout/internal/pkg/pointers"
)

func TestReferenceProfileService_CreateAndLookup(t *testing.T) {
	env := newScoutingEnv(t)
	env.mustProfile(t, 18)
	env.mustProfile(t, 15)

	_, err := env.profiles.Create(env.ctx, ReferenceProfileInput{AgeCategory: 15, IdealWeight: 70, IdealHeight: 1.8})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("duplicate category: want conflict got=%v", err)
	}

	got, err := env.profiles.GetByAgeCategory(env.ctx, 15)
	if err != nil {
		t.Fatalf("GetByAgeCategory: %v", err)
	}
	if got.AgeCategory != 15 || got.IdealHeight != 1.90 {
		t.Fatalf("profile: got=%+v", got)
	}

	if _, err := env.profiles.GetByAgeCategory(env.ctx, 12); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing category: want not_found got=%v", err)
	}
	_, err = env.profiles.GetByAgeCategory(env.ctx, 19)
	if !domainagg.IsCode(err, domainagg.CodeValidation) || domainagg.MessageOf(err) != "age category not allowed" {
		t.Fatalf("category above bound: got=%v", err)
	}

	list, err := env.profiles.List(env.ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].AgeCategory != 15 || list[1].AgeCategory != 18 {
		t.Fatalf("list order: got=%d rows", len(list))
	}
}

func TestReferenceProfileService_Validation(t *testing.T) {
	env := newScoutingEnv(t)
	base := ReferenceProfileInput{
		AgeCategory:        18,
		IdealWeight:        80,
		IdealHeight:        1.90,
		IdealFreeThrowPct:  90,
		IdealThreePointPct: 45,
		IdealTwoPointPct:   60,
		IdealAssistPct:     40,
	}
	cases := []struct {
		name   string
		mutate func(in *ReferenceProfileInput)
		msg    string
	}{
		{name: "category", mutate: func(in *ReferenceProfileInput) { in.AgeCategory = 21 }, msg: "age_category must be between 0 and 18 years"},
		{name: "weight", mutate: func(in *ReferenceProfileInput) { in.IdealWeight = 151 }, msg: "ideal_weight must be between 30 and 150kg"},
		{name: "height", mutate: func(in *ReferenceProfileInput) { in.IdealHeight = 0.9 }, msg: "ideal_height must be between 1.0 and 2.5m"},
		{name: "assists", mutate: func(in *ReferenceProfileInput) { in.IdealAssistPct = 101 }, msg: "ideal_assist_pct must be between 0 and 100%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := env.profiles.Create(env.ctx, in)
			if !domainagg.IsCode(err, domainagg.CodeValidation) {
				t.Fatalf("code: want validation got=%v", err)
			}
			if got := domainagg.MessageOf(err); got != tc.msg {
				t.Fatalf("message: want=%q got=%q", tc.msg, got)
			}
		})
	}
}

func TestReferenceProfileService_UpdateAndDelete(t *testing.T) {
	env := newScoutingEnv(t)
	env.mustProfile(t, 15)
	env.mustProfile(t, 18)
	p18, err := env.profiles.GetByAgeCategory(env.ctx, 18)
	if err != nil {
		t.Fatalf("GetByAgeCategory: %v", err)
	}

	updated, err := env.profiles.Update(env.ctx, p18.ID, ReferenceProfilePatch{IdealWeight: pointers.Ptr(88.0)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.IdealWeight != 88 || updated.IdealHeight != 1.90 || updated.AgeCategory != 18 {
		t.Fatalf("partial update: got=%+v", updated)
	}

	if _, err := env.profiles.Update(env.ctx, p18.ID, ReferenceProfilePatch{AgeCategory: pointers.Ptr(15)}); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("move onto taken category: want conflict got=%v", err)
	}
	if _, err := env.profiles.Update(env.ctx, uuid.New(), ReferenceProfilePatch{}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("missing profile: want not_found got=%v", err)
	}

	profileID := p18.ID
	view, err := env.evaluations.Create(env.ctx, domainagg.CreateEvaluationInput{
		PhysicalMeasurementID:  env.mustPhysical(t, 17, 1.88, 80),
		TechnicalMeasurementID: env.mustTechnical(t, 70, 30, 50, 20),
		ReferenceProfileID:     &profileID,
		AthleteID:              uuid.New(),
		CoachID:                uuid.New(),
		EvaluatedAt:            pointers.Ptr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("Create evaluation: %v", err)
	}
	if view.ReferenceProfile == nil || view.ReferenceProfile.ID != profileID {
		t.Fatalf("view must resolve its reference profile")
	}

	if err := env.profiles.Delete(env.ctx, profileID); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("delete referenced profile: want conflict got=%v", err)
	}
	p15, _ := env.profiles.GetByAgeCategory(env.ctx, 15)
	if err := env.profiles.Delete(env.ctx, p15.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := env.profiles.GetByID(env.ctx, p15.ID); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("deleted profile: want not_found got=%v", err)
	}
}

func TestReferenceProfileService_Seed(t *testing.T) {
	env := newScoutingEnv(t)
	env.mustProfile(t, 15)

	n, err := env.profiles.Seed(env.ctx, []ReferenceProfileInput{
		{AgeCategory: 15, IdealWeight: 65, IdealHeight: 1.75, IdealFreeThrowPct: 70, IdealThreePointPct: 30, IdealTwoPointPct: 45, IdealAssistPct: 20},
		{AgeCategory: 18, IdealWeight: 85, IdealHeight: 1.92, IdealFreeThrowPct: 85, IdealThreePointPct: 40, IdealTwoPointPct: 55, IdealAssistPct: 30},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 2 {
		t.Fatalf("seeded: want=2 got=%d", n)
	}
	p15, err := env.profiles.GetByAgeCategory(env.ctx, 15)
	if err != nil {
		t.Fatalf("GetByAgeCategory: %v", err)
	}
	if p15.IdealWeight != 65 || p15.IdealHeight != 1.75 {
		t.Fatalf("seed must overwrite existing targets: got=%+v", p15)
	}

	_, err = env.profiles.Seed(env.ctx, []ReferenceProfileInput{
		{AgeCategory: 18, IdealWeight: 85, IdealHeight: 1.92},
		{AgeCategory: 18, IdealWeight: 86, IdealHeight: 1.93},
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("duplicate seed category: want validation got=%v", err)
	}
}
