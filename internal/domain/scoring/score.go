package scoring

import (
	"errors"
	"math"
)

// TechnicalScores are the four technical percentages of one measurement.
type TechnicalScores struct {
	FreeThrow  float64
	ThreePoint float64
	TwoPoint   float64
	Assists    float64
}

// AverageScore rescales the mean of the four percentages to 0-10.
// A nil measurement scores 0.
func AverageScore(t *TechnicalScores) float64 {
	if t == nil {
		return 0
	}
	mean := (t.FreeThrow + t.ThreePoint + t.TwoPoint + t.Assists) / 4
	return (mean / 100) * 10
}

// EliteProfile is the fixed model athlete used by the suitability score.
// It is unrelated to the per-category ReferenceProfile rows.
type EliteProfile struct {
	Height     float64
	Weight     float64
	Age        float64
	FreeThrow  float64
	TwoPoint   float64
	ThreePoint float64
	Assists    float64
}

func DefaultEliteProfile() EliteProfile {
	return EliteProfile{
		Height:     1.90,
		Weight:     85,
		Age:        18,
		FreeThrow:  95,
		TwoPoint:   90,
		ThreePoint: 85,
		Assists:    15,
	}
}

const (
	weightHeight     = 0.10
	weightWeight     = 0.10
	weightAge        = 0.10
	weightFreeThrow  = 0.20
	weightTwoPoint   = 0.20
	weightThreePoint = 0.20
	weightAssists    = 0.10

	// SuitabilityCeiling caps the suitability score; ratios above the elite profile are not rewarded further.
	SuitabilityCeiling = 90.0
)

var (
	ErrNotEvaluated        = errors.New("athlete not yet evaluated")
	ErrInvalidEliteProfile = errors.New("elite profile values must be positive")
	ErrAgeNotPermitted     = errors.New("age not permitted")
)

// SuitabilityInput carries the athlete values; any nil field means the athlete was not evaluated.
type SuitabilityInput struct {
	Height     *float64
	Weight     *float64
	Age        *int
	FreeThrow  *float64
	TwoPoint   *float64
	ThreePoint *float64
	Assists    *float64
}

func (in SuitabilityInput) complete() bool {
	return in.Height != nil && in.Weight != nil && in.Age != nil &&
		in.FreeThrow != nil && in.TwoPoint != nil && in.ThreePoint != nil && in.Assists != nil
}

func (p EliteProfile) valid() bool {
	return p.Height > 0 && p.Weight > 0 && p.Age > 0 &&
		p.FreeThrow > 0 && p.TwoPoint > 0 && p.ThreePoint > 0 && p.Assists > 0
}

// Suitability is the weighted percentage-of-elite score, rounded to 2 decimals and capped at 90.
func Suitability(in SuitabilityInput, ref EliteProfile) (float64, error) {
	if !in.complete() {
		return 0, ErrNotEvaluated
	}
	if !ref.valid() {
		return 0, ErrInvalidEliteProfile
	}
	score := weightHeight*PercentOfTarget(*in.Height, ref.Height) +
		weightWeight*PercentOfTarget(*in.Weight, ref.Weight) +
		weightAge*PercentOfTarget(float64(*in.Age), ref.Age) +
		weightFreeThrow*PercentOfTarget(*in.FreeThrow, ref.FreeThrow) +
		weightTwoPoint*PercentOfTarget(*in.TwoPoint, ref.TwoPoint) +
		weightThreePoint*PercentOfTarget(*in.ThreePoint, ref.ThreePoint) +
		weightAssists*PercentOfTarget(*in.Assists, ref.Assists)

	score = Round2(score)
	if score > SuitabilityCeiling {
		score = SuitabilityCeiling
	}
	return score, nil
}

// PercentOfTarget is value/target*100, or 0 for a non-positive target.
func PercentOfTarget(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return (value / target) * 100
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Category buckets used for reference-profile lookup.
const (
	CategoryYouth  = 15
	CategoryJunior = 18
)

// CategoryForAge maps an athlete age to the reference-profile category to look up.
func CategoryForAge(age int) (int, error) {
	switch {
	case age < 0 || age > CategoryJunior:
		return 0, ErrAgeNotPermitted
	case age <= 14:
		return CategoryYouth, nil
	default:
		return CategoryJunior, nil
	}
}
