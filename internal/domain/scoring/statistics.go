package scoring

import (
	"sort"
	"time"
)

// PhysicalSample is the physical part of one evaluation.
type PhysicalSample struct {
	Age    int
	Height float64
	Weight float64
}

// Sample is one evaluation as seen by the statistics aggregator.
type Sample struct {
	EvaluatedAt time.Time
	Score       *float64
	Physical    *PhysicalSample
	Technical   *TechnicalScores
}

type PhysicalMeans struct {
	Age    float64 `json:"age"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

type TechnicalMeans struct {
	FreeThrow  float64 `json:"free_throw_pct"`
	ThreePoint float64 `json:"three_point_pct"`
	TwoPoint   float64 `json:"two_point_pct"`
	Assists    float64 `json:"assists_pct"`
}

type Evolution struct {
	FirstEvaluatedAt time.Time `json:"first_evaluated_at"`
	LastEvaluatedAt  time.Time `json:"last_evaluated_at"`
	FirstScore       float64   `json:"first_score"`
	LastScore        float64   `json:"last_score"`
	Delta            float64   `json:"delta"`
	PercentDelta     float64   `json:"percent_delta"`
}

type Statistics struct {
	TotalEvaluations int            `json:"total_evaluations"`
	MeanScore        float64        `json:"mean_score"`
	MeanPhysical     PhysicalMeans  `json:"mean_physical"`
	MeanTechnical    TechnicalMeans `json:"mean_technical"`
	Evolution        Evolution      `json:"evolution"`
}

// Aggregate reduces an athlete's evaluations.
//
// A missing score counts as 0 in MeanScore. Field means only cover samples that carry the
// measurement. Evolution compares the chronologically first and last scored samples, while
// the first/last dates span every sample.
func Aggregate(samples []Sample) Statistics {
	var out Statistics
	if len(samples) == 0 {
		return out
	}
	ordered := make([]Sample, len(samples))
	copy(ordered, samples)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EvaluatedAt.Before(ordered[j].EvaluatedAt)
	})

	out.TotalEvaluations = len(ordered)
	out.Evolution.FirstEvaluatedAt = ordered[0].EvaluatedAt
	out.Evolution.LastEvaluatedAt = ordered[len(ordered)-1].EvaluatedAt

	var (
		scoreSum     float64
		physN, techN int
		first, last  *float64
		physSum      PhysicalMeans
		techSum      TechnicalMeans
	)
	for i := range ordered {
		s := ordered[i]
		if s.Score != nil {
			scoreSum += *s.Score
			if first == nil {
				first = s.Score
			}
			last = s.Score
		}
		if s.Physical != nil {
			physN++
			physSum.Age += float64(s.Physical.Age)
			physSum.Height += s.Physical.Height
			physSum.Weight += s.Physical.Weight
		}
		if s.Technical != nil {
			techN++
			techSum.FreeThrow += s.Technical.FreeThrow
			techSum.ThreePoint += s.Technical.ThreePoint
			techSum.TwoPoint += s.Technical.TwoPoint
			techSum.Assists += s.Technical.Assists
		}
	}

	out.MeanScore = scoreSum / float64(out.TotalEvaluations)
	if physN > 0 {
		n := float64(physN)
		out.MeanPhysical = PhysicalMeans{Age: physSum.Age / n, Height: physSum.Height / n, Weight: physSum.Weight / n}
	}
	if techN > 0 {
		n := float64(techN)
		out.MeanTechnical = TechnicalMeans{
			FreeThrow:  techSum.FreeThrow / n,
			ThreePoint: techSum.ThreePoint / n,
			TwoPoint:   techSum.TwoPoint / n,
			Assists:    techSum.Assists / n,
		}
	}
	if first != nil && last != nil {
		out.Evolution.FirstScore = *first
		out.Evolution.LastScore = *last
		out.Evolution.Delta = *last - *first
		if *first > 0 {
			out.Evolution.PercentDelta = (out.Evolution.Delta / *first) * 100
		}
	}
	return out
}
