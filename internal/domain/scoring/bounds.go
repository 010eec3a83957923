package scoring

import (
	"errors"
	"fmt"
	"strconv"
)

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `koanf:"min"`
	Max float64 `koanf:"max"`
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Bounds is the single source of truth for measurement and profile limits.
type Bounds struct {
	Age         Range `koanf:"age"`
	Height      Range `koanf:"height"`
	Weight      Range `koanf:"weight"`
	Percent     Range `koanf:"percent"`
	AgeCategory Range `koanf:"age_category"`
}

func DefaultBounds() Bounds {
	return Bounds{
		Age:         Range{Min: 0, Max: 18},
		Height:      Range{Min: 1.0, Max: 2.5},
		Weight:      Range{Min: 30, Max: 150},
		Percent:     Range{Min: 0, Max: 100},
		AgeCategory: Range{Min: 0, Max: 18},
	}
}

// Validate reports inverted ranges and age limits beyond the oldest comparison
// category. CategoryForAge has no bucket above CategoryJunior.
func (b Bounds) Validate() error {
	for name, r := range map[string]Range{
		"age":          b.Age,
		"height":       b.Height,
		"weight":       b.Weight,
		"percent":      b.Percent,
		"age_category": b.AgeCategory,
	} {
		if r.Min > r.Max {
			return fmt.Errorf("bounds.%s: min %v greater than max %v", name, r.Min, r.Max)
		}
	}
	if b.Age.Max > CategoryJunior {
		return fmt.Errorf("bounds.age: max %v above the oldest category %d", b.Age.Max, CategoryJunior)
	}
	if b.AgeCategory.Max > CategoryJunior {
		return fmt.Errorf("bounds.age_category: max %v above the oldest category %d", b.AgeCategory.Max, CategoryJunior)
	}
	return nil
}

// FieldError is a range violation on a single named field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// AsFieldError extracts a FieldError from err.
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func (b Bounds) CheckAge(field string, v int) error {
	return check(field, float64(v), b.Age, " years", 0)
}

func (b Bounds) CheckAgeCategory(field string, v int) error {
	return check(field, float64(v), b.AgeCategory, " years", 0)
}

func (b Bounds) CheckHeight(field string, v float64) error {
	return check(field, v, b.Height, "m", 1)
}

func (b Bounds) CheckWeight(field string, v float64) error {
	return check(field, v, b.Weight, "kg", 0)
}

func (b Bounds) CheckPercent(field string, v float64) error {
	return check(field, v, b.Percent, "%", 0)
}

func check(field string, v float64, r Range, unit string, prec int) error {
	if r.Contains(v) {
		return nil
	}
	return &FieldError{
		Field:   field,
		Message: fmt.Sprintf("%s must be between %s and %s%s", field, formatBound(r.Min, prec), formatBound(r.Max, prec), unit),
	}
}

func formatBound(v float64, prec int) string {
	if prec == 0 && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	if prec == 0 {
		prec = -1
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
