package metrics

import (
	"fmt"
	"math"
	"strings"
)

const (
	MinWeightKg = 0.0
	MaxWeightKg = 500.0
	MinAgeYears = 0
	MaxAgeYears = 150
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// ParseGender accepts Male or Female in any letter case.
func ParseGender(raw string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return "", &InputFormatError{
		Field: "gender",
		Input: raw,
		Hint:  "Please select a gender: Male or Female",
	}
}

// RangeError reports a numeric input outside the bounds the form allows.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g, got %g", e.Field, e.Min, e.Max, e.Value)
}

// PersonMetrics is the normalized input of the BMI assessment.
type PersonMetrics struct {
	HeightCm float64
	WeightKg float64
	AgeYears int
	Gender   Gender
}

// NewPersonMetrics validates the boundary ranges. heightCm must come from
// ParseHeight or be otherwise strictly positive.
func NewPersonMetrics(heightCm, weightKg float64, ageYears int, gender Gender) (PersonMetrics, error) {
	if heightCm <= 0 || math.IsNaN(heightCm) || math.IsInf(heightCm, 0) {
		return PersonMetrics{}, &RangeError{Field: "height", Value: heightCm, Min: 0, Max: math.Inf(1)}
	}
	if weightKg < MinWeightKg || weightKg > MaxWeightKg || math.IsNaN(weightKg) {
		return PersonMetrics{}, &RangeError{Field: "weight", Value: weightKg, Min: MinWeightKg, Max: MaxWeightKg}
	}
	if ageYears < MinAgeYears || ageYears > MaxAgeYears {
		return PersonMetrics{}, &RangeError{Field: "age", Value: float64(ageYears), Min: MinAgeYears, Max: MaxAgeYears}
	}
	if gender != Male && gender != Female {
		return PersonMetrics{}, &InputFormatError{Field: "gender", Input: string(gender), Hint: "Please select a gender: Male or Female"}
	}

	return PersonMetrics{
		HeightCm: heightCm,
		WeightKg: weightKg,
		AgeYears: ageYears,
		Gender:   gender,
	}, nil
}

// BMI is weight in kilograms divided by height in metres squared.
func (p PersonMetrics) BMI() float64 {
	heightM := p.HeightCm / 100
	return p.WeightKg / (heightM * heightM)
}

// FormatBMI renders a BMI with two decimals, as displayed to the user.
func FormatBMI(bmi float64) string {
	return fmt.Sprintf("%.2f", bmi)
}
