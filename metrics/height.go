package metrics

import (
	"math"
	"regexp"
	"strconv"
)

const (
	cmPerFoot = 30.48
	cmPerInch = 2.54
)

// HeightFormatHint is shown to the user when a height cannot be parsed.
const HeightFormatHint = `Please enter height in the format: ft'in" (e.g., 5'11")`

// Straight and typographic quotes are accepted since mobile keyboards
// substitute the latter.
var heightPattern = regexp.MustCompile(`^\s*(\d+)\s*['’′]\s*(\d+)\s*["”″]?\s*$`)

// InputFormatError reports a user-supplied value that does not match its
// expected pattern.
type InputFormatError struct {
	Field string
	Input string
	Hint  string
}

func (e *InputFormatError) Error() string {
	return e.Hint
}

// ParseHeight converts a ft'in" string into centimetres rounded to two
// decimals.
func ParseHeight(raw string) (float64, error) {
	matches := heightPattern.FindStringSubmatch(raw)
	if matches == nil {
		return 0, newHeightError(raw)
	}

	feet, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, newHeightError(raw)
	}
	inches, err := strconv.Atoi(matches[2])
	if err != nil {
		return 0, newHeightError(raw)
	}

	heightCm := round2(float64(feet)*cmPerFoot + float64(inches)*cmPerInch)
	if heightCm <= 0 {
		return 0, newHeightError(raw)
	}

	return heightCm, nil
}

func newHeightError(raw string) *InputFormatError {
	return &InputFormatError{
		Field: "height",
		Input: raw,
		Hint:  HeightFormatHint,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
