package metrics

import (
	"strconv"
	"strings"
)

// HealthFactors are the four self-declared inputs of the health verdict.
// The flags are independent of each other.
type HealthFactors struct {
	HealthyWeight     bool
	GoodBloodPressure bool
	NormalCholesterol bool
	NoOtherIssues     bool
}

// FormatBool renders a flag the way the form shows it: "True" or "False".
func FormatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// ParseBool accepts "True"/"False" in any case plus the forms strconv.ParseBool knows.
func ParseBool(field, raw string) (bool, error) {
	v, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return false, &InputFormatError{
			Field: field,
			Input: raw,
			Hint:  "Please answer " + field + " with True or False",
		}
	}
	return v, nil
}
