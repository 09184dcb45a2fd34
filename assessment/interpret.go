package assessment

import (
	"regexp"
	"strings"

	"github.com/bitrise-io/ai-health-assessor/prompt"
	"github.com/tidwall/gjson"
)

// RetryMessage is the only thing the user sees when the model answer is unusable.
const RetryMessage = "Please try again"

// ResponseState tracks a structured response through interpretation.
type ResponseState string

const (
	StatePending ResponseState = "pending"
	StateParsed  ResponseState = "parsed"
	StateInvalid ResponseState = "invalid"
)

// InvalidResponseError reports a completion that does not match the requested
// schema. It is terminal: the request is not resubmitted.
type InvalidResponseError struct {
	Raw    string
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return RetryMessage
}

// BmiAssessment is the typed result of the structured pipeline. The category
// is whatever label the model chose; it is not checked against a closed set.
type BmiAssessment struct {
	Category string `json:"bmi_category"`
}

// BMIInterpretation is the outcome of InterpretBMI: either Parsed with an
// Assessment or Invalid with Err.
type BMIInterpretation struct {
	State      ResponseState
	Assessment BmiAssessment
	Err        *InvalidResponseError
}

// InterpretBMI validates raw as {"bmi_category": "<string>"}.
func InterpretBMI(raw string) (BmiAssessment, error) {
	result := interpretBMI(raw)
	if result.State != StateParsed {
		return BmiAssessment{}, result.Err
	}
	return result.Assessment, nil
}

func interpretBMI(raw string) BMIInterpretation {
	invalid := func(reason string) BMIInterpretation {
		return BMIInterpretation{
			State: StateInvalid,
			Err:   &InvalidResponseError{Raw: raw, Reason: reason},
		}
	}

	content := cleanJSONResponse(raw)
	if !gjson.Valid(content) {
		return invalid("response is not valid JSON")
	}

	parsed := gjson.Parse(content)
	if !parsed.IsObject() {
		return invalid("response is not a JSON object")
	}

	category := parsed.Get(gjsonKey(prompt.BMICategoryKey))
	if !category.Exists() {
		return invalid("response has no " + prompt.BMICategoryKey + " key")
	}
	if category.Type != gjson.String {
		return invalid(prompt.BMICategoryKey + " is not a string")
	}

	return BMIInterpretation{
		State:      StateParsed,
		Assessment: BmiAssessment{Category: category.String()},
	}
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json)?(.*)```")

// cleanJSONResponse extracts the markdown code fence models like to wrap JSON
// in. Text outside the fence is dropped; unfenced content is used whole.
func cleanJSONResponse(content string) string {
	if match := fencedBlock.FindStringSubmatch(content); match != nil {
		content = match[1]
	}
	return strings.TrimSpace(content)
}

// gjsonKey escapes the characters gjson treats as path syntax.
func gjsonKey(key string) string {
	return strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`).Replace(key)
}
