package prompt

import (
	"encoding/json"
	"strconv"

	"github.com/bitrise-io/ai-health-assessor/metrics"
)

// BMICategoryKey is the only key the BMI assessment response must carry.
const BMICategoryKey = "bmi_category"

const bmiTemplate = `
Answer the user query.
{{.format_instructions}}

Given the following information about a person:
Height: {{.height}} cm
Weight: {{.weight}} kg
Age: {{.age}} years
Gender: {{.gender}}
BMI: {{.bmi}}

According to the World Health Organization (WHO) BMI categories, provide BMI category.
`

// BMISchema describes the response object the model has to produce.
func BMISchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			BMICategoryKey: map[string]interface{}{
				"type":        "string",
				"title":       "BMI Category",
				"description": "BMI category of the person",
			},
		},
		"required":             []string{BMICategoryKey},
		"additionalProperties": false,
	}
}

// BMIFormatInstructions tells the model to answer with a single JSON object
// matching BMISchema.
func BMIFormatInstructions() string {
	schema, _ := json.Marshal(BMISchema())

	return `The output should be formatted as a single JSON object that conforms to the JSON schema below.
Output the JSON object only, on one line, without code fences or any other text.

As an example, for the schema {"properties": {"foo": {"type": "array", "items": {"type": "string"}}}, "required": ["foo"]}
the object {"foo": ["bar", "baz"]} is a well-formatted instance of the schema. The object {"properties": {"foo": ["bar", "baz"]}} is not well-formatted.

Here is the output schema:
` + string(schema) + `

Example response: {"` + BMICategoryKey + `": "Normal weight"}`
}

// GetBMIPrompt renders the BMI assessment prompt. Callers must not invoke it
// without a parsed height; PersonMetrics guarantees that by construction.
func GetBMIPrompt(m metrics.PersonMetrics, formatInstructions string) (string, error) {
	values := map[string]string{
		"height": formatFloat(m.HeightCm),
		"weight": formatFloat(m.WeightKg),
		"age":    strconv.Itoa(m.AgeYears),
		"gender": string(m.Gender),
		"bmi":    metrics.FormatBMI(m.BMI()),
	}
	if formatInstructions != "" {
		values["format_instructions"] = formatInstructions
	}

	return Render("bmi", bmiTemplate, values)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
