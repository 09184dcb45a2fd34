package prompt

import "github.com/bitrise-io/ai-health-assessor/metrics"

const (
	GoodHealthLead    = "You are in Good health"
	NotGoodHealthLead = "You are not in Good health"
)

const healthTemplate = `
Given the following health information:
Healthy Weight Range: {{.healthy_weight}}
Good Blood Pressure: {{.good_blood_pressure}}
Normal Cholesterol Level: {{.normal_cholesterol}}
No Other Health Issues: {{.no_other_issues}}

Please provide a "GOOD" or "NOT GOOD" response based on these factors.
DO NOT give any disclaimer or additional information.
Just the response "GOOD" or "NOT GOOD" in one line.
Provide a brief suggestion for improvement if needed.

Response format should be like:

{{.good_lead}}
or
{{.not_good_lead}}
`

func GetHealthPrompt(f metrics.HealthFactors) (string, error) {
	return Render("health", healthTemplate, map[string]string{
		"healthy_weight":      metrics.FormatBool(f.HealthyWeight),
		"good_blood_pressure": metrics.FormatBool(f.GoodBloodPressure),
		"normal_cholesterol":  metrics.FormatBool(f.NormalCholesterol),
		"no_other_issues":     metrics.FormatBool(f.NoOtherIssues),
		"good_lead":           GoodHealthLead,
		"not_good_lead":       NotGoodHealthLead,
	})
}
