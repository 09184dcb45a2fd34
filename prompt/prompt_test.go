package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/metrics"
)

func testMetrics(t *testing.T) metrics.PersonMetrics {
	t.Helper()
	m, err := metrics.NewPersonMetrics(177.8, 75, 27, metrics.Male)
	if err != nil {
		t.Fatalf("Failed to build metrics: %v", err)
	}
	return m
}

func TestGetBMIPrompt(t *testing.T) {
	got, err := GetBMIPrompt(testMetrics(t), BMIFormatInstructions())
	if err != nil {
		t.Fatalf("Failed to render prompt: %v", err)
	}

	for _, want := range []string{
		"Height: 177.8 cm",
		"Weight: 75 kg",
		"Age: 27 years",
		"Gender: Male",
		"BMI: 23.72",
		`"bmi_category"`,
		"World Health Organization (WHO) BMI categories",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected prompt to contain %q, got:\n%s", want, got)
		}
	}
}

func TestGetBMIPrompt_Deterministic(t *testing.T) {
	m := testMetrics(t)
	first, _ := GetBMIPrompt(m, BMIFormatInstructions())
	second, _ := GetBMIPrompt(m, BMIFormatInstructions())
	if first != second {
		t.Error("Expected identical prompts for identical input")
	}
}

func TestGetBMIPrompt_MissingFormatInstructions(t *testing.T) {
	_, err := GetBMIPrompt(testMetrics(t), "")
	if err == nil {
		t.Fatal("Expected render error when format instructions are missing")
	}
}

func TestRender_MissingPlaceholder(t *testing.T) {
	_, err := Render("test", "Height: {{.height}} Weight: {{.weight}}", map[string]string{"height": "170"})
	if err == nil {
		t.Fatal("Expected error for missing placeholder value")
	}

	got, err := Render("test", "Height: {{.height}}", map[string]string{"height": "170"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "Height: 170" {
		t.Errorf("Expected 'Height: 170', got %q", got)
	}
}

func TestBMISchema_IsValidJSON(t *testing.T) {
	data, err := json.Marshal(BMISchema())
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}

	var schema struct {
		Required   []string                   `json:"required"`
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(data, &schema); err != nil {
		t.Fatalf("Failed to unmarshal schema: %v", err)
	}
	if len(schema.Required) != 1 || schema.Required[0] != BMICategoryKey {
		t.Errorf("Expected only %s to be required, got %v", BMICategoryKey, schema.Required)
	}
	if _, ok := schema.Properties[BMICategoryKey]; !ok {
		t.Errorf("Expected schema to describe %s", BMICategoryKey)
	}
}

func TestGetHealthPrompt(t *testing.T) {
	got, err := GetHealthPrompt(metrics.HealthFactors{
		HealthyWeight:     true,
		GoodBloodPressure: false,
		NormalCholesterol: true,
		NoOtherIssues:     false,
	})
	if err != nil {
		t.Fatalf("Failed to render prompt: %v", err)
	}

	for _, want := range []string{
		"Healthy Weight Range: True",
		"Good Blood Pressure: False",
		"Normal Cholesterol Level: True",
		"No Other Health Issues: False",
		"DO NOT give any disclaimer",
		GoodHealthLead,
		NotGoodHealthLead,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected prompt to contain %q, got:\n%s", want, got)
		}
	}
}

func TestGetSystemPrompt(t *testing.T) {
	settings := common.WithDefaultSettings()
	if got := GetSystemPrompt(settings); got != "" {
		t.Errorf("Expected empty system prompt by default, got %q", got)
	}

	settings.Tone = "You are a friendly health assistant."
	settings.Language = "de-DE"
	got := GetSystemPrompt(settings)
	if !strings.HasPrefix(got, settings.Tone) {
		t.Errorf("Expected system prompt to start with tone, got %q", got)
	}
	if !strings.Contains(got, "Use de-DE language.") {
		t.Errorf("Expected language instruction, got %q", got)
	}
}
