package assessment

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/llm"
	"github.com/bitrise-io/ai-health-assessor/metrics"
)

// MockLLM is a deterministic stand-in for the completion service
type MockLLM struct {
	ReturnContent string
	ReturnError   error
	Requests      []llm.Request
}

// Prompt implements the llm.LLM interface
func (m *MockLLM) Prompt(req llm.Request) llm.Response {
	m.Requests = append(m.Requests, req)
	return llm.Response{Content: m.ReturnContent, Error: m.ReturnError}
}

func newTestAssessor(client llm.LLM) *Assessor {
	return NewAssessor(client, client, common.WithDefaultSettings())
}

func defaultBMIInput() BMIInput {
	return BMIInput{Height: `5'10"`, WeightKg: 75, AgeYears: 27, Gender: "Male"}
}

func TestAssessBMI(t *testing.T) {
	mock := &MockLLM{ReturnContent: `{"bmi_category": "Normal weight"}`}
	assessor := newTestAssessor(mock)

	result, err := assessor.AssessBMI("", defaultBMIInput())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Assessment.Category != "Normal weight" {
		t.Errorf("Expected Normal weight, got %s", result.Assessment.Category)
	}
	if result.Metrics.HeightCm != 177.8 {
		t.Errorf("Expected height 177.8, got %v", result.Metrics.HeightCm)
	}
	if math.Abs(result.BMI-23.73) > 0.01 {
		t.Errorf("Expected BMI ~23.73, got %v", result.BMI)
	}
	if result.RequestID == "" {
		t.Error("Expected a request ID")
	}

	if len(mock.Requests) != 1 {
		t.Fatalf("Expected exactly one completion call, got %d", len(mock.Requests))
	}
	if !strings.Contains(mock.Requests[0].UserPrompt, "Height: 177.8 cm") {
		t.Errorf("Expected prompt to carry the height, got:\n%s", mock.Requests[0].UserPrompt)
	}
	if mock.Requests[0].SystemPrompt != "" {
		t.Errorf("Expected no system prompt with default settings, got %q", mock.Requests[0].SystemPrompt)
	}
}

func TestAssessBMI_InvalidHeightShortCircuits(t *testing.T) {
	mock := &MockLLM{ReturnContent: `{"bmi_category": "Normal weight"}`}
	assessor := newTestAssessor(mock)

	in := defaultBMIInput()
	in.Height = "511"

	_, err := assessor.AssessBMI("", in)
	var formatErr *metrics.InputFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Expected InputFormatError, got %v", err)
	}
	if len(mock.Requests) != 0 {
		t.Errorf("Expected no completion call, got %d", len(mock.Requests))
	}
}

func TestAssessBMI_OutOfRange(t *testing.T) {
	mock := &MockLLM{}
	assessor := newTestAssessor(mock)

	in := defaultBMIInput()
	in.WeightKg = 600

	_, err := assessor.AssessBMI("", in)
	var rangeErr *metrics.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("Expected RangeError, got %v", err)
	}
	if len(mock.Requests) != 0 {
		t.Errorf("Expected no completion call, got %d", len(mock.Requests))
	}
}

func TestAssessBMI_InvalidResponse(t *testing.T) {
	mock := &MockLLM{ReturnContent: "Normal weight"}
	assessor := newTestAssessor(mock)

	result, err := assessor.AssessBMI("", defaultBMIInput())
	if result != nil {
		t.Errorf("Expected no result, got %+v", result)
	}
	var invalidErr *InvalidResponseError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Expected InvalidResponseError, got %v", err)
	}
	if len(mock.Requests) != 1 {
		t.Errorf("Expected the request not to be resubmitted, got %d calls", len(mock.Requests))
	}
}

func TestAssessBMI_PropagatesClientErrors(t *testing.T) {
	authErr := &llm.AuthenticationError{Provider: "groq", Err: llm.ErrMissingAPIKey}
	assessor := newTestAssessor(&MockLLM{ReturnError: authErr})

	_, err := assessor.AssessBMI("", defaultBMIInput())
	if !errors.Is(err, authErr) {
		t.Errorf("Expected authentication error to propagate unchanged, got %v", err)
	}

	transportErr := errors.New("connection refused")
	assessor = newTestAssessor(&MockLLM{ReturnError: transportErr})
	_, err = assessor.AssessBMI("", defaultBMIInput())
	if !errors.Is(err, transportErr) {
		t.Errorf("Expected transport error to propagate, got %v", err)
	}
}

func TestAssessBMI_Idempotent(t *testing.T) {
	mock := &MockLLM{ReturnContent: `{"bmi_category": "Normal weight"}`}
	assessor := newTestAssessor(mock)

	first, err := assessor.AssessBMI("", defaultBMIInput())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := assessor.AssessBMI("", defaultBMIInput())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first.RequestID == second.RequestID {
		t.Error("Expected each run to get its own request ID")
	}
	first.RequestID, second.RequestID = "", ""
	if *first != *second {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
	if mock.Requests[0] != mock.Requests[1] {
		t.Error("Expected identical requests for identical input")
	}
}

func TestAssessHealth(t *testing.T) {
	mock := &MockLLM{ReturnContent: "You are not in Good health\nConsider checking your blood pressure regularly."}
	assessor := newTestAssessor(mock)

	factors := metrics.HealthFactors{HealthyWeight: true, GoodBloodPressure: false, NormalCholesterol: true, NoOtherIssues: true}
	result, err := assessor.AssessHealth("", factors)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Verdict.Status != VerdictNotGood {
		t.Errorf("Expected not good verdict, got %s", result.Verdict.Status)
	}
	if result.Factors != factors {
		t.Errorf("Expected factors to be carried into the result")
	}
	if !strings.Contains(mock.Requests[0].UserPrompt, "Good Blood Pressure: False") {
		t.Errorf("Expected prompt to carry the factors, got:\n%s", mock.Requests[0].UserPrompt)
	}
}

func TestAssessHealth_UnrecognizedIsNotAnError(t *testing.T) {
	assessor := newTestAssessor(&MockLLM{ReturnContent: "  Disclaimer: I am not a doctor.  "})

	result, err := assessor.AssessHealth("", metrics.HealthFactors{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Verdict.Text != "Disclaimer: I am not a doctor." {
		t.Errorf("Expected verbatim trimmed text, got %q", result.Verdict.Text)
	}
	if result.Verdict.Recognized() {
		t.Error("Expected the verdict to be flagged as unrecognized")
	}
}

func TestAssessor_AverageResponseTime(t *testing.T) {
	assessor := newTestAssessor(&MockLLM{ReturnContent: "You are in Good health"})
	if assessor.AverageResponseTime() != 0 {
		t.Error("Expected zero average before any call")
	}

	if _, err := assessor.AssessHealth("", metrics.HealthFactors{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if assessor.responseTimes.Len() != 1 {
		t.Errorf("Expected one recorded response time, got %d", assessor.responseTimes.Len())
	}
}

func TestAssessBMI_UsesGivenRequestID(t *testing.T) {
	assessor := newTestAssessor(&MockLLM{ReturnContent: `{"bmi_category": "Normal weight"}`})

	result, err := assessor.AssessBMI("req-123", defaultBMIInput())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.RequestID != "req-123" {
		t.Errorf("Expected request ID req-123, got %s", result.RequestID)
	}

	health, err := assessor.AssessHealth("req-456", metrics.HealthFactors{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if health.RequestID != "req-456" {
		t.Errorf("Expected request ID req-456, got %s", health.RequestID)
	}
}

func TestAssessBMI_EmptyCategoryIsReturned(t *testing.T) {
	assessor := newTestAssessor(&MockLLM{ReturnContent: `{"bmi_category": ""}`})

	result, err := assessor.AssessBMI("", defaultBMIInput())
	if err != nil {
		t.Fatalf("Expected an empty category to be accepted, got %v", err)
	}
	if result.Assessment.Category != "" {
		t.Errorf("Expected empty category, got %q", result.Assessment.Category)
	}
}
