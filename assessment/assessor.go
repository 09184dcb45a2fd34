package assessment

import (
	"fmt"
	"time"

	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/llm"
	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/bitrise-io/ai-health-assessor/metrics"
	"github.com/bitrise-io/ai-health-assessor/prompt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BMIInput is the raw BMI form. Height is still the ft'in" string; weight
// and age come from bounded pickers.
type BMIInput struct {
	Height   string
	WeightKg float64
	AgeYears int
	Gender   string
}

type BMIResult struct {
	RequestID  string
	Metrics    metrics.PersonMetrics
	BMI        float64
	Assessment BmiAssessment
}

type HealthResult struct {
	RequestID string
	Factors   metrics.HealthFactors
	Verdict   HealthVerdict
}

// Assessor runs the two pipelines. Apart from the response time window it
// holds no per-request state and is safe for concurrent use.
type Assessor struct {
	bmiLLM        llm.LLM
	healthLLM     llm.LLM
	systemPrompt  string
	responseTimes *common.ResponseTimes
}

// NewAssessor wires the completion clients of both pipelines. The clients may
// be the same value.
func NewAssessor(bmiLLM, healthLLM llm.LLM, settings common.Settings) *Assessor {
	return &Assessor{
		bmiLLM:        bmiLLM,
		healthLLM:     healthLLM,
		systemPrompt:  prompt.GetSystemPrompt(settings),
		responseTimes: common.NewResponseTimes(common.DefaultResponseWindow),
	}
}

// AverageResponseTime is the mean duration of the recent completion calls.
func (a *Assessor) AverageResponseTime() time.Duration {
	return a.responseTimes.Average()
}

// NormalizeBMIInput parses and range checks the form. Height is parsed first
// so a malformed height is reported before anything else.
func NormalizeBMIInput(in BMIInput) (metrics.PersonMetrics, error) {
	heightCm, err := metrics.ParseHeight(in.Height)
	if err != nil {
		return metrics.PersonMetrics{}, err
	}

	gender, err := metrics.ParseGender(in.Gender)
	if err != nil {
		return metrics.PersonMetrics{}, err
	}

	return metrics.NewPersonMetrics(heightCm, in.WeightKg, in.AgeYears, gender)
}

// AssessBMI normalizes the form, computes the BMI and asks the model for the
// WHO category. A height that does not parse stops the pipeline before any
// computation or network call. An empty requestID gets a fresh one.
func (a *Assessor) AssessBMI(requestID string, in BMIInput) (*BMIResult, error) {
	requestID = ensureRequestID(requestID)
	log := logger.With("request_id", requestID, "pipeline", "bmi")

	m, err := NormalizeBMIInput(in)
	if err != nil {
		log.Infow("Rejected form input", "error", err)
		return nil, err
	}
	bmi := m.BMI()
	log.Debugw("Normalized input", "height_cm", m.HeightCm, "weight_kg", m.WeightKg, "age", m.AgeYears, "bmi", bmi)

	userPrompt, err := prompt.GetBMIPrompt(m, prompt.BMIFormatInstructions())
	if err != nil {
		return nil, err
	}

	log.Debugw("Interpreting response", "state", StatePending)
	content, err := a.complete(log, a.bmiLLM, userPrompt)
	if err != nil {
		return nil, err
	}

	interpretation := interpretBMI(content)
	if interpretation.State != StateParsed {
		log.Warnw("Model response failed validation",
			"state", interpretation.State, "reason", interpretation.Err.Reason, "response", content)
		return nil, interpretation.Err
	}
	if interpretation.Assessment.Category == "" {
		log.Warnw("Model returned an empty category", "response", content)
	}
	log.Infow("BMI assessed", "state", interpretation.State, "bmi", metrics.FormatBMI(bmi),
		"category", interpretation.Assessment.Category)

	return &BMIResult{
		RequestID:  requestID,
		Metrics:    m,
		BMI:        bmi,
		Assessment: interpretation.Assessment,
	}, nil
}

// AssessHealth asks the model for a Good / not Good verdict on the four factors.
func (a *Assessor) AssessHealth(requestID string, factors metrics.HealthFactors) (*HealthResult, error) {
	requestID = ensureRequestID(requestID)
	log := logger.With("request_id", requestID, "pipeline", "health")

	userPrompt, err := prompt.GetHealthPrompt(factors)
	if err != nil {
		return nil, err
	}

	content, err := a.complete(log, a.healthLLM, userPrompt)
	if err != nil {
		return nil, err
	}

	verdict := InterpretVerdict(content)
	if !verdict.Recognized() {
		log.Warnw("Verdict does not start with an expected lead sentence", "response", verdict.Text)
	} else {
		log.Infow("Health assessed", "status", verdict.Status)
	}

	return &HealthResult{
		RequestID: requestID,
		Factors:   factors,
		Verdict:   verdict,
	}, nil
}

func ensureRequestID(requestID string) string {
	if requestID == "" {
		return uuid.NewString()
	}
	return requestID
}

func (a *Assessor) complete(log *zap.SugaredLogger, client llm.LLM, userPrompt string) (string, error) {
	if client == nil {
		return "", fmt.Errorf("no completion client configured")
	}

	start := time.Now()
	resp := client.Prompt(llm.Request{
		SystemPrompt: a.systemPrompt,
		UserPrompt:   userPrompt,
	})
	if resp.Error != nil {
		return "", resp.Error
	}

	elapsed := time.Since(start)
	a.responseTimes.Add(elapsed)
	log.Debugw("Completion received", "duration", elapsed, "avg_response_time", a.responseTimes.Average())
	log.Debug(resp.Content)

	return resp.Content, nil
}
