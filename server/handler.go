package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bitrise-io/ai-health-assessor/assessment"
	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/bitrise-io/ai-health-assessor/metrics"
	"github.com/gin-gonic/gin"
)

type Assessor interface {
	AssessBMI(requestID string, in assessment.BMIInput) (*assessment.BMIResult, error)
	AssessHealth(requestID string, factors metrics.HealthFactors) (*assessment.HealthResult, error)
	AverageResponseTime() time.Duration
}

type Handler struct {
	assessor Assessor
}

func NewHandler(assessor Assessor) *Handler {
	return &Handler{assessor: assessor}
}

func (h *Handler) AssessBMI(c *gin.Context) {
	var req BMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "height, weight, age and gender are required"})
		return
	}

	result, err := h.assessor.AssessBMI(c.GetString(requestIDKey), assessment.BMIInput{
		Height:   req.Height,
		WeightKg: *req.Weight,
		AgeYears: *req.Age,
		Gender:   req.Gender,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, BMIResponse{
		RequestID: result.RequestID,
		HeightCm:  result.Metrics.HeightCm,
		BMI:       metrics.FormatBMI(result.BMI),
		Category:  result.Assessment.Category,
	})
}

func (h *Handler) AssessHealth(c *gin.Context) {
	var req HealthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "all four health factors are required"})
		return
	}

	result, err := h.assessor.AssessHealth(c.GetString(requestIDKey), metrics.HealthFactors{
		HealthyWeight:     *req.HealthyWeight,
		GoodBloodPressure: *req.GoodBloodPressure,
		NormalCholesterol: *req.NormalCholesterol,
		NoOtherIssues:     *req.NoOtherIssues,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		RequestID:  result.RequestID,
		Verdict:    result.Verdict.Text,
		Status:     string(result.Verdict.Status),
		Suggestion: result.Verdict.Suggestion,
	})
}

func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:            "ok",
		AvgResponseTimeMs: h.assessor.AverageResponseTime().Milliseconds(),
	})
}

// writeError turns the user-facing error types into a message; everything
// else is an internal failure.
func writeError(c *gin.Context, err error) {
	var formatErr *metrics.InputFormatError
	var rangeErr *metrics.RangeError
	var invalidErr *assessment.InvalidResponseError

	switch {
	case errors.As(err, &formatErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: formatErr.Error()})
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: rangeErr.Error()})
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: invalidErr.Error()})
	default:
		logger.Errorf("assessment failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
