package server

type BMIRequest struct {
	Height string   `json:"height" binding:"required"`
	Weight *float64 `json:"weight" binding:"required"`
	Age    *int     `json:"age" binding:"required"`
	Gender string   `json:"gender" binding:"required"`
}

type BMIResponse struct {
	RequestID string  `json:"request_id"`
	HeightCm  float64 `json:"height_cm"`
	BMI       string  `json:"bmi"`
	Category  string  `json:"bmi_category"`
}

type HealthRequest struct {
	HealthyWeight     *bool `json:"healthy_weight" binding:"required"`
	GoodBloodPressure *bool `json:"good_blood_pressure" binding:"required"`
	NormalCholesterol *bool `json:"normal_cholesterol" binding:"required"`
	NoOtherIssues     *bool `json:"no_other_issues" binding:"required"`
}

type HealthResponse struct {
	RequestID  string `json:"request_id"`
	Verdict    string `json:"verdict"`
	Status     string `json:"status"`
	Suggestion string `json:"suggestion,omitempty"`
}

type StatusResponse struct {
	Status            string `json:"status"`
	AvgResponseTimeMs int64  `json:"avg_response_time_ms"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
