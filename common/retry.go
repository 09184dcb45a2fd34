package common

import (
	"time"

	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// RetryConfig holds the configuration for the completion service HTTP client
type RetryConfig struct {
	// Maximum number of retries; zero means a single attempt
	RetryMax int
	// Minimum time to wait between retries
	RetryWaitMin time.Duration
	// Maximum time to wait between retries
	RetryWaitMax time.Duration
	// Function to determine if a request should be retried
	CheckRetry retryablehttp.CheckRetry
}

// DefaultRetryConfig issues exactly one request per completion call.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		RetryMax:     0,
		RetryWaitMin: 1 * time.Second,
		RetryWaitMax: 5 * time.Second,
		CheckRetry:   retryablehttp.DefaultRetryPolicy,
	}
}

// NewRetryableClient creates a new HTTP client for the completion service
func NewRetryableClient(config RetryConfig) *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()

	retryClient.RetryMax = config.RetryMax
	retryClient.RetryWaitMin = config.RetryWaitMin
	retryClient.RetryWaitMax = config.RetryWaitMax

	logger.Debugf("Created HTTP client with max retries: %d, min wait: %s, max wait: %s",
		config.RetryMax, config.RetryWaitMin, config.RetryWaitMax)

	if config.CheckRetry != nil {
		retryClient.CheckRetry = config.CheckRetry
	}

	// retryablehttp swallows the final response on exhausted retries; keep it
	// so the provider SDK can decode the API error body (e.g. a 401).
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	retryClient.Logger = &zapRetryLogger{}

	return retryClient
}

// zapRetryLogger adapts our zap logger to retryablehttp.LeveledLogger
type zapRetryLogger struct{}

func (z *zapRetryLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Errorw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Debugw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Debugw(msg, keysAndValues...)
}

func (z *zapRetryLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Sugar().Warnw(msg, keysAndValues...)
}
