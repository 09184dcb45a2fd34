package llm

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/logger"
)

const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 1024
	DefaultAPITimeout  = 60
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption   OptionType = "model"
	MaxTokensOption   OptionType = "max_tokens"
	APITimeoutOption  OptionType = "api_timeout"
	TemperatureOption OptionType = "temperature"
	BaseURLOption     OptionType = "base_url"
	RetryMaxOption    OptionType = "retry_max"
	ProviderOption    OptionType = "provider"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{Type: ModelNameOption, Value: model}
}

// WithMaxTokens creates an option to set the max tokens
func WithMaxTokens(maxTokens int) Option {
	return Option{Type: MaxTokensOption, Value: maxTokens}
}

// WithAPITimeout creates an option to set the API timeout in seconds
func WithAPITimeout(timeout int) Option {
	return Option{Type: APITimeoutOption, Value: timeout}
}

// WithTemperature creates an option to set the sampling temperature
func WithTemperature(temperature float32) Option {
	return Option{Type: TemperatureOption, Value: temperature}
}

// WithBaseURL points an OpenAI-compatible provider at a different endpoint
func WithBaseURL(baseURL string) Option {
	return Option{Type: BaseURLOption, Value: baseURL}
}

// WithRetryMax sets how many times a failed HTTP request is retried
func WithRetryMax(retryMax int) Option {
	return Option{Type: RetryMaxOption, Value: retryMax}
}

// WithProvider names the provider reported in errors, for clients that serve
// more than one provider
func WithProvider(providerName string) Option {
	return Option{Type: ProviderOption, Value: providerName}
}

// OptionsFromSettings turns the llm section of the settings into options.
func OptionsFromSettings(settings common.LLM) []Option {
	opts := []Option{
		WithTemperature(settings.Temperature),
		WithMaxTokens(settings.MaxTokens),
		WithAPITimeout(settings.APITimeout),
		WithRetryMax(settings.RetryMax),
	}
	if settings.BaseURL != "" {
		opts = append(opts, WithBaseURL(settings.BaseURL))
	}
	return opts
}

// config is the resolved set of options shared by the providers.
type config struct {
	provider    string
	modelName   string
	maxTokens   int
	apiTimeout  int // in seconds
	temperature float32
	baseURL     string
	retryMax    int
}

func applyOptions(c *config, opts []Option) {
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				c.modelName = modelName
			}
		case MaxTokensOption:
			if maxTokens, ok := opt.Value.(int); ok && maxTokens > 0 {
				c.maxTokens = maxTokens
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok && timeout > 0 {
				c.apiTimeout = timeout
			}
		case TemperatureOption:
			if temperature, ok := opt.Value.(float32); ok && temperature >= 0 {
				c.temperature = temperature
			}
		case BaseURLOption:
			if baseURL, ok := opt.Value.(string); ok {
				c.baseURL = baseURL
			}
		case RetryMaxOption:
			if retryMax, ok := opt.Value.(int); ok && retryMax >= 0 {
				c.retryMax = retryMax
			}
		case ProviderOption:
			if provider, ok := opt.Value.(string); ok && provider != "" {
				c.provider = provider
			}
		}
	}
}

func (c config) timeout() time.Duration {
	return time.Duration(c.apiTimeout) * time.Second
}

// httpClient is shared by the providers so retries follow the retry_max setting.
func (c config) httpClient() *http.Client {
	retryConfig := common.DefaultRetryConfig()
	retryConfig.RetryMax = c.retryMax
	return common.NewRetryableClient(retryConfig).StandardClient()
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	SystemPrompt string
	UserPrompt   string
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and blocks until it answers
	Prompt(req Request) Response
}

// AuthenticationError reports a missing or rejected API key. It is never
// retried or converted into a user-facing message.
type AuthenticationError struct {
	Provider string
	Err      error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s authentication failed: %v", e.Provider, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

var ErrMissingAPIKey = errors.New("API key is not set")

// apiKeyEnv lists the environment variables checked per provider, in order.
var apiKeyEnv = map[string][]string{
	common.ProviderGroq:      {"LLM_API_KEY", "GROQ_API_KEY"},
	common.ProviderOpenAI:    {"LLM_API_KEY", "OPENAI_API_KEY"},
	common.ProviderAnthropic: {"LLM_API_KEY", "ANTHROPIC_API_KEY"},
	common.ProviderOllama:    {"LLM_API_KEY", "OLLAMA_API_KEY"},
}

// RequiresAPIKey reports whether the provider refuses unauthenticated calls.
func RequiresAPIKey(providerName string) bool {
	return providerName != common.ProviderOllama
}

// APIKeyFromEnv resolves the credential for the provider once, at startup.
func APIKeyFromEnv(providerName string) (string, error) {
	names, ok := apiKeyEnv[providerName]
	if !ok {
		return "", fmt.Errorf("unsupported provider: %s", providerName)
	}

	for _, name := range names {
		if apiKey := os.Getenv(name); apiKey != "" {
			return apiKey, nil
		}
	}

	if !RequiresAPIKey(providerName) {
		return "", nil
	}
	return "", &AuthenticationError{
		Provider: providerName,
		Err:      fmt.Errorf("%w: set %s", ErrMissingAPIKey, names[len(names)-1]),
	}
}

// NewLLM creates the client for providerName with an already resolved API key.
func NewLLM(providerName, apiKey string, opts ...Option) (LLM, error) {
	var llmClient LLM
	var err error

	if apiKey == "" && RequiresAPIKey(providerName) {
		return nil, &AuthenticationError{Provider: providerName, Err: ErrMissingAPIKey}
	}

	opts = append([]Option{WithProvider(providerName)}, opts...)

	switch providerName {
	case common.ProviderGroq:
		llmClient, err = NewOpenAI(apiKey, append([]Option{WithBaseURL(GroqBaseURL)}, opts...)...)
	case common.ProviderOpenAI:
		llmClient, err = NewOpenAI(apiKey, opts...)
	case common.ProviderOllama:
		if apiKey == "" {
			apiKey = "ollama"
		}
		llmClient, err = NewOpenAI(apiKey, append([]Option{WithBaseURL(OllamaBaseURL)}, opts...)...)
	case common.ProviderAnthropic:
		llmClient, err = NewAnthropic(apiKey, opts...)
	default:
		err = fmt.Errorf("unsupported provider: %s", providerName)
	}

	if err == nil {
		logger.Infow("LLM client ready", "provider", providerName)
	}

	return llmClient, err
}
