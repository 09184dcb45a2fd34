package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/logger"
)

// AnthropicModel implements the LLM interface using Anthropic's API
type AnthropicModel struct {
	client anthropic.Client
	config
}

// NewAnthropic creates a new Anthropic client
func NewAnthropic(apiKey string, opts ...Option) (*AnthropicModel, error) {
	if apiKey == "" {
		return nil, &AuthenticationError{Provider: common.ProviderAnthropic, Err: ErrMissingAPIKey}
	}

	model := &AnthropicModel{
		config: config{
			provider:    common.ProviderAnthropic,
			modelName:   "claude-3.5-haiku",
			maxTokens:   DefaultMaxTokens,
			apiTimeout:  DefaultAPITimeout,
			temperature: DefaultTemperature,
		},
	}
	applyOptions(&model.config, opts)

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(model.httpClient()),
		// retries are owned by the HTTP client above
		option.WithMaxRetries(0),
	}
	if model.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(model.baseURL))
	}
	model.client = anthropic.NewClient(clientOpts...)

	logger.Debugf("Anthropic client initialized with model: %s, max tokens: %d, timeout: %d seconds",
		model.modelName, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Prompt sends a request to Anthropic and returns the response
func (a *AnthropicModel) Prompt(req Request) Response {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()

	messageParams := anthropic.MessageNewParams{
		Model:       a.model(),
		MaxTokens:   int64(a.maxTokens),
		Temperature: anthropic.Float(float64(a.temperature)),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		messageParams.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	logger.Infof("Sending request to Anthropic with model %s, temperature %.2f", a.modelName, a.temperature)

	message, err := a.client.Messages.New(ctx, messageParams)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && isAuthStatus(apiErr.StatusCode) {
			return Response{Error: &AuthenticationError{Provider: a.provider, Err: err}}
		}
		return Response{Error: fmt.Errorf("failed to create message: %w", err)}
	}

	var content strings.Builder
	for _, block := range message.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			content.WriteString(b.Text)
		}
	}

	return Response{Content: content.String()}
}

// model maps the short names accepted on the command line to API model IDs.
func (a *AnthropicModel) model() anthropic.Model {
	switch a.modelName {
	case "claude-3.7-sonnet":
		return anthropic.ModelClaude3_7SonnetLatest
	case "claude-3.5-sonnet":
		return anthropic.ModelClaude3_5SonnetLatest
	case "claude-3.5-haiku":
		return anthropic.ModelClaude3_5HaikuLatest
	default:
		return anthropic.Model(a.modelName)
	}
}
