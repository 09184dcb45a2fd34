package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bitrise-io/ai-health-assessor/common"
	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OllamaBaseURL = "http://localhost:11434/v1"
)

// OpenAIModel implements the LLM interface for any OpenAI-compatible chat
// completions endpoint (OpenAI, Groq, Ollama).
type OpenAIModel struct {
	client *openai.Client
	config
}

// NewOpenAI creates a new OpenAI-compatible client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		errMsg := "OpenAI API key cannot be empty"
		logger.Error(errMsg)
		return nil, &AuthenticationError{Provider: common.ProviderOpenAI, Err: errors.New(errMsg)}
	}

	model := &OpenAIModel{
		config: config{
			provider:    common.ProviderOpenAI,
			modelName:   openai.GPT4oMini,
			maxTokens:   DefaultMaxTokens,
			apiTimeout:  DefaultAPITimeout,
			temperature: DefaultTemperature,
		},
	}
	applyOptions(&model.config, opts)

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.HTTPClient = model.httpClient()
	if model.baseURL != "" {
		clientConfig.BaseURL = model.baseURL
	}
	model.client = openai.NewClientWithConfig(clientConfig)

	logger.Debugf("%s client initialized with model: %s, base URL: %s, max tokens: %d, timeout: %d seconds",
		model.provider, model.modelName, clientConfig.BaseURL, model.maxTokens, model.apiTimeout)

	return model, nil
}

// Prompt sends a single chat completion request and returns the reply text
func (o *OpenAIModel) Prompt(req Request) Response {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout())
	defer cancel()

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		logger.Debug("Adding system prompt to request")
		logger.Debug(req.SystemPrompt)
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}

	logger.Debug("Adding user prompt to request")
	logger.Debug(req.UserPrompt)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.UserPrompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    messages,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	}

	logger.Infof("Sending request with model %s, temperature %.2f", o.modelName, o.temperature)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		if isOpenAIAuthError(err) {
			return Response{Error: &AuthenticationError{Provider: o.provider, Err: err}}
		}
		logger.Errorf("failed to create chat completion: %v", err)
		return Response{Error: fmt.Errorf("failed to create chat completion: %w", err)}
	}

	if len(resp.Choices) == 0 {
		errMsg := "chat completion response contained no choices"
		logger.Error(errMsg)
		return Response{Error: errors.New(errMsg)}
	}

	return Response{Content: resp.Choices[0].Message.Content}
}

func isOpenAIAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return isAuthStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return isAuthStatus(reqErr.HTTPStatusCode)
	}
	return false
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
