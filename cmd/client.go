package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/bitrise-io/ai-health-assessor/assessment"
	"github.com/bitrise-io/ai-health-assessor/llm"
	"github.com/bitrise-io/ai-health-assessor/logger"
	"github.com/bitrise-io/ai-health-assessor/metrics"
	"github.com/spf13/cobra"
)

func addLLMFlags(cmd *cobra.Command, withModel bool) {
	cmd.Flags().StringP("provider", "p", "", "LLM provider to use (groq, openai, ollama, anthropic); defaults to the settings file")
	if withModel {
		cmd.Flags().StringP("model", "m", "", "LLM model to use; defaults to the settings file")
	}
}

func providerFlag(cmd *cobra.Command) string {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = settings.LLM.Provider
	}
	return provider
}

func modelFlag(cmd *cobra.Command, fallback string) string {
	if cmd.Flags().Lookup("model") == nil {
		return fallback
	}
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		return fallback
	}
	return model
}

// newClient resolves the credential and builds a completion client. A
// missing credential is returned as is and ends the command.
func newClient(provider, model string) (llm.LLM, error) {
	apiKey, err := llm.APIKeyFromEnv(provider)
	if err != nil {
		return nil, err
	}

	opts := append(llm.OptionsFromSettings(settings.LLM), llm.WithModel(model))
	client, err := llm.NewLLM(provider, apiKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for provider: %w", err)
	}

	logger.Infow("Using LLM", "provider", provider, "model", model)
	return client, nil
}

// reportUserError prints errors that have a user-facing message and reports
// whether it did. All other errors are left to the caller.
func reportUserError(w io.Writer, err error) bool {
	var formatErr *metrics.InputFormatError
	var rangeErr *metrics.RangeError
	var invalidErr *assessment.InvalidResponseError

	switch {
	case errors.As(err, &formatErr):
		fmt.Fprintln(w, formatErr.Error())
	case errors.As(err, &rangeErr):
		fmt.Fprintln(w, rangeErr.Error())
	case errors.As(err, &invalidErr):
		fmt.Fprintln(w, invalidErr.Error())
	default:
		return false
	}
	return true
}
