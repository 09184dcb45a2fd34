package prompt

import (
	"fmt"

	"github.com/bitrise-io/ai-health-assessor/common"
)

// GetSystemPrompt returns the optional system message. With default settings
// it is empty and the request carries the rendered user prompt only.
func GetSystemPrompt(settings common.Settings) string {
	basePrompt := settings.Tone
	if settings.Language != "" && settings.Language != "en-US" {
		if basePrompt != "" {
			basePrompt += "\n"
		}
		basePrompt += fmt.Sprintf("- Use %s language.", settings.Language)
	}

	return basePrompt
}
