package cli

import (
	"slices"
	"strings"

	"github.com/mgpai22/lyrisync/internal/annotate"
)

// models accepted without --model-override
var validModels = map[annotate.Provider][]string{
	annotate.ProviderGemini: {
		"gemini-3-pro-preview",
		"gemini-3-flash-preview",
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
	},
	annotate.ProviderOpenAI: {
		"o1", "o3-mini", "o1-pro", "o3",
		"gpt-5", "gpt-5-nano", "gpt-5-mini", "gpt-5-pro",
		"gpt-5.1", "gpt-5.2", "gpt-5.2-pro",
	},
	annotate.ProviderAnthropic: {
		"claude-haiku-4-5",
		"claude-sonnet-4-5",
		"claude-opus-4-1",
	},
}

func isValidModel(provider annotate.Provider, model string) bool {
	return slices.Contains(validModels[provider], strings.ToLower(strings.TrimSpace(model)))
}
