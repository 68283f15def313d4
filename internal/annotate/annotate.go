package annotate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// single lyric text sent to the model
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// generated text for one item
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// interface for generating a secondary lyric track
type Annotator interface {
	Annotate(
		ctx context.Context,
		items []Item,
	) ([]Result, error)
}

// optional interface for annotators that run batches in parallel
type ConcurrentAnnotator interface {
	Annotator
	AnnotateWithConcurrency(
		ctx context.Context,
		items []Item,
		concurrency int,
	) ([]Result, error)
}

// model provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// kind of track to generate
type Mode string

const (
	ModeTranslation  Mode = "translation"
	ModeRomanization Mode = "romanization"
)

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translation", "translate", "trans":
		return ModeTranslation, nil
	case "romanization", "romanize", "roma", "romaji":
		return ModeRomanization, nil
	default:
		return "", fmt.Errorf("unknown annotate mode: %q", s)
	}
}

const DefaultBatchSize = 50

type Options struct {
	Mode           Mode
	InputLanguage  string
	TargetLanguage string // required for translation
	Model          string
	Prompt         string
	BatchSize      int // items per API request (default 50)
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

// APIKeyEnv names the environment variable holding the provider's key.
func APIKeyEnv(provider Provider) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// creates Annotator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Annotator, error) {
	if opts.Mode == "" {
		opts.Mode = ModeTranslation
	}
	if opts.Mode == ModeTranslation && opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiAnnotator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAIAnnotator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicAnnotator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported annotate provider: %s", provider)
	}
}

// BuildPrompt creates the request prompt for one batch
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	source := "song lyric lines"
	if opts.InputLanguage != "" {
		source = opts.InputLanguage + " song lyric lines"
	}

	switch opts.Mode {
	case ModeRomanization:
		fmt.Fprintf(&sb, "Romanize the following %s.\n\n", source)
	default:
		fmt.Fprintf(&sb, "Translate the following %s to %s.\n\n", source, opts.TargetLanguage)
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	switch opts.Mode {
	case ModeRomanization:
		sb.WriteString("1. Write how each line is pronounced in Latin script; do not translate.\n")
		sb.WriteString("2. Use the standard romanization for the language (Hepburn, Pinyin with tone marks, Revised Romanization).\n")
	default:
		sb.WriteString("1. Translate each line as a singable lyric, preserving the meaning.\n")
		sb.WriteString("2. Keep names and interjections untranslated.\n")
	}
	sb.WriteString("3. Never merge or split lines; one output per input line.\n")
	sb.WriteString("4. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("5. Each object must have 'index' and 'text' fields.\n")
	sb.WriteString("6. The 'index' values must match the input indices exactly.\n")
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		fmt.Fprintf(&sb, "Additional instructions: %s\n\n", opts.Prompt)
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the JSON array only:")

	return sb.String()
}
