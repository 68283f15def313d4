package annotate

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// implements Annotator using Anthropic Claude
type AnthropicAnnotator struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicAnnotator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*AnthropicAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicAnnotator{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		options: opts,
	}, nil
}

func (a *AnthropicAnnotator) Annotate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	return runSequential(ctx, items, a.options.batchSize(), a.annotateBatch)
}

func (a *AnthropicAnnotator) AnnotateWithConcurrency(
	ctx context.Context,
	items []Item,
	concurrency int,
) ([]Result, error) {
	return runConcurrent(ctx, items, a.options.batchSize(), concurrency, a.annotateBatch)
}

func (a *AnthropicAnnotator) annotateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	message, err := a.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: 4096,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(BuildPrompt(a.options, items)),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", a.options.Mode, err)
	}

	if message == nil || len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return parseResponseText("Anthropic", sb.String(), len(items))
}
