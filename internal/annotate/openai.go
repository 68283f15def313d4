package annotate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Annotator using OpenAI Chat Completions
type OpenAIAnnotator struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAIAnnotator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := opts.Model
	if model == "" {
		model = "gpt-5-mini"
	}

	return &OpenAIAnnotator{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		options: opts,
	}, nil
}

func (a *OpenAIAnnotator) Annotate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	return runSequential(ctx, items, a.options.batchSize(), a.annotateBatch)
}

func (a *OpenAIAnnotator) AnnotateWithConcurrency(
	ctx context.Context,
	items []Item,
	concurrency int,
) ([]Result, error) {
	return runConcurrent(ctx, items, a.options.batchSize(), concurrency, a.annotateBatch)
}

func (a *OpenAIAnnotator) annotateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	completion, err := a.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(BuildPrompt(a.options, items)),
			},
			Model: a.model,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", a.options.Mode, err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	return parseResponseText("OpenAI", completion.Choices[0].Message.Content, len(items))
}
