package annotate

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// implements Annotator using Google Gemini
type GeminiAnnotator struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiAnnotator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiAnnotator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiAnnotator{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (a *GeminiAnnotator) Annotate(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	return runSequential(ctx, items, a.options.batchSize(), a.annotateBatch)
}

func (a *GeminiAnnotator) AnnotateWithConcurrency(
	ctx context.Context,
	items []Item,
	concurrency int,
) ([]Result, error) {
	return runConcurrent(ctx, items, a.options.batchSize(), concurrency, a.annotateBatch)
}

func (a *GeminiAnnotator) annotateBatch(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(BuildPrompt(a.options, items), genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", a.options.Mode, err)
	}

	return parseGeminiResponse(result, len(items))
}

func parseGeminiResponse(
	result *genai.GenerateContentResponse,
	expectedCount int,
) ([]Result, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}

	return parseResponseText("Gemini", sb.String(), expectedCount)
}
