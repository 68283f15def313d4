package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyrisync/internal/annotate"
	"github.com/mgpai22/lyrisync/internal/lyric"
	"github.com/mgpai22/lyrisync/internal/source"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate [original_file]",
	Short: "Generate a translation or romanization track using AI",
	Long: `Annotate sends the original lyric lines to an AI provider and writes
the generated translation or romanization as a plain LRC track that shares
the original's timestamps, ready to be passed to merge via --translation
or --romanization.

Repeated lines such as a chorus are sent once.

Examples:
  lyrisync annotate song.lrc --target-language english
  lyrisync annotate song.lrc --mode romanization -l japanese
  lyrisync annotate song.mp3 -t spanish --provider anthropic -o song.es.lrc`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().
		String("mode", "translation", "Track to generate (translation, romanization)")
	annotateCmd.Flags().
		StringP("target-language", "t", "", "Target language (required for translation)")
	annotateCmd.Flags().
		StringP("language", "l", "", "Language of the original lyrics")
	annotateCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	annotateCmd.Flags().
		String("model", "", "Model to use (provider-specific, default from config)")
	annotateCmd.Flags().
		Bool("model-override", false, "Allow any custom model, bypassing provider model validation")
	annotateCmd.Flags().
		String("provider", "", "AI provider (gemini, openai, anthropic; default from config)")
	annotateCmd.Flags().
		String("prompt", "", "Additional instructions for the model")
	annotateCmd.Flags().
		Int("concurrency", 0, "Number of parallel workers (default from config)")
	annotateCmd.Flags().
		Int("batch-size", 0, "Number of lines per API request (default from config)")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	originalPath := args[0]
	ctx := context.Background()

	modeStr, _ := cmd.Flags().GetString("mode")
	targetLang, _ := cmd.Flags().GetString("target-language")
	inputLang, _ := cmd.Flags().GetString("language")
	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	modelOverride, _ := cmd.Flags().GetBool("model-override")
	providerStr, _ := cmd.Flags().GetString("provider")
	prompt, _ := cmd.Flags().GetString("prompt")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")

	mode, err := annotate.ParseMode(modeStr)
	if err != nil {
		return err
	}

	if mode == annotate.ModeTranslation {
		if targetLang == "" {
			return fmt.Errorf("target language is required for translation")
		}
		if inputLang != "" && strings.EqualFold(strings.TrimSpace(inputLang), strings.TrimSpace(targetLang)) {
			return fmt.Errorf(
				"input language %q and target language %q cannot be the same",
				inputLang,
				targetLang,
			)
		}
	}

	if providerStr == "" {
		providerStr = cfg.Annotate.Provider
	}
	provider := annotate.Provider(providerStr)

	if model == "" {
		model = cfg.Annotate.Model
	}
	if model != "" && !modelOverride && !isValidModel(provider, model) {
		return fmt.Errorf(
			"unsupported %s model %q: valid models are %s (use --model-override to bypass)",
			provider,
			model,
			strings.Join(validModels[provider], ", "),
		)
	}

	if apiKey == "" {
		apiKey = os.Getenv(annotate.APIKeyEnv(provider))
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			annotate.APIKeyEnv(provider),
		)
	}

	if concurrency == 0 {
		concurrency = cfg.Annotate.Concurrency
	}
	if batchSize == 0 {
		batchSize = cfg.Annotate.BatchSize
	}
	if concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", concurrency)
	}
	if batchSize < 0 {
		return fmt.Errorf("batch-size must be positive, got %d", batchSize)
	}

	if outputPath == "" {
		outputPath = annotateOutputPath(originalPath, mode, targetLang)
	}

	logger.Infow("Starting lyric annotation",
		"input", originalPath,
		"output", outputPath,
		"mode", mode,
		"provider", provider,
		"target_language", targetLang,
		"input_language", inputLang,
		"model", model,
	)

	raw, err := source.Read(originalPath)
	if err != nil {
		return err
	}
	track := lyric.ParseTrack(raw)

	items := annotate.Items(track.Lines)
	if len(items) == 0 {
		return fmt.Errorf("lyrics contain no text to annotate")
	}

	annotator, err := annotate.Factory(ctx, provider, apiKey, annotate.Options{
		Mode:           mode,
		InputLanguage:  inputLang,
		TargetLanguage: targetLang,
		Model:          model,
		Prompt:         prompt,
		BatchSize:      batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create annotator: %w", err)
	}

	logger.Infow("Annotating lyrics",
		"lines", len(track.Lines),
		"items", len(items),
		"concurrency", concurrency,
	)

	var results []annotate.Result
	if concurrent, ok := annotator.(annotate.ConcurrentAnnotator); ok {
		results, err = concurrent.AnnotateWithConcurrency(ctx, items, concurrency)
	} else {
		results, err = annotator.Annotate(ctx, items)
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", mode, err)
	}

	for _, result := range results {
		if result.Index < 0 || result.Index >= len(items) {
			logger.Warnw("Skipping invalid result index",
				"index", result.Index,
				"max", len(items)-1,
			)
		}
	}

	text := annotate.BuildTrack(track.Lines, results)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Lyrics %s written: %s\n", mode, absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Lines: %d (%d distinct)\n", len(track.Lines), len(items))
	if mode == annotate.ModeTranslation {
		fmt.Fprintf(cmd.OutOrStdout(), "  Target language: %s\n", targetLang)
	}

	return nil
}

// song.lrc -> song.english.lrc or song.roma.lrc
func annotateOutputPath(input string, mode annotate.Mode, targetLang string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if mode == annotate.ModeRomanization {
		return base + ".roma.lrc"
	}
	return fmt.Sprintf("%s.%s.lrc", base, strings.ToLower(strings.TrimSpace(targetLang)))
}
