package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mgpai22/lyrisync/internal/lyric"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [original_file]",
	Short: "Merge translation and romanization tracks into one lyric file",
	Long: `Merge aligns translation and romanization lines onto the original
lyrics by timestamp and writes a single multi-track LRC document.

The original may be any supported lyric grammar, or an audio file with
embedded lyrics. Secondary lines with no original line within the tolerance
are kept as standalone lines.

Examples:
  lyrisync merge song.lrc --translation song.en.lrc
  lyrisync merge song.yrc --romanization song.roma.lrc --word-by-word -o merged.lrc
  lyrisync merge song.mp3 --translation song.en.lrc --order translation,original`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	addSourceFlags(mergeCmd)
	mergeCmd.Flags().
		StringSlice("order", nil, "Track order in the output (original, translation, romanization)")
	mergeCmd.Flags().
		Bool("word-by-word", false, "Write word timing as <mm:ss.fff> markers where available")
}

func runMerge(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")

	opts, err := writeOptionsFrom(cmd)
	if err != nil {
		return err
	}
	tolerance, err := toleranceFrom(cmd)
	if err != nil {
		return err
	}

	files := songFilesFrom(cmd, args[0])
	logger.Infow("Merging lyrics",
		"original", files.Original,
		"translation", files.Translation,
		"romanization", files.Romanization,
		"tolerance", tolerance,
	)

	tl, err := loadTimeline(files, tolerance, 0)
	if err != nil {
		return err
	}

	if outputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), lyric.Write(tl, opts))
		return nil
	}

	if err := lyric.NewWriter(opts).Write(tl, outputPath); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	logger.Infow("Merged lyrics written",
		"output", absOutput,
		"lines", tl.Len(),
	)
	return nil
}

func writeOptionsFrom(cmd *cobra.Command) (lyric.WriteOptions, error) {
	opts := lyric.WriteOptions{
		Order:      cfg.TrackOrder(),
		WordByWord: cfg.Output.WordByWord,
	}

	if cmd.Flags().Changed("order") {
		values, _ := cmd.Flags().GetStringSlice("order")
		order, err := lyric.ParseOrder(values)
		if err != nil {
			return opts, fmt.Errorf("invalid --order: %w", err)
		}
		opts.Order = order
	}
	if cmd.Flags().Changed("word-by-word") {
		opts.WordByWord, _ = cmd.Flags().GetBool("word-by-word")
	}

	return opts, nil
}
