package cli

import (
	"fmt"

	"github.com/mgpai22/lyrisync/internal/lyric"
	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate [original_file]",
	Short: "Print the lyric line active at a playback time",
	Long: `Locate merges the given tracks and prints the line that is playing at
the --at time, together with its translation and romanization.

The [offset:ms] header of the original and --offset both shift the time
before lookup.

Examples:
  lyrisync locate song.lrc --at 42.5
  lyrisync locate song.lrc --translation song.en.lrc --at 61 --offset -0.3`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)

	addSourceFlags(locateCmd)
	locateCmd.Flags().Float64("at", 0, "Playback time in seconds (required)")

	_ = locateCmd.MarkFlagRequired("at")
}

func runLocate(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetFloat64("at")

	tolerance, err := toleranceFrom(cmd)
	if err != nil {
		return err
	}

	tl, err := loadTimeline(songFilesFrom(cmd, args[0]), tolerance, offsetFrom(cmd))
	if err != nil {
		return err
	}

	engine := lyric.NewEngine(lyric.Options{
		Tolerance: tolerance,
		Logger:    logger.SugaredLogger,
	})
	engine.Publish(tl)

	line := engine.Locate(at)
	logger.Debugw("Located line",
		"at", at,
		"offset", tl.TotalOffset(),
		"found", line != nil,
	)

	fmt.Fprintln(cmd.OutOrStdout(), formatLine(line))
	return nil
}
