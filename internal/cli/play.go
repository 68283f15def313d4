package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mgpai22/lyrisync/internal/lyric"
	"github.com/mgpai22/lyrisync/internal/source"
	"github.com/spf13/cobra"
)

// how long play keeps running after the last line starts
const playTail = 5 * time.Second

var playCmd = &cobra.Command{
	Use:   "play [original_file]",
	Short: "Follow the lyrics against a simulated playback clock",
	Long: `Play starts a clock at --from seconds and prints each line as it
becomes active, the way a player would drive the lyric display.

With --watch, edits to any of the lyric files are picked up while playing:
the tracks are re-merged and the new timeline replaces the old one.

Examples:
  lyrisync play song.lrc --translation song.en.lrc
  lyrisync play song.yrc --from 60 --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	addSourceFlags(playCmd)
	playCmd.Flags().Float64("from", 0, "Start position in seconds")
	playCmd.Flags().Bool("watch", false, "Reload lyrics when the files change")
	playCmd.Flags().Int("tick", 0, "Clock resolution in milliseconds (default from config)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetFloat64("from")
	watch, _ := cmd.Flags().GetBool("watch")

	tick := cfg.Tick()
	if cmd.Flags().Changed("tick") {
		ms, _ := cmd.Flags().GetInt("tick")
		if ms <= 0 {
			return fmt.Errorf("tick must be positive, got %d", ms)
		}
		tick = time.Duration(ms) * time.Millisecond
	}

	tolerance, err := toleranceFrom(cmd)
	if err != nil {
		return err
	}
	offset := offsetFrom(cmd)
	files := songFilesFrom(cmd, args[0])

	tl, err := loadTimeline(files, tolerance, offset)
	if err != nil {
		return err
	}

	engine := lyric.NewEngine(lyric.Options{
		Tolerance: tolerance,
		Logger:    logger.SugaredLogger,
	})
	engine.Publish(tl)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watch {
		reload := func(path string) {
			next, err := loadTimeline(files, tolerance, offset)
			if err != nil {
				logger.Warnw("Reload failed, keeping current lyrics", "path", path, "error", err)
				return
			}
			engine.Publish(next)
			logger.Infow("Lyrics reloaded", "path", path, "lines", next.Len())
		}
		go func() {
			if err := source.Watch(ctx, files.paths(), source.DefaultDebounce, logger.SugaredLogger, reload); err != nil {
				logger.Errorw("File watcher stopped", "error", err)
			}
		}()
	}

	logger.Infow("Playing",
		"original", files.Original,
		"from", from,
		"lines", tl.Len(),
		"watch", watch,
	)

	return playLoop(ctx, engine, from, tick, cmd.OutOrStdout())
}

// playLoop advances a clock from start and prints every line change until the
// lyrics run out or ctx is cancelled.
func playLoop(ctx context.Context, engine *lyric.Engine, start float64, tick time.Duration, out io.Writer) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	began := time.Now()
	var (
		shownTimeline *lyric.Timeline
		shownIndex    = -1
	)

	for {
		pos := start + time.Since(began).Seconds()

		tl, line := engine.Current(pos)
		if line != nil && (tl != shownTimeline || line.Index != shownIndex) {
			fmt.Fprintln(out, formatLine(line))
			shownTimeline, shownIndex = tl, line.Index
		}

		if pos > endOfLyrics(tl) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// playback time after which nothing new can appear
func endOfLyrics(tl *lyric.Timeline) float64 {
	if tl.Len() == 0 {
		return 0
	}
	last := tl.Lines[tl.Len()-1]
	end := last.Time + float64(last.DurationMs)/1000
	return end - tl.TotalOffset() + playTail.Seconds()
}
