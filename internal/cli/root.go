package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/mgpai22/lyrisync/internal/config"
	"github.com/mgpai22/lyrisync/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lyrisync",
	Short: "Synchronized lyric merging and playback lookup",
	Long: `Lyrisync parses time-coded lyrics (plain LRC, word-timed numeric
and word-timed angle-bracket formats), aligns optional translation and
romanization tracks onto the original, and answers "which line is playing
at time t" for a playback clock.

It can also generate a translation or romanization track with AI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// provider keys may live in .env; a missing file is fine
		_ = godotenv.Load()

		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
		cfg = loaded

		if verbose {
			logger = logging.NewLogger(true)
			return nil
		}
		logger, err = logging.NewLoggerWithLevel(cfg.Logging.Level)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", config.DefaultPath, "Config file path")
}
