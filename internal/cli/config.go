package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/lyrisync/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Init writes a configuration file with every setting at its default,
at the --config path (lyrisync.toml by default).

Examples:
  lyrisync config init
  lyrisync config init --config ~/.config/lyrisync.toml --force`,
	Args: cobra.NoArgs,
	// the file may not exist or be broken yet
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	RunE:             runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", configPath)
	}

	if err := config.DefaultConfig().SaveToFile(configPath); err != nil {
		return err
	}

	absPath, _ := filepath.Abs(configPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written: %s\n", absPath)
	return nil
}
