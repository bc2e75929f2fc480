package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajkula/livetext/config"
)

const version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:           "livetext",
	Short:         "Keep live in-memory views of text files",
	Long:          `livetext polls registered text files and serves their latest contents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "livetext version %s\n", version)
	},
}

var generateConfigCmd = &cobra.Command{
	Use:   "generate-config",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SaveConfig(config.DefaultConfig(), configPath); err != nil {
			return fmt.Errorf("error generating config file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default configuration file generated at: %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	rootCmd.AddCommand(versionCmd, generateConfigCmd)
}

// loadConfig reads --config. A missing file is only an error when the flag
// was set explicitly; otherwise defaults apply.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}
