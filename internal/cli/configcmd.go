package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/InvictusNavarchus/ytsubsdown/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ytsubsdown configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadOrDefault()

		fmt.Println("Current configuration:")
		fmt.Printf("  ServerAddr:      %s\n", orDefault(cfg.ServerAddr, "(direct scraping)"))
		fmt.Printf("  Port:            %d\n", cfg.Port)
		fmt.Printf("  OutputDir:       %s\n", cfg.OutputDir)
		fmt.Printf("  Language:        %s\n", orDefault(cfg.Language, "(first track)"))
		fmt.Printf("  IncludeMetadata: %t\n", cfg.IncludeMetadata)
		fmt.Printf("  History:         %t\n", cfg.History)
		fmt.Printf("  Config:          %s\n", config.SavePath())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.SavePath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Exists() {
			return fmt.Errorf("config already exists at %s", config.SavePath())
		}
		if err := config.Save(config.Default()); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", config.SavePath())
		return nil
	},
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
