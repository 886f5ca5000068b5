package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/InvictusNavarchus/ytsubsdown/internal/client"
	"github.com/InvictusNavarchus/ytsubsdown/internal/config"
	"github.com/InvictusNavarchus/ytsubsdown/internal/session"
	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

const version = "1.2.0"

var (
	remoteAddr      string
	outputDir       string
	includeMetadata bool
	noMetadata      bool
)

var rootCmd = &cobra.Command{
	Use:     "ytsubsdown [url]",
	Short:   "Extract, preview, and download YouTube subtitles as SRT",
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		url := args[0]
		if !youtube.IsValidVideoURL(url) {
			return fmt.Errorf("not a valid YouTube video URL: %s", url)
		}

		cfg := config.LoadOrDefault()
		return runInteractive(newBackend(cfg), url, resolveIncludeMetadata(cfg), resolveOutputDir(cfg))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&remoteAddr, "remote", "", "base URL of a remote subtitle API (default: scrape directly)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "directory for downloaded SRT files")
	rootCmd.PersistentFlags().BoolVar(&includeMetadata, "include-metadata", false, "prepend video metadata to the subtitle text")
	rootCmd.PersistentFlags().BoolVar(&noMetadata, "no-metadata", false, "never prepend video metadata")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// newBackend picks the session backend: a remote API when configured,
// direct scraping otherwise.
func newBackend(cfg config.Config) session.Backend {
	addr := remoteAddr
	if addr == "" {
		addr = cfg.ServerAddr
	}
	if addr != "" {
		return client.New(addr)
	}
	return session.NewLocalBackend()
}

func resolveIncludeMetadata(cfg config.Config) bool {
	if noMetadata {
		return false
	}
	if includeMetadata {
		return true
	}
	return cfg.IncludeMetadata
}

func resolveOutputDir(cfg config.Config) string {
	if outputDir != "" {
		return outputDir
	}
	if cfg.OutputDir != "" {
		return cfg.OutputDir
	}
	return "."
}
