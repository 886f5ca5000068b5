package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/InvictusNavarchus/ytsubsdown/internal/config"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks <url>",
	Short: "List the available subtitle tracks for a video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		backend := newBackend(cfg)

		info, err := backend.VideoInfo(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s\n\n", info.Metadata.Title, info.Metadata.Channel)
		for i, track := range info.Tracks {
			suffix := ""
			if track.IsASR {
				suffix = color.New(color.FgYellow).Sprint(" (auto-generated)")
			}
			fmt.Printf("  [%d] %s (%s)%s\n", i, track.Name, track.LangCode, suffix)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}
