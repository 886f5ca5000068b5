package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/InvictusNavarchus/ytsubsdown/internal/config"
	"github.com/InvictusNavarchus/ytsubsdown/internal/session"
)

var (
	getLang   string
	getIndex  int
	getStdout bool
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Fetch one subtitle track non-interactively",
	Long: `Fetch one subtitle track and write it as an SRT file.

The track is chosen by --lang (first matching language code), by
--track (index as printed by 'ytsubsdown tracks'), or defaults to the
first available track.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadOrDefault()
		sess := session.New(newBackend(cfg))
		ctx := context.Background()

		if err := sess.LoadVideo(ctx, args[0]); err != nil {
			return err
		}

		index, err := pickTrack(sess, cfg)
		if err != nil {
			return err
		}

		if err := sess.SelectTrack(ctx, index, resolveIncludeMetadata(cfg)); err != nil {
			return err
		}

		if getStdout {
			fmt.Println(sess.Content())
			return nil
		}

		path, err := sess.SaveToFile(resolveOutputDir(cfg))
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", path)
		return nil
	},
}

func pickTrack(sess *session.Session, cfg config.Config) (int, error) {
	tracks := sess.Tracks()

	if getIndex >= 0 {
		if getIndex >= len(tracks) {
			return 0, fmt.Errorf("track index %d out of range (%d tracks)", getIndex, len(tracks))
		}
		return getIndex, nil
	}

	lang := getLang
	if lang == "" {
		lang = cfg.Language
	}
	if lang != "" {
		for i, track := range tracks {
			if track.LangCode == lang {
				return i, nil
			}
		}
		return 0, fmt.Errorf("no subtitle track for language %q", lang)
	}

	return 0, nil
}

func init() {
	getCmd.Flags().StringVarP(&getLang, "lang", "l", "", "language code of the track to fetch")
	getCmd.Flags().IntVarP(&getIndex, "track", "t", -1, "track index to fetch")
	getCmd.Flags().BoolVar(&getStdout, "stdout", false, "print the subtitle to stdout instead of saving")
	rootCmd.AddCommand(getCmd)
}
