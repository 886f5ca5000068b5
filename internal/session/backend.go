package session

import (
	"context"

	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

// LocalBackend serves session requests by scraping YouTube directly,
// without going through a running API server. It caches the last
// video-info result so composing the metadata header does not refetch
// the watch page.
type LocalBackend struct {
	yt *youtube.Client

	lastURL  string
	lastInfo *youtube.VideoInfo
}

// NewLocalBackend creates a direct-scraping backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{yt: youtube.New()}
}

func (b *LocalBackend) VideoInfo(ctx context.Context, videoURL string) (*youtube.VideoInfo, error) {
	info, err := b.yt.VideoInfo(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	b.lastURL = videoURL
	b.lastInfo = info
	return info, nil
}

func (b *LocalBackend) Subtitles(ctx context.Context, videoURL string, track youtube.Track, includeMetadata bool) (string, error) {
	srt, err := b.yt.SubtitleSRT(ctx, track)
	if err != nil {
		return "", err
	}

	var meta youtube.Metadata
	if includeMetadata {
		info := b.lastInfo
		if info == nil || b.lastURL != videoURL {
			info, err = b.VideoInfo(ctx, videoURL)
			if err != nil {
				return "", err
			}
		}
		meta = info.Metadata
	}

	return youtube.ComposeSubtitleContent(meta, srt, includeMetadata), nil
}
