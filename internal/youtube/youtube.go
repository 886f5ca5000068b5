// Package youtube scrapes video metadata and subtitle tracks from
// YouTube watch pages and fetches timedtext subtitle content.
package youtube

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/InvictusNavarchus/ytsubsdown/internal/subtitle"
)

const (
	pageTimeout     = 15 * time.Second
	subtitleTimeout = 10 * time.Second
)

// Client extracts subtitle data for YouTube videos.
type Client struct {
	http *http.Client
}

// New creates a Client backed by its own HTTP client. Per-request
// deadlines are applied via context, not a client-wide timeout.
func New() *Client {
	return &Client{http: &http.Client{}}
}

// VideoInfo fetches the watch page for rawURL and returns the video's
// metadata together with its available subtitle tracks. Returns
// ErrInvalidURL when no video id can be extracted and ErrNoSubtitles
// when the video has no caption tracks.
func (c *Client) VideoInfo(ctx context.Context, rawURL string) (*VideoInfo, error) {
	videoID := ExtractVideoID(rawURL)
	if videoID == "" {
		return nil, ErrInvalidURL
	}

	ctx, cancel := context.WithTimeout(ctx, pageTimeout)
	defer cancel()

	html, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	pr, err := extractPlayerResponse(html)
	if err != nil {
		return nil, err
	}

	tracks := pr.tracks()
	if len(tracks) == 0 {
		return nil, ErrNoSubtitles
	}

	return &VideoInfo{
		Metadata: pr.metadata(rawURL, videoID),
		Tracks:   tracks,
	}, nil
}

// SubtitleSRT downloads the timedtext document behind track and
// converts it to SRT. The track URL is used exactly as received.
func (c *Client) SubtitleSRT(ctx context.Context, track Track) (string, error) {
	if track.URL == "" {
		return "", fmt.Errorf("track has no subtitle URL")
	}

	ctx, cancel := context.WithTimeout(ctx, subtitleTimeout)
	defer cancel()

	body, err := c.fetch(ctx, track.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch subtitle content: %w", err)
	}

	cues, err := subtitle.ParseTimedText(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse subtitle content: %w", err)
	}

	return subtitle.ToSRT(cues), nil
}
