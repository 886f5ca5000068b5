package youtube

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// playerResponse mirrors the slice of ytInitialPlayerResponse this
// package needs: video details, the microformat fallback, and the
// caption track list.
type playerResponse struct {
	VideoDetails struct {
		VideoID          string `json:"videoId"`
		Title            string `json:"title"`
		Author           string `json:"author"`
		ShortDescription string `json:"shortDescription"`
	} `json:"videoDetails"`
	Microformat struct {
		PlayerMicroformatRenderer struct {
			Title struct {
				SimpleText string `json:"simpleText"`
			} `json:"title"`
			OwnerChannelName string `json:"ownerChannelName"`
			Description      struct {
				SimpleText string `json:"simpleText"`
			} `json:"description"`
		} `json:"playerMicroformatRenderer"`
	} `json:"microformat"`
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL string `json:"baseUrl"`
	Name    struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

var playerResponsePatterns = []*regexp.Regexp{
	regexp.MustCompile(`var ytInitialPlayerResponse\s*=\s*(\{.+?\});(?:var meta|</script)`),
	regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*(\{.+?\});(?:var meta|</script)`),
}

// extractPlayerResponse locates the ytInitialPlayerResponse JSON blob
// in the watch page HTML and decodes it.
func extractPlayerResponse(html []byte) (*playerResponse, error) {
	for _, re := range playerResponsePatterns {
		m := re.FindSubmatch(html)
		if len(m) < 2 {
			continue
		}

		var pr playerResponse
		if err := json.Unmarshal(m[1], &pr); err != nil {
			return nil, fmt.Errorf("failed to decode ytInitialPlayerResponse: %w", err)
		}
		return &pr, nil
	}

	if bytes.Contains(html, []byte(`class="g-recaptcha"`)) {
		return nil, ErrTooManyRequests
	}
	if !bytes.Contains(html, []byte(`"playabilityStatus":`)) {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("ytInitialPlayerResponse not found in watch page")
}

// metadata assembles video metadata from videoDetails, falling back to
// the microformat renderer for fields the details block leaves empty.
func (pr *playerResponse) metadata(videoURL, videoID string) Metadata {
	mf := pr.Microformat.PlayerMicroformatRenderer

	title := pr.VideoDetails.Title
	if title == "" {
		title = mf.Title.SimpleText
	}
	if title == "" {
		title = "Unknown Title"
	}

	channel := pr.VideoDetails.Author
	if channel == "" {
		channel = mf.OwnerChannelName
	}
	if channel == "" {
		channel = "Unknown Channel"
	}

	description := pr.VideoDetails.ShortDescription
	if description == "" {
		description = mf.Description.SimpleText
	}
	// Only the first line, the full description can be huge.
	if i := strings.IndexByte(description, '\n'); i >= 0 {
		description = description[:i]
	}

	return Metadata{
		Title:       title,
		Channel:     channel,
		Description: description,
		URL:         videoURL,
		VideoID:     videoID,
	}
}

// tracks converts the raw caption track list into the public shape,
// dropping tracks that carry no timedtext URL.
func (pr *playerResponse) tracks() []Track {
	raw := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks

	tracks := make([]Track, 0, len(raw))
	for _, t := range raw {
		if t.BaseURL == "" {
			continue
		}

		name := t.Name.SimpleText
		if name == "" {
			name = "Unknown Language"
		}
		langCode := t.LanguageCode
		if langCode == "" {
			langCode = "unk"
		}

		tracks = append(tracks, Track{
			Name:     name,
			URL:      t.BaseURL,
			LangCode: langCode,
			IsASR:    t.Kind == "asr",
		})
	}
	return tracks
}
