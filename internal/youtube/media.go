package youtube

// Metadata describes the video a set of subtitle tracks belongs to.
// Field names follow the wire format of the subtitle API.
type Metadata struct {
	Title       string `json:"title"`
	Channel     string `json:"channel"`
	Description string `json:"description"`
	URL         string `json:"url"`
	VideoID     string `json:"video_id"`
}

// Track is one selectable subtitle stream. URL is the timedtext
// endpoint for the track; clients must round-trip it verbatim.
type Track struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	LangCode string `json:"lang_code"`
	IsASR    bool   `json:"is_asr"`
}

// VideoInfo is the result of a video-info lookup: metadata plus the
// available subtitle tracks in the order YouTube returned them.
type VideoInfo struct {
	Metadata Metadata `json:"metadata"`
	Tracks   []Track  `json:"tracks"`
}
