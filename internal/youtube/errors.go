package youtube

// Error is a typed sentinel for extraction failures so callers can map
// them to HTTP status codes without string matching.
type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidURL      = Error("invalid YouTube URL or could not extract video ID")
	ErrNoSubtitles     = Error("no subtitles found for this video")
	ErrUnavailable     = Error("video unavailable")
	ErrTooManyRequests = Error("too many requests, YouTube is asking for a captcha")
)
