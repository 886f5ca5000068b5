package youtube

import (
	"net/url"
	"regexp"
)

// validURLPatterns cover the three accepted URL shapes: canonical watch
// URLs, youtu.be short links, and embed URLs. Scheme and www. are
// optional; extra query parameters after the id are tolerated.
var validURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})(?:[&#].*)?$`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]{11})(?:[?#].*)?$`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{11})(?:[?#].*)?$`),
}

// idPatterns are the looser shapes accepted when extracting an id from
// a URL that already reached the backend (shorts, /v/ and friends).
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/shorts/)([A-Za-z0-9_-]{11})`),
}

// IsValidVideoURL reports whether s is a well-formed YouTube video URL
// with an 11-character video id. Pure function, no network access.
func IsValidVideoURL(s string) bool {
	for _, re := range validURLPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ExtractVideoID pulls the 11-character video id out of a YouTube URL,
// returning "" when none can be found.
func ExtractVideoID(rawURL string) string {
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1]
		}
	}

	// Fall back to the v= query parameter wherever it appears.
	if u, err := url.Parse(rawURL); err == nil {
		if v := u.Query().Get("v"); videoIDRe.MatchString(v) {
			return v
		}
	}

	return ""
}

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
