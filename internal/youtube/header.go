package youtube

import (
	"fmt"
	"strings"
)

// FormatMetadataHeader renders video metadata as the text block that
// precedes subtitle content when metadata is requested:
//
//	[video]
//	title = "..."
//	channel = "..."
//	url = "..."
//
//	[transcript]
//
//	```
func FormatMetadataHeader(m Metadata) string {
	// Values are interpolated as-is, quotes in titles included; the
	// header is display text, not a parseable format.
	parts := []string{"[video]"}
	if m.Title != "" {
		parts = append(parts, fmt.Sprintf("title = \"%s\"", m.Title))
	}
	if m.Channel != "" {
		parts = append(parts, fmt.Sprintf("channel = \"%s\"", m.Channel))
	}
	if m.URL != "" {
		parts = append(parts, fmt.Sprintf("url = \"%s\"", m.URL))
	}
	if m.Description != "" {
		parts = append(parts, fmt.Sprintf("description = \"%s\"", m.Description))
	}
	parts = append(parts, "\n[transcript]\n\n```")
	return strings.Join(parts, "\n")
}

// ComposeSubtitleContent wraps SRT content with the metadata header and
// closing fence when includeMetadata is set; otherwise it returns the
// trimmed SRT alone.
func ComposeSubtitleContent(m Metadata, srt string, includeMetadata bool) string {
	srt = strings.TrimSpace(srt)
	if !includeMetadata {
		return srt
	}
	return fmt.Sprintf("%s\n%s\n```", FormatMetadataHeader(m), srt)
}
