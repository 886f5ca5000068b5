package youtube

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMetadataHeader(t *testing.T) {
	m := Metadata{
		Title:       "My Video",
		Channel:     "My Channel",
		Description: "First line only",
		URL:         "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoID:     "dQw4w9WgXcQ",
	}

	got := FormatMetadataHeader(m)
	want := strings.Join([]string{
		"[video]",
		`title = "My Video"`,
		`channel = "My Channel"`,
		`url = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
		`description = "First line only"`,
		"",
		"[transcript]",
		"",
		"```",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatMetadataHeader_QuotesKeptRaw(t *testing.T) {
	got := FormatMetadataHeader(Metadata{Title: `He said "hi"`})
	assert.Contains(t, got, `title = "He said "hi""`)
}

func TestFormatMetadataHeader_SkipsEmptyFields(t *testing.T) {
	got := FormatMetadataHeader(Metadata{Title: "Only Title"})
	assert.Equal(t, "[video]\ntitle = \"Only Title\"\n\n[transcript]\n\n```", got)
}

func TestComposeSubtitleContent(t *testing.T) {
	m := Metadata{Title: "T"}
	srt := "1\n00:00:00,000 --> 00:00:01,000\nhello\n"

	withMeta := ComposeSubtitleContent(m, srt, true)
	assert.True(t, strings.HasPrefix(withMeta, "[video]\n"))
	assert.True(t, strings.HasSuffix(withMeta, "hello\n```"))

	bare := ComposeSubtitleContent(m, srt, false)
	assert.Equal(t, "1\n00:00:00,000 --> 00:00:01,000\nhello", bare)
}
