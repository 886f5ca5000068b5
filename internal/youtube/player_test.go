package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchPageFixture = `<!DOCTYPE html><html><head><script>
var ytInitialPlayerResponse = {"playabilityStatus":{"status":"OK"},"videoDetails":{"videoId":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","author":"Rick Astley","shortDescription":"The official video.\nSecond line."},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en","name":{"simpleText":"English"},"languageCode":"en"},{"baseUrl":"https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=de&kind=asr","name":{"simpleText":"German (auto-generated)"},"languageCode":"de","kind":"asr"},{"name":{"simpleText":"Broken"},"languageCode":"xx"}]}},"microformat":{"playerMicroformatRenderer":{"ownerChannelName":"Rick Astley Official"}}};var meta = {};
</script></head><body></body></html>`

func TestExtractPlayerResponse(t *testing.T) {
	pr, err := extractPlayerResponse([]byte(watchPageFixture))
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", pr.VideoDetails.VideoID)
	assert.Equal(t, "Never Gonna Give You Up", pr.VideoDetails.Title)
}

func TestExtractPlayerResponse_NotFound(t *testing.T) {
	_, err := extractPlayerResponse([]byte(`<html><body>nothing here "playabilityStatus": {}</body></html>`))
	assert.ErrorContains(t, err, "ytInitialPlayerResponse not found")
}

func TestExtractPlayerResponse_Unavailable(t *testing.T) {
	_, err := extractPlayerResponse([]byte(`<html><body>gone</body></html>`))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExtractPlayerResponse_Captcha(t *testing.T) {
	_, err := extractPlayerResponse([]byte(`<html><form class="g-recaptcha"></form></html>`))
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestPlayerResponseMetadata(t *testing.T) {
	pr, err := extractPlayerResponse([]byte(watchPageFixture))
	require.NoError(t, err)

	m := pr.metadata("https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ")
	assert.Equal(t, "Never Gonna Give You Up", m.Title)
	assert.Equal(t, "Rick Astley", m.Channel)
	// Only the first description line is kept.
	assert.Equal(t, "The official video.", m.Description)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", m.URL)
	assert.Equal(t, "dQw4w9WgXcQ", m.VideoID)
}

func TestPlayerResponseMetadata_MicroformatFallback(t *testing.T) {
	var pr playerResponse
	pr.Microformat.PlayerMicroformatRenderer.Title.SimpleText = "Fallback Title"
	pr.Microformat.PlayerMicroformatRenderer.OwnerChannelName = "Fallback Channel"

	m := pr.metadata("u", "id")
	assert.Equal(t, "Fallback Title", m.Title)
	assert.Equal(t, "Fallback Channel", m.Channel)
}

func TestPlayerResponseMetadata_Unknowns(t *testing.T) {
	var pr playerResponse
	m := pr.metadata("u", "id")
	assert.Equal(t, "Unknown Title", m.Title)
	assert.Equal(t, "Unknown Channel", m.Channel)
}

func TestPlayerResponseTracks(t *testing.T) {
	pr, err := extractPlayerResponse([]byte(watchPageFixture))
	require.NoError(t, err)

	tracks := pr.tracks()
	// The track without a baseUrl is dropped.
	require.Len(t, tracks, 2)

	assert.Equal(t, Track{
		Name:     "English",
		URL:      "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en",
		LangCode: "en",
		IsASR:    false,
	}, tracks[0])

	assert.Equal(t, "German (auto-generated)", tracks[1].Name)
	assert.True(t, tracks[1].IsASR)
}
