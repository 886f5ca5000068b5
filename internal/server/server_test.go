package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExtractor serves canned extraction results.
type stubExtractor struct {
	info    *youtube.VideoInfo
	infoErr error
	srt     string
	srtErr  error

	infoCalls int
	srtCalls  []youtube.Track
}

func (s *stubExtractor) VideoInfo(_ context.Context, rawURL string) (*youtube.VideoInfo, error) {
	s.infoCalls++
	if s.infoErr != nil {
		return nil, s.infoErr
	}
	return s.info, nil
}

func (s *stubExtractor) SubtitleSRT(_ context.Context, track youtube.Track) (string, error) {
	s.srtCalls = append(s.srtCalls, track)
	if s.srtErr != nil {
		return "", s.srtErr
	}
	return s.srt, nil
}

func stubInfo() *youtube.VideoInfo {
	return &youtube.VideoInfo{
		Metadata: youtube.Metadata{
			Title:   "A Video",
			Channel: "A Channel",
			URL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			VideoID: "dQw4w9WgXcQ",
		},
		Tracks: []youtube.Track{
			{Name: "English", URL: "https://example.test/tt?lang=en", LangCode: "en"},
		},
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGetVideoInfo(t *testing.T) {
	ext := &stubExtractor{info: stubInfo()}
	h := New(Options{Extractor: ext}).Handler()

	w := postJSON(t, h, "/api/get_video_info", gin.H{"video_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "A Video", meta["title"])
	assert.Equal(t, "dQw4w9WgXcQ", meta["video_id"])

	tracks := body["tracks"].([]any)
	require.Len(t, tracks, 1)
	track := tracks[0].(map[string]any)
	assert.Equal(t, "English", track["name"])
	assert.Equal(t, "https://example.test/tt?lang=en", track["url"])
	assert.Equal(t, "en", track["lang_code"])
	assert.Equal(t, false, track["is_asr"])
}

func TestGetVideoInfo_MissingURL(t *testing.T) {
	ext := &stubExtractor{info: stubInfo()}
	h := New(Options{Extractor: ext}).Handler()

	w := postJSON(t, h, "/api/get_video_info", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "video_url is required", decodeBody(t, w)["error"])
	assert.Zero(t, ext.infoCalls)
}

func TestGetVideoInfo_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid url", youtube.ErrInvalidURL, http.StatusBadRequest, youtube.ErrInvalidURL.Error()},
		{"no subtitles", youtube.ErrNoSubtitles, http.StatusNotFound,
			"No subtitles found for this video or failed to fetch video information"},
		{"unavailable", youtube.ErrUnavailable, http.StatusNotFound, youtube.ErrUnavailable.Error()},
		{"rate limited", youtube.ErrTooManyRequests, http.StatusTooManyRequests, youtube.ErrTooManyRequests.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := &stubExtractor{infoErr: tt.err}
			h := New(Options{Extractor: ext}).Handler()

			w := postJSON(t, h, "/api/get_video_info", gin.H{"video_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, decodeBody(t, w)["error"])
		})
	}
}

func TestGetSubtitles(t *testing.T) {
	ext := &stubExtractor{info: stubInfo(), srt: "1\n00:00:00,000 --> 00:00:01,000\nhello\n"}
	h := New(Options{Extractor: ext}).Handler()

	track := stubInfo().Tracks[0]
	w := postJSON(t, h, "/api/get_subtitles", gin.H{
		"video_url":  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"track_info": track,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	content := body["subtitle_content"].(string)
	// include_metadata is absent, so the metadata header is on.
	assert.Contains(t, content, "[video]")
	assert.Contains(t, content, `title = "A Video"`)
	assert.Contains(t, content, "hello")

	// The request's track descriptor is echoed back.
	echoed := body["track_info"].(map[string]any)
	assert.Equal(t, "English", echoed["name"])
	assert.Equal(t, track.URL, echoed["url"])

	meta := body["metadata"].(map[string]any)
	assert.Equal(t, "A Video", meta["title"])

	// The extractor got the descriptor from the request, verbatim.
	require.Len(t, ext.srtCalls, 1)
	assert.Equal(t, track, ext.srtCalls[0])
}

func TestGetSubtitles_WithoutMetadata(t *testing.T) {
	ext := &stubExtractor{info: stubInfo(), srt: "1\n00:00:00,000 --> 00:00:01,000\nhello\n"}
	h := New(Options{Extractor: ext}).Handler()

	w := postJSON(t, h, "/api/get_subtitles", gin.H{
		"video_url":        "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"track_info":       stubInfo().Tracks[0],
		"include_metadata": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "1\n00:00:00,000 --> 00:00:01,000\nhello", body["subtitle_content"])
	assert.Nil(t, body["metadata"])
	// No metadata means no video-info lookup.
	assert.Zero(t, ext.infoCalls)
}

func TestGetSubtitles_MissingFields(t *testing.T) {
	ext := &stubExtractor{info: stubInfo()}
	h := New(Options{Extractor: ext}).Handler()

	w := postJSON(t, h, "/api/get_subtitles", gin.H{"track_info": stubInfo().Tracks[0]})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "video_url is required", decodeBody(t, w)["error"])

	w = postJSON(t, h, "/api/get_subtitles", gin.H{"video_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "track_info is required", decodeBody(t, w)["error"])
}

func TestGetSubtitles_FetchFailure(t *testing.T) {
	ext := &stubExtractor{info: stubInfo(), srtErr: context.DeadlineExceeded}
	h := New(Options{Extractor: ext}).Handler()

	w := postJSON(t, h, "/api/get_subtitles", gin.H{
		"video_url":  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"track_info": stubInfo().Tracks[0],
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch or parse subtitle content", decodeBody(t, w)["error"])
}

func TestCORSHeaders(t *testing.T) {
	h := New(Options{Extractor: &stubExtractor{info: stubInfo()}}).Handler()

	w := postJSON(t, h, "/api/get_video_info", gin.H{"video_url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPreflight(t *testing.T) {
	h := New(Options{Extractor: &stubExtractor{}}).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/get_subtitles", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	h := New(Options{Extractor: &stubExtractor{}}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryEndpoints(t *testing.T) {
	db, err := OpenHistoryDB(t.TempDir() + "/history.db")
	require.NoError(t, err)
	defer db.Close()

	ext := &stubExtractor{info: stubInfo(), srt: "1\n00:00:00,000 --> 00:00:01,000\nhello\n"}
	h := New(Options{Extractor: ext, History: db}).Handler()

	w := postJSON(t, h, "/api/get_subtitles", gin.H{
		"video_url":  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"track_info": stubInfo().Tracks[0],
	})
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
	records := body["records"].([]any)
	require.Len(t, records, 1)
	entry := records[0].(map[string]any)
	assert.Equal(t, "dQw4w9WgXcQ", entry["video_id"])
	assert.Equal(t, "A Video", entry["title"])
	assert.Equal(t, "ok", entry["status"])

	req = httptest.NewRequest(http.MethodDelete, "/api/history", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeBody(t, rec)["deleted"])
}

func TestHistoryDisabled(t *testing.T) {
	h := New(Options{Extractor: &stubExtractor{}}).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
