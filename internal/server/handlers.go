package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

type videoInfoRequest struct {
	VideoURL string `json:"video_url"`
}

type subtitlesRequest struct {
	VideoURL  string         `json:"video_url"`
	TrackInfo *youtube.Track `json:"track_info"`
	// Pointer so an absent field defaults to true.
	IncludeMetadata *bool `json:"include_metadata"`
}

func errorResponse(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// statusForError maps extraction failures onto the status codes the
// frontend relies on.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, youtube.ErrInvalidURL):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, youtube.ErrNoSubtitles):
		return http.StatusNotFound, "No subtitles found for this video or failed to fetch video information"
	case errors.Is(err, youtube.ErrUnavailable):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, youtube.ErrTooManyRequests):
		return http.StatusTooManyRequests, err.Error()
	default:
		return http.StatusInternalServerError, "Internal server error: " + err.Error()
	}
}

func (s *Server) handleGetVideoInfo(c *gin.Context) {
	var req videoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoURL == "" {
		errorResponse(c, http.StatusBadRequest, "video_url is required")
		return
	}

	info, err := s.extractor.VideoInfo(c.Request.Context(), req.VideoURL)
	if err != nil {
		status, msg := statusForError(err)
		errorResponse(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metadata": info.Metadata,
		"tracks":   info.Tracks,
	})
}

func (s *Server) handleGetSubtitles(c *gin.Context) {
	var req subtitlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.VideoURL == "" {
		errorResponse(c, http.StatusBadRequest, "video_url is required")
		return
	}
	if req.TrackInfo == nil || req.TrackInfo.URL == "" {
		errorResponse(c, http.StatusBadRequest, "track_info is required")
		return
	}

	includeMetadata := true
	if req.IncludeMetadata != nil {
		includeMetadata = *req.IncludeMetadata
	}

	var metadata youtube.Metadata
	if includeMetadata {
		info, err := s.extractor.VideoInfo(c.Request.Context(), req.VideoURL)
		if err != nil {
			status, msg := statusForError(err)
			s.recordFetch(req, "", "failed", msg)
			errorResponse(c, status, msg)
			return
		}
		metadata = info.Metadata
	}

	srt, err := s.extractor.SubtitleSRT(c.Request.Context(), *req.TrackInfo)
	if err != nil {
		msg := "Failed to fetch or parse subtitle content"
		s.recordFetch(req, metadata.Title, "failed", msg)
		errorResponse(c, http.StatusInternalServerError, msg)
		return
	}

	s.recordFetch(req, metadata.Title, "ok", "")

	resp := gin.H{
		"subtitle_content": youtube.ComposeSubtitleContent(metadata, srt, includeMetadata),
		"track_info":       req.TrackInfo,
	}
	if includeMetadata {
		resp["metadata"] = metadata
	} else {
		resp["metadata"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

// recordFetch writes one history row; history failures never affect
// the response.
func (s *Server) recordFetch(req subtitlesRequest, title, status, errMsg string) {
	if s.history == nil {
		return
	}

	rec := FetchRecord{
		ID:      uuid.NewString(),
		VideoID: youtube.ExtractVideoID(req.VideoURL),
		Title:   title,
		Status:  status,
		Error:   errMsg,
	}
	if req.TrackInfo != nil {
		rec.TrackName = req.TrackInfo.Name
		rec.LangCode = req.TrackInfo.LangCode
	}
	_ = s.history.RecordFetch(rec)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	records, total, err := s.history.Recent(limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	ok, failed, err := s.history.Stats()
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   total,
		"stats":   gin.H{"ok": ok, "failed": failed},
	})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	deleted, err := s.history.Clear()
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
