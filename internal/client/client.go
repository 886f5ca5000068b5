// Package client talks to the subtitle API endpoints. Each call is a
// single POST: no retries, no backoff, and no client-side timeout
// beyond what the caller's context imposes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

const fallbackErrorMessage = "The server returned an error without details"

// APIError is a non-success response from the API. Message is the
// server's error string, surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// Client issues requests against one API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL (e.g.
// "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

type videoInfoResponse struct {
	Metadata youtube.Metadata `json:"metadata"`
	Tracks   []youtube.Track  `json:"tracks"`
}

type subtitlesResponse struct {
	SubtitleContent string `json:"subtitle_content"`
}

// VideoInfo requests metadata and available subtitle tracks for a
// video URL.
func (c *Client) VideoInfo(ctx context.Context, videoURL string) (*youtube.VideoInfo, error) {
	var resp videoInfoResponse
	err := c.post(ctx, "/api/get_video_info", map[string]any{
		"video_url": videoURL,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &youtube.VideoInfo{Metadata: resp.Metadata, Tracks: resp.Tracks}, nil
}

// Subtitles requests the rendered subtitle text for one track. The
// track descriptor is sent back exactly as it was received from
// VideoInfo; its URL field is an opaque token owned by the server.
func (c *Client) Subtitles(ctx context.Context, videoURL string, track youtube.Track, includeMetadata bool) (string, error) {
	var resp subtitlesResponse
	err := c.post(ctx, "/api/get_subtitles", map[string]any{
		"video_url":        videoURL,
		"track_info":       track,
		"include_metadata": includeMetadata,
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.SubtitleContent, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: fallbackErrorMessage}

		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
