// Package session owns the client-side state of one subtitle
// extraction session: the loaded video, its track list, the selected
// track, and the fetched subtitle content. It is an explicit state
// machine; every user gesture or network completion is applied as a
// discrete transition, so it can be tested without any rendering
// surface. A Session is single-owner and not safe for concurrent use;
// drive it from one event loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

// State is the session's display state.
type State int

const (
	// StateIdle: no video loaded.
	StateIdle State = iota
	// StateTracksShown: metadata and track list available, no result.
	StateTracksShown
	// StateResultShown: subtitle content loaded for the selected track.
	StateResultShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTracksShown:
		return "tracks"
	case StateResultShown:
		return "result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrInvalidURL: the input is not a well-formed YouTube video URL.
	// Reported before any network call; no state is mutated.
	ErrInvalidURL = errors.New("not a valid YouTube video URL")
	// ErrNoContent: an export action was invoked with nothing loaded.
	ErrNoContent = errors.New("no subtitle content loaded")
	// ErrBusy: a video-info fetch is already outstanding.
	ErrBusy = errors.New("a fetch is already in progress")
	// ErrNoVideo: a track was selected before any video was loaded.
	ErrNoVideo = errors.New("no video loaded")
)

// Backend is the pair of operations the session needs: look up a
// video's tracks, and fetch one track's rendered subtitle text.
type Backend interface {
	VideoInfo(ctx context.Context, videoURL string) (*youtube.VideoInfo, error)
	Subtitles(ctx context.Context, videoURL string, track youtube.Track, includeMetadata bool) (string, error)
}

// Session holds all mutable per-session state.
type Session struct {
	backend Backend

	state    State
	busy     bool
	videoURL string
	video    *youtube.VideoInfo
	selected int
	content  string

	// seq orders subtitle fetches; completions carrying an older seq
	// are dropped so a slow response can never overwrite the result of
	// a later selection.
	seq uint64
}

// New creates an idle session over the given backend.
func New(backend Backend) *Session {
	return &Session{backend: backend, selected: -1}
}

func (s *Session) State() State              { return s.state }
func (s *Session) Busy() bool                { return s.busy }
func (s *Session) VideoURL() string          { return s.videoURL }
func (s *Session) Video() *youtube.VideoInfo { return s.video }
func (s *Session) Content() string           { return s.content }

// Tracks returns the loaded track list in server order.
func (s *Session) Tracks() []youtube.Track {
	if s.video == nil {
		return nil
	}
	return s.video.Tracks
}

// SelectedTrack returns the currently selected track, if any.
func (s *Session) SelectedTrack() (youtube.Track, bool) {
	if s.video == nil || s.selected < 0 || s.selected >= len(s.video.Tracks) {
		return youtube.Track{}, false
	}
	return s.video.Tracks[s.selected], true
}

// Reset discards all loaded state and returns the session to idle.
func (s *Session) Reset() {
	s.state = StateIdle
	s.videoURL = ""
	s.video = nil
	s.selected = -1
	s.content = ""
	// Invalidate any in-flight subtitle fetch from the old video.
	s.seq++
}

// BeginLoadVideo validates rawURL and discards all prior state so old
// results cannot remain visible alongside the new fetch. It marks the
// session busy and returns the trimmed URL to fetch. Validation
// failures report ErrInvalidURL without touching existing state.
func (s *Session) BeginLoadVideo(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !youtube.IsValidVideoURL(rawURL) {
		return "", ErrInvalidURL
	}
	if s.busy {
		return "", ErrBusy
	}

	s.Reset()
	s.busy = true
	return rawURL, nil
}

// CompleteLoadVideo applies the outcome of a video-info fetch started
// with BeginLoadVideo. Fetch failures leave the session idle.
func (s *Session) CompleteLoadVideo(rawURL string, info *youtube.VideoInfo, err error) error {
	s.busy = false
	if err != nil {
		return err
	}

	s.videoURL = rawURL
	s.video = info
	s.state = StateTracksShown
	return nil
}

// LoadVideo is the synchronous form of BeginLoadVideo +
// CompleteLoadVideo.
func (s *Session) LoadVideo(ctx context.Context, rawURL string) error {
	rawURL, err := s.BeginLoadVideo(rawURL)
	if err != nil {
		return err
	}

	info, ferr := s.backend.VideoInfo(ctx, rawURL)
	return s.CompleteLoadVideo(rawURL, info, ferr)
}

// FetchToken identifies one subtitle fetch started with
// BeginTrackFetch.
type FetchToken struct {
	seq   uint64
	index int
}

// BeginTrackFetch records a track selection and hands back the token
// and descriptor for the fetch it implies. Selection and fetch are one
// gesture; callers run the network call (usually on a goroutine) and
// apply the outcome with CompleteTrackFetch.
func (s *Session) BeginTrackFetch(i int) (FetchToken, youtube.Track, error) {
	if s.video == nil {
		return FetchToken{}, youtube.Track{}, ErrNoVideo
	}
	if i < 0 || i >= len(s.video.Tracks) {
		return FetchToken{}, youtube.Track{}, fmt.Errorf("track index %d out of range", i)
	}

	s.selected = i
	s.seq++
	return FetchToken{seq: s.seq, index: i}, s.video.Tracks[i], nil
}

// CompleteTrackFetch applies a finished subtitle fetch. Stale
// completions, ones superseded by a newer selection or by a video
// reload, are dropped; applied reports whether this one took effect.
// A failed fetch keeps the previous display state.
func (s *Session) CompleteTrackFetch(tok FetchToken, content string, err error) (applied bool, rerr error) {
	if tok.seq != s.seq {
		return false, nil
	}
	if err != nil {
		return true, err
	}

	s.content = content
	s.state = StateResultShown
	return true, nil
}

// SelectTrack is the synchronous form of BeginTrackFetch +
// CompleteTrackFetch.
func (s *Session) SelectTrack(ctx context.Context, i int, includeMetadata bool) error {
	tok, track, err := s.BeginTrackFetch(i)
	if err != nil {
		return err
	}

	content, err := s.backend.Subtitles(ctx, s.videoURL, track, includeMetadata)
	_, err = s.CompleteTrackFetch(tok, content, err)
	return err
}
