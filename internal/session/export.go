package session

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atotto/clipboard"
)

const defaultFilename = "untitled"

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]+`)
	whitespaceRuns       = regexp.MustCompile(`\s+`)
)

// SanitizeFilename makes a string safe to use as a filename on common
// filesystems: runs of <>:"/\|?* become a single underscore, runs of
// whitespace collapse to one space, the result is trimmed and capped
// at 200 characters. Empty input yields "untitled".
func SanitizeFilename(name string) string {
	if name == "" {
		return defaultFilename
	}

	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = whitespaceRuns.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	if runes := []rune(name); len(runes) > 200 {
		name = string(runes[:200])
	}
	if name == "" {
		return defaultFilename
	}
	return name
}

// SuggestedFilename builds the download filename from the video title
// and the selected track's display name and language code.
func (s *Session) SuggestedFilename() string {
	title := ""
	if s.video != nil {
		title = s.video.Metadata.Title
	}

	track, ok := s.SelectedTrack()
	if !ok {
		return SanitizeFilename(title) + ".srt"
	}
	return SanitizeFilename(fmt.Sprintf("%s [%s.%s]", title, track.Name, track.LangCode)) + ".srt"
}

// CopyToClipboard writes the current subtitle content to the system
// clipboard. Returns ErrNoContent when nothing is loaded.
func (s *Session) CopyToClipboard() error {
	if s.content == "" {
		return ErrNoContent
	}

	if err := clipboard.WriteAll(s.content); err != nil {
		return fmt.Errorf("clipboard access failed: %w", err)
	}
	return nil
}

// SaveToFile writes the current subtitle content into dir using the
// suggested filename and returns the written path. Returns
// ErrNoContent when nothing is loaded.
func (s *Session) SaveToFile(dir string) (string, error) {
	if s.content == "" {
		return "", ErrNoContent
	}

	path := filepath.Join(dir, s.SuggestedFilename())
	if err := os.WriteFile(path, []byte(s.content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
