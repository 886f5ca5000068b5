// Package subtitle converts YouTube timedtext documents to SRT.
package subtitle

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cue is one timed caption.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// timedTextDoc accepts both document shapes YouTube serves: the srv1
// format (<transcript><text start dur>) and TTML (<tt><body><div><p
// begin end>). Unused root names simply leave the other branch empty.
type timedTextDoc struct {
	Texts []xmlCue `xml:"text"`
	Body  struct {
		Divs []struct {
			Cues []xmlCue `xml:"p"`
		} `xml:"div"`
	} `xml:"body"`
}

type xmlCue struct {
	Start string `xml:"start,attr"`
	Begin string `xml:"begin,attr"`
	Dur   string `xml:"dur,attr"`
	End   string `xml:"end,attr"`
	Inner string `xml:",innerxml"`
}

var (
	xmlnsRe   = regexp.MustCompile(`xmlns="[^"]+"`)
	brRe      = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	blankRe   = regexp.MustCompile(`\n\s*\n`)
	clockRe   = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{1,2})(?:[.,](\d{1,3}))?$`)
	collapsed = regexp.MustCompile(`[ \t]+`)
)

// ParseTimedText decodes a timedtext XML document into cues. Cues
// without a usable start time, without any end/duration, or with empty
// text are dropped, matching what the subtitle pipeline always did.
func ParseTimedText(data []byte) ([]Cue, error) {
	// YouTube sometimes serves an empty body for a listed track; that
	// is an empty transcript, not a parse failure.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	// The default xmlns confuses nothing here but is stripped for
	// parity with the TTML handling this replaces.
	cleaned := xmlnsRe.ReplaceAll(data, nil)

	var doc timedTextDoc
	if err := xml.Unmarshal(cleaned, &doc); err != nil {
		return nil, fmt.Errorf("invalid subtitle XML: %w", err)
	}

	raw := doc.Texts
	if len(raw) == 0 {
		for _, div := range doc.Body.Divs {
			raw = append(raw, div.Cues...)
		}
	}

	var cues []Cue
	for _, c := range raw {
		startStr := c.Start
		if startStr == "" {
			startStr = c.Begin
		}
		if startStr == "" {
			continue
		}

		start, ok := parseTimestamp(startStr)
		if !ok {
			continue
		}

		var end time.Duration
		switch {
		case c.Dur != "":
			dur, ok := parseTimestamp(c.Dur)
			if !ok {
				continue
			}
			end = start + dur
		case c.End != "":
			e, ok := parseTimestamp(c.End)
			if !ok {
				continue
			}
			end = e
		default:
			continue
		}

		text := cleanCueText(c.Inner)
		if text == "" {
			continue
		}

		cues = append(cues, Cue{Start: start, End: end, Text: text})
	}

	return cues, nil
}

// parseTimestamp accepts fractional seconds ("12.345", the srv1 form)
// or TTML clock time ("00:00:12.345").
func parseTimestamp(s string) (time.Duration, bool) {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			f = 0
		}
		return time.Duration(f * float64(time.Second)), true
	}

	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	millis := 0
	if m[4] != "" {
		// Right-pad so ".5" means 500ms.
		frac := m[4] + strings.Repeat("0", 3-len(m[4]))
		millis, _ = strconv.Atoi(frac)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, true
}

// cleanCueText strips markup from a cue body: <br> becomes a newline,
// remaining tags are removed, entities are unescaped, and whitespace
// runs are collapsed.
func cleanCueText(inner string) string {
	text := brRe.ReplaceAllString(inner, "\n")
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = blankRe.ReplaceAllString(text, "\n")
	text = collapsed.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ToSRT renders cues as a SubRip document: 1-indexed entries with
// HH:MM:SS,mmm --> HH:MM:SS,mmm time ranges.
func ToSRT(cues []Cue) string {
	var b strings.Builder

	for i, cue := range cues {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		b.WriteString(fmt.Sprintf("%s --> %s\n", FormatTimestamp(cue.Start), FormatTimestamp(cue.End)))
		b.WriteString(cue.Text)
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatTimestamp formats a duration as an SRT timestamp.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}
