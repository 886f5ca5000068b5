package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/InvictusNavarchus/ytsubsdown/internal/session"
	"github.com/InvictusNavarchus/ytsubsdown/internal/youtube"
)

var (
	tuiTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	tuiDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	tuiDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	tuiErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	tuiCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

const (
	errorDismissAfter = 5 * time.Second
	toastDismissAfter = 2 * time.Second
	previewLines      = 12
)

type infoLoadedMsg struct {
	url  string
	info *youtube.VideoInfo
	err  error
}

type subtitleLoadedMsg struct {
	tok     session.FetchToken
	content string
	err     error
}

type errExpiredMsg struct{ id int }

type toastExpiredMsg struct{ id int }

// tuiModel drives one interactive session. All session mutation
// happens inside Update; network calls run as commands and come back
// as messages, so a late subtitle response for a superseded selection
// is dropped by the session's sequence check.
type tuiModel struct {
	sess    *session.Session
	backend session.Backend
	spinner spinner.Model

	url             string
	includeMetadata bool
	outputDir       string

	cursor   int
	fetching bool

	errMsg  string
	errID   int
	toast   string
	toastID int

	loadErr  error
	quitting bool
}

func newTUIModel(backend session.Backend, url string, includeMetadata bool, outputDir string) tuiModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return tuiModel{
		sess:            session.New(backend),
		backend:         backend,
		spinner:         s,
		url:             url,
		includeMetadata: includeMetadata,
		outputDir:       outputDir,
	}
}

func (m tuiModel) loadVideoCmd(url string) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		info, err := backend.VideoInfo(context.Background(), url)
		return infoLoadedMsg{url: url, info: info, err: err}
	}
}

func (m tuiModel) fetchSubtitleCmd(tok session.FetchToken, track youtube.Track) tea.Cmd {
	backend := m.backend
	videoURL := m.sess.VideoURL()
	include := m.includeMetadata
	return func() tea.Msg {
		content, err := backend.Subtitles(context.Background(), videoURL, track, include)
		return subtitleLoadedMsg{tok: tok, content: content, err: err}
	}
}

func (m *tuiModel) showError(msg string) tea.Cmd {
	m.errID++
	m.errMsg = msg
	id := m.errID
	return tea.Tick(errorDismissAfter, func(time.Time) tea.Msg {
		return errExpiredMsg{id: id}
	})
}

func (m *tuiModel) showToast(msg string) tea.Cmd {
	m.toastID++
	m.toast = msg
	id := m.toastID
	return tea.Tick(toastDismissAfter, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (m tuiModel) Init() tea.Cmd {
	url, err := m.sess.BeginLoadVideo(m.url)
	if err != nil {
		// Validated before the program starts, should not happen.
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.loadVideoCmd(url))
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case infoLoadedMsg:
		if err := m.sess.CompleteLoadVideo(msg.url, msg.info, msg.err); err != nil {
			m.loadErr = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case subtitleLoadedMsg:
		applied, err := m.sess.CompleteTrackFetch(msg.tok, msg.content, msg.err)
		if !applied {
			// Superseded by a newer selection; a fresh completion is
			// still on its way.
			return m, nil
		}
		m.fetching = false
		if err != nil {
			return m, m.showError(err.Error())
		}
		return m, nil

	case errExpiredMsg:
		if msg.id == m.errID {
			m.errMsg = ""
		}
		return m, nil

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.sess.Tracks())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.sess.State() == session.StateIdle {
			return m, nil
		}
		tok, track, err := m.sess.BeginTrackFetch(m.cursor)
		if err != nil {
			return m, m.showError(err.Error())
		}
		m.fetching = true
		return m, tea.Batch(m.spinner.Tick, m.fetchSubtitleCmd(tok, track))

	case "m":
		m.includeMetadata = !m.includeMetadata
		return m, nil

	case "c":
		if err := m.sess.CopyToClipboard(); err != nil {
			return m, m.showError(err.Error())
		}
		return m, m.showToast("Copied to clipboard")

	case "s":
		path, err := m.sess.SaveToFile(m.outputDir)
		if err != nil {
			return m, m.showError(err.Error())
		}
		return m, m.showToast("Saved " + path)
	}

	return m, nil
}

func (m tuiModel) View() string {
	if m.quitting && m.loadErr != nil {
		return fmt.Sprintf("\n  %s %v\n\n", tuiErrStyle.Render("✗"), m.loadErr)
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	if m.sess.State() == session.StateIdle {
		fmt.Fprintf(&b, "  %s Fetching video info: %s\n\n", m.spinner.View(), tuiDimStyle.Render(m.url))
		return b.String()
	}

	video := m.sess.Video()
	fmt.Fprintf(&b, "  %s\n  %s\n\n",
		tuiTitleStyle.Render(video.Metadata.Title),
		tuiDimStyle.Render(video.Metadata.Channel),
	)

	selected, hasSelected := m.sess.SelectedTrack()
	for i, track := range m.sess.Tracks() {
		cursor := "  "
		if i == m.cursor {
			cursor = tuiCursorStyle.Render("> ")
		}

		label := fmt.Sprintf("%s (%s)", track.Name, track.LangCode)
		if track.IsASR {
			label += tuiDimStyle.Render(" auto-generated")
		}
		if hasSelected && track == selected {
			label += " " + tuiDoneStyle.Render("✓")
		}
		fmt.Fprintf(&b, "  %s%s\n", cursor, label)
	}

	if m.fetching {
		fmt.Fprintf(&b, "\n  %s Fetching subtitle...\n", m.spinner.View())
	}

	if m.sess.State() == session.StateResultShown && !m.fetching {
		b.WriteString("\n")
		lines := strings.Split(m.sess.Content(), "\n")
		shown := lines
		if len(shown) > previewLines {
			shown = shown[:previewLines]
		}
		for _, line := range shown {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		if len(lines) > previewLines {
			fmt.Fprintf(&b, "  %s\n", tuiDimStyle.Render(fmt.Sprintf("... (%d lines total)", len(lines))))
		}
	}

	meta := "off"
	if m.includeMetadata {
		meta = "on"
	}
	fmt.Fprintf(&b, "\n  %s\n",
		tuiDimStyle.Render(fmt.Sprintf("enter: fetch track  c: copy  s: save  m: metadata (%s)  q: quit", meta)))

	if m.errMsg != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", tuiErrStyle.Render("✗"), m.errMsg)
	}
	if m.toast != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", tuiDoneStyle.Render("✓"), m.toast)
	}

	return b.String()
}

// runInteractive runs the TUI session for one video URL.
func runInteractive(backend session.Backend, url string, includeMetadata bool, outputDir string) error {
	p := tea.NewProgram(newTUIModel(backend, url, includeMetadata, outputDir))
	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(tuiModel); ok && m.loadErr != nil {
		return m.loadErr
	}
	return nil
}
