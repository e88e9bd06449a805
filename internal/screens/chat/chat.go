// Package chat is the assistant conversation screen.
package chat

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/assistant"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// historyLimit is how many earlier turns are shown when the screen opens.
const historyLimit = 20

type line struct {
	user bool
	text string
	at   time.Time
}

type historyMsg struct {
	Lines []line
	Err   error
}

type replyMsg struct {
	Reply assistant.Reply
	Err   error
}

// ChatScreen shows the transcript above a single-line prompt.
type ChatScreen struct {
	sess        *session.Session
	lines       []line
	suggestions []string
	nextSuggest int
	input       components.TextInput
	viewport    viewport.Model
	waiting     bool
	errMsg      string
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the screen; earlier turns load in Init.
func New(sess *session.Session) *ChatScreen {
	return &ChatScreen{
		sess:     sess,
		input:    components.NewTextInput("Ask about your tasks, progress or plan...", false, 500),
		viewport: viewport.New(),
		suggestions: []string{
			"Show my progress",
			"What are today's tasks?",
			"Help me plan my study time",
		},
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), func() tea.Msg {
		events, err := s.sess.RecentChat(context.Background(), historyLimit)
		if err != nil {
			return historyMsg{Err: err}
		}
		var lines []line
		for _, ev := range events {
			lines = append(lines,
				line{user: true, text: ev.UserText, at: ev.Timestamp},
				line{text: ev.Response, at: ev.Timestamp},
			)
		}
		return historyMsg{Lines: lines}
	})
}

func (s *ChatScreen) Title() string {
	return "Assistant"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Tab", Description: "Suggestion"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.lines = append(msg.Lines, s.lines...)
		return s, nil

	case replyMsg:
		s.waiting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		if msg.Reply.Response != "" {
			s.lines = append(s.lines, line{text: msg.Reply.Response, at: time.Now()})
			s.suggestions = msg.Reply.Suggestions
			s.nextSuggest = 0
		}
		s.viewport.GotoBottom()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "tab":
			if len(s.suggestions) > 0 {
				s.input.Model.SetValue(s.suggestions[s.nextSuggest%len(s.suggestions)])
				s.input.Model.CursorEnd()
				s.nextSuggest++
			}
			return s, nil
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			s.viewport, cmd = s.viewport.Update(msg)
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.waiting {
		return nil
	}
	s.input.Reset()
	s.errMsg = ""
	s.waiting = true
	s.lines = append(s.lines, line{user: true, text: text, at: time.Now()})
	s.viewport.GotoBottom()
	return func() tea.Msg {
		reply, err := s.sess.Chat(context.Background(), text)
		return replyMsg{Reply: reply, Err: err}
	}
}

func (s *ChatScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 100)

	var footer strings.Builder
	if len(s.suggestions) > 0 {
		footer.WriteString(theme.Hint.Render("Try: " + strings.Join(s.suggestions, "  ·  ")))
		footer.WriteString("\n")
	}
	if s.errMsg != "" {
		footer.WriteString(theme.Failure.Render(s.errMsg) + "\n")
	}
	footer.WriteString(theme.FocusedCard.Width(cw).Render(s.input.View()))
	bottom := footer.String()

	s.viewport.SetWidth(cw)
	s.viewport.SetHeight(max(3, height-lipgloss.Height(bottom)-1))
	atBottom := s.viewport.AtBottom()
	s.viewport.SetContent(s.renderTranscript(cw))
	if atBottom {
		s.viewport.GotoBottom()
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		s.viewport.View()+"\n"+bottom)
}

func (s *ChatScreen) renderTranscript(cw int) string {
	if len(s.lines) == 0 {
		return theme.Hint.Render("Say hello to get started.")
	}
	userStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 2).PaddingLeft(2)

	var b strings.Builder
	for _, l := range s.lines {
		who := botStyle.Render("Pathwise")
		if l.user {
			who = userStyle.Render("You")
		}
		b.WriteString(who + theme.Subtitle.Render("  "+l.at.Local().Format("15:04")) + "\n")
		b.WriteString(body.Render(l.text) + "\n\n")
	}
	if s.waiting {
		b.WriteString(theme.Hint.Render("Pathwise is typing..."))
	}
	return b.String()
}
