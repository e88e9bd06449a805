// Package journal lists completed tasks from the persistent journal,
// across every session the learner has had.
package journal

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

const pageSize = 50

type loadedMsg struct {
	Events []store.TaskEvent
	Err    error
}

// JournalScreen shows one line per completion; enter expands a line.
type JournalScreen struct {
	sess     *session.Session
	events   []store.TaskEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*JournalScreen)(nil)
var _ screen.KeyHintProvider = (*JournalScreen)(nil)

func New(sess *session.Session) *JournalScreen {
	return &JournalScreen{
		sess:     sess,
		expanded: make(map[int]bool),
	}
}

func (s *JournalScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.sess.RecentTasks(context.Background(), pageSize)
		return loadedMsg{Events: events, Err: err}
	}
}

func (s *JournalScreen) Title() string {
	return "Journal"
}

func (s *JournalScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *JournalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.events = msg.Events
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *JournalScreen) View(width, height int) string {
	notice := func(style lipgloss.Style, text string) string {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render("\n\n" + style.Render(text))
	}
	switch {
	case s.errMsg != "":
		return notice(theme.Failure, "Error: "+s.errMsg)
	case !s.loaded:
		return notice(theme.Subtitle, "Loading journal...")
	case len(s.events) == 0:
		return notice(theme.Hint, "Nothing logged yet. Complete a task to start your journal.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, ev := range s.events {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-40s %4.1f h  %s",
			prefix, ev.Timestamp.Local().Format("Jan 02, 2006"), truncate(ev.Title, 40), ev.ActualHours,
			efficiencyStyle(ev.Efficiency).Render(fmt.Sprintf("%3.0f%%", ev.Efficiency)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			details := []string{
				fmt.Sprintf("%s · %s · difficulty %d", ev.Category, ev.Type, ev.Difficulty),
				fmt.Sprintf("estimated %.1f h, spent %.1f h", ev.EstimatedHours, ev.ActualHours),
			}
			if ev.Grade != "" || ev.Quality != "" {
				details = append(details, strings.TrimSpace(fmt.Sprintf("grade %s  quality %s", ev.Grade, ev.Quality)))
			}
			for _, d := range details {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Subtitle.Render("      "+d)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func efficiencyStyle(eff float64) lipgloss.Style {
	switch {
	case eff >= progress.NeutralEfficiency:
		return theme.Done
	case eff >= progress.LowEfficiencyThreshold:
		return theme.Body
	default:
		return theme.Warning
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
