// Package tasks shows the day's tasks and records completions.
package tasks

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/taskgen"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

type loadedMsg struct {
	Tasks    []taskgen.Task
	Finished bool
	Err      error
}

type completedMsg struct {
	Task  taskgen.Task
	Entry progress.Entry
	Tasks []taskgen.Task
	Err   error
}

// TasksScreen lists today's tasks with details for the one under the cursor.
type TasksScreen struct {
	sess     *session.Session
	tasks    []taskgen.Task
	selected int
	logging  bool // hours prompt is open
	input    components.TextInput
	loaded   bool
	pending  bool // a session command is in flight
	flash    string
	errMsg   string
}

var _ screen.Screen = (*TasksScreen)(nil)
var _ screen.KeyHintProvider = (*TasksScreen)(nil)

// New creates the screen; tasks load in Init.
func New(sess *session.Session) *TasksScreen {
	return &TasksScreen{
		sess:  sess,
		input: components.NewTextInput("hours spent", true, 5),
	}
}

func (s *TasksScreen) Init() tea.Cmd {
	s.pending = true
	return func() tea.Msg {
		tasks, err := s.sess.Today(context.Background())
		return loadedMsg{Tasks: tasks, Err: err}
	}
}

func (s *TasksScreen) Title() string {
	return "Today's Tasks"
}

func (s *TasksScreen) KeyHints() []layout.KeyHint {
	if s.logging {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Tab", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Log time"},
		{Key: "N", Description: "Next day"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TasksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.tasks = msg.Tasks
		s.selected = s.firstPending()
		if msg.Finished {
			s.flash = "You've reached the end of your roadmap. Congratulations!"
		}
		return s, nil

	case completedMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.tasks = msg.Tasks
		s.flash = fmt.Sprintf("Logged %.1f h on %q: %.0f%% efficiency.", msg.Task.ActualTime, msg.Task.Title, msg.Entry.Efficiency)
		s.selected = s.firstPending()
		return s, nil

	case tea.KeyMsg:
		if s.logging {
			return s.updateLogging(msg)
		}
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.tasks)-1 {
				s.selected++
			}
		case "enter":
			if s.pending {
				return s, nil
			}
			if t, ok := s.current(); ok && t.Status != taskgen.StatusCompleted {
				s.logging = true
				s.input.Reset()
				s.flash = ""
				return s, s.input.Init()
			}
		case "n":
			if s.pending {
				return s, nil
			}
			s.flash = ""
			return s, s.nextDay()
		}
		return s, nil
	}

	if s.logging {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TasksScreen) updateLogging(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		s.logging = false
		return s, nil
	case "enter":
		hours, err := s.input.FloatValue()
		if err != nil || hours <= 0 {
			s.input.Submit(false)
			return s, nil
		}
		s.logging = false
		s.pending = true
		t, _ := s.current()
		return s, func() tea.Msg {
			task, entry, err := s.sess.Complete(context.Background(), t.ID, hours, "", "", "")
			return completedMsg{Task: task, Entry: entry, Tasks: s.sess.Status().Tasks, Err: err}
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TasksScreen) nextDay() tea.Cmd {
	s.pending = true
	return func() tea.Msg {
		tasks, done, err := s.sess.NextDay(context.Background())
		return loadedMsg{Tasks: tasks, Finished: done, Err: err}
	}
}

func (s *TasksScreen) current() (taskgen.Task, bool) {
	if s.selected < 0 || s.selected >= len(s.tasks) {
		return taskgen.Task{}, false
	}
	return s.tasks[s.selected], true
}

func (s *TasksScreen) firstPending() int {
	for i, t := range s.tasks {
		if t.Status != taskgen.StatusCompleted {
			return i
		}
	}
	return 0
}

func (s *TasksScreen) View(width, height int) string {
	center := func(text string) string {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
	}
	switch {
	case s.errMsg != "":
		return center(theme.Failure.Render(s.errMsg))
	case !s.loaded:
		return center(theme.Hint.Render("Preparing today's tasks..."))
	case len(s.tasks) == 0:
		return center(theme.Hint.Render("No tasks for this phase. Press N to move on."))
	}

	cw := components.ContentWidth(width, 100)
	sections := []string{
		components.Panel(s.heading(), s.renderList(cw-4), cw, !s.logging),
		s.renderDetail(cw),
	}
	if s.flash != "" {
		sections = append(sections, theme.Done.Render(s.flash))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func (s *TasksScreen) heading() string {
	t := s.tasks[0]
	done := 0
	for _, task := range s.tasks {
		if task.Status == taskgen.StatusCompleted {
			done++
		}
	}
	return fmt.Sprintf("Phase %d · Day %d   %d of %d done", t.Phase, t.Day, done, len(s.tasks))
}

func (s *TasksScreen) renderList(w int) string {
	var b strings.Builder
	for i, t := range s.tasks {
		check := "[ ]"
		style := theme.Unselected
		if t.Status == taskgen.StatusCompleted {
			check = "[x]"
			style = theme.Done
		}
		if i == s.selected {
			style = theme.Selected
		}
		cursor := "  "
		if i == s.selected {
			cursor = "▸ "
		}
		prio := theme.Priority[string(t.Priority)].Render(fmt.Sprintf("%-6s", t.Priority))
		title := fmt.Sprintf("%s%s %-8s", cursor, check, t.Type)
		est := fmt.Sprintf("%4.1fh", t.EstimatedTime)
		name := t.Title
		if room := w - lipgloss.Width(title) - 16; room > 3 && lipgloss.Width(name) > room {
			name = string([]rune(name)[:room-1]) + "…"
		}
		b.WriteString(style.Render(title) + " " + prio + " " + theme.Subtitle.Render(est) + "  " + style.Render(name) + "\n")
	}
	return b.String()
}

func (s *TasksScreen) renderDetail(cw int) string {
	t, ok := s.current()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.Body.Render(t.Description) + "\n\n")
	b.WriteString(theme.Label.Render("Category") + theme.Body.Render(t.Category) + "\n")
	b.WriteString(theme.Label.Render("Difficulty") + theme.Body.Render(difficultyDots(t.Difficulty)) + "\n")
	b.WriteString(theme.Label.Render("Estimated") + theme.Body.Render(fmt.Sprintf("%.1f h", t.EstimatedTime)) + "\n")
	if len(t.Topics) > 0 {
		b.WriteString(theme.Label.Render("Topics") + theme.Body.Render(strings.Join(t.Topics, ", ")) + "\n")
	}
	for _, r := range t.Resources {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %s: %s", r.Title, r.URL)) + "\n")
	}
	if t.Status == taskgen.StatusCompleted {
		b.WriteString("\n" + theme.Done.Render(fmt.Sprintf("Completed in %.1f h", t.ActualTime)))
	}
	if s.logging {
		b.WriteString("\n" + theme.Body.Render("How many hours did it take?") + "\n" + s.input.View())
	}
	return components.Panel(t.Title, b.String(), cw, s.logging)
}

func difficultyDots(d int) string {
	d = max(0, min(5, d))
	return strings.Repeat("●", d) + strings.Repeat("○", 5-d)
}
