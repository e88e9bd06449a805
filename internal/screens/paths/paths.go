// Package paths lets the learner browse the catalog and start a roadmap.
package paths

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeMonths
	modeStarted
)

type startedMsg struct {
	Roadmap *roadmap.Roadmap
	Err     error
}

// PathsScreen lists learning paths with a detail panel for the one under
// the cursor.
type PathsScreen struct {
	sess    *session.Session
	paths   []catalog.LearningPath
	menu    components.Menu
	input   components.TextInput
	mode    mode
	roadmap *roadmap.Roadmap
	pending bool // StartRoadmap is in flight
	errMsg  string
}

var _ screen.Screen = (*PathsScreen)(nil)
var _ screen.KeyHintProvider = (*PathsScreen)(nil)

// New creates the screen. defaultMonths prefills the timeframe prompt;
// zero or less falls back to each path's minimum duration.
func New(sess *session.Session, defaultMonths float64) *PathsScreen {
	s := &PathsScreen{
		sess:  sess,
		paths: catalog.AllPaths(),
		input: components.NewTextInput("months", true, 5),
	}

	items := make([]components.MenuItem, len(s.paths))
	for i, p := range s.paths {
		items[i] = components.MenuItem{Label: p.Title, Action: func() tea.Cmd {
			months := defaultMonths
			if months <= 0 {
				months = float64(p.Duration.Min)
			}
			s.input.Reset()
			s.input.Model.SetValue(formatMonths(months))
			s.errMsg = ""
			s.mode = modeMonths
			return s.input.Init()
		}}
	}
	s.menu = components.NewMenu(items)

	if r := sess.Status().Roadmap; r != nil {
		for i, p := range s.paths {
			if p.ID == r.ID {
				s.menu.Selected = i
			}
		}
	}
	return s
}

func formatMonths(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}

func (s *PathsScreen) Init() tea.Cmd {
	return nil
}

func (s *PathsScreen) Title() string {
	return "Learning Paths"
}

func (s *PathsScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeMonths:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start roadmap"},
			{Key: "Tab", Description: "Back to list"},
			{Key: "Esc", Description: "Cancel"},
		}
	case modeStarted:
		return []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Enter", Description: "Choose"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PathsScreen) selected() catalog.LearningPath {
	return s.paths[s.menu.Selected]
}

func (s *PathsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		s.pending = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			s.mode = modeMonths
			return s, nil
		}
		s.roadmap = msg.Roadmap
		s.mode = modeStarted
		return s, nil

	case tea.KeyMsg:
		switch s.mode {
		case modeStarted:
			if msg.String() == "enter" {
				return s, func() tea.Msg { return router.PopToRootMsg{} }
			}
			return s, nil

		case modeMonths:
			switch msg.String() {
			case "tab":
				s.mode = modeBrowse
				return s, nil
			case "enter":
				if s.pending {
					return s, nil
				}
				return s, s.start()
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}

		if !s.sess.Status().HasProfile {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	if s.mode == modeMonths {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PathsScreen) start() tea.Cmd {
	months, err := s.input.FloatValue()
	if err != nil || months <= 0 {
		s.input.Submit(false)
		s.errMsg = "Enter a positive number of months."
		return nil
	}
	s.input.Submit(true)
	s.pending = true
	pathID := s.selected().ID
	return func() tea.Msg {
		r, err := s.sess.StartRoadmap(context.Background(), pathID, months)
		return startedMsg{Roadmap: r, Err: err}
	}
}

func (s *PathsScreen) View(width, height int) string {
	if !s.sess.Status().HasProfile {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Take the assessment first so the roadmap can be tailored to you."))
	}
	if s.mode == modeStarted && s.roadmap != nil {
		cw := components.ContentWidth(width, 90)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, RenderRoadmap(s.roadmap, cw))
	}

	listWidth := 30
	detailWidth := max(30, min(70, width-listWidth-8))
	list := components.Panel("Paths", s.menu.View(), listWidth, s.mode == modeBrowse)
	detail := s.renderDetail(detailWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", detail))
}

func (s *PathsScreen) renderDetail(cw int) string {
	p := s.selected()
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render(p.Description))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Difficulty") + theme.Body.Render(string(p.Difficulty)) + "\n")
	b.WriteString(theme.Label.Render("Typical duration") + theme.Body.Render(fmt.Sprintf("%d-%d months", p.Duration.Min, p.Duration.Max)) + "\n\n")
	for _, ph := range p.Phases {
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d. %s", ph.Number, ph.Title)))
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  (%.1f wk)", ph.Duration)))
		b.WriteString("\n")
	}

	if s.mode == modeMonths {
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("How many months do you want to spend?"))
		b.WriteString("\n")
		b.WriteString(s.input.View())
		if s.errMsg != "" {
			b.WriteString("\n" + theme.Failure.Render(s.errMsg))
		}
	}
	return components.Panel(p.Title, b.String(), cw, s.mode == modeMonths)
}

// RenderRoadmap shows a personalized roadmap with its schedule.
func RenderRoadmap(r *roadmap.Roadmap, cw int) string {
	var b strings.Builder
	b.WriteString(theme.Label.Render("Timeframe") + theme.Body.Render(fmt.Sprintf("%.1f months (%.1f weeks planned)", r.TotalDuration, r.TotalWeeks())) + "\n")

	pred := components.NewProgressBar("", r.SuccessPrediction, true, cw-26)
	b.WriteString(theme.Label.Render("Success prediction") + pred.View() + "\n\n")

	for _, ph := range r.Phases {
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d. %-34s", ph.Number, ph.Title)))
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf(" %4.1f wk, %d days", ph.Duration, r.PhaseDays(ph.Number))))
		b.WriteString("\n")
	}

	sc := r.Schedule
	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Daily study") + theme.Body.Render(fmt.Sprintf("%.1f h in %d sessions", sc.DailyHours, sc.SessionsPerDay)) + "\n")
	b.WriteString(theme.Label.Render("Breaks") + theme.Body.Render(fmt.Sprintf("every %d min", sc.BreakInterval)) + "\n")
	b.WriteString(theme.Label.Render("Week") + theme.Body.Render(fmt.Sprintf("%d study days, %d rest days", sc.StudyDays, sc.RestDays)) + "\n")

	return components.Panel(r.Title, b.String(), cw, true)
}
