// Package stats renders learning analytics and recommendations.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

type loadedMsg struct {
	Stats session.Stats
	Err   error
}

// StatsScreen is read-only; Esc returns home.
type StatsScreen struct {
	sess   *session.Session
	stats  *session.Stats
	errMsg string
}

var _ screen.Screen = (*StatsScreen)(nil)

func New(sess *session.Session) *StatsScreen {
	return &StatsScreen{sess: sess}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		st, err := s.sess.Stats(context.Background())
		return loadedMsg{Stats: st, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Progress"
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.stats = &msg.Stats
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	center := func(text string) string {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, text)
	}
	switch {
	case s.errMsg != "":
		return center(theme.Failure.Render(s.errMsg))
	case s.stats == nil:
		return center(theme.Hint.Render("Crunching numbers..."))
	case s.stats.Analytics.TotalTasksCompleted == 0 && s.stats.Journal.Count == 0:
		return center(theme.Hint.Render("Complete a task to see your progress here."))
	}

	cw := components.ContentWidth(width, 90)
	half := (cw - 2) / 2

	left := components.Panel("Overview", renderOverview(s.stats, half-4), half, false)
	right := components.Panel("By topic", renderAreas(s.stats.Areas, half-4), half, false)
	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)}
	if len(s.stats.Recommendations) > 0 {
		sections = append(sections, components.Panel("Recommendations", renderRecommendations(s.stats.Recommendations), cw, true))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, strings.Join(sections, "\n"))
}

func renderOverview(st *session.Stats, w int) string {
	a := st.Analytics
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(theme.Label.Width(18).Render(label) + theme.Body.Render(value) + "\n")
	}
	row("Tasks completed", fmt.Sprintf("%d", a.TotalTasksCompleted))
	row("Time spent", fmt.Sprintf("%.1f h", a.TimeSpentTotal))
	row("Per task", fmt.Sprintf("%.1f h", a.AverageTaskTime))
	if st.Journal.Count > a.TotalTasksCompleted {
		row("All sessions", fmt.Sprintf("%d tasks, %.1f h", st.Journal.Count, st.Journal.Hours))
	}
	b.WriteString("\n")

	eff := components.NewProgressBar("Efficiency", a.AverageEfficiency/progress.MaxEfficiency, false, w-6)
	eff.LabelWidth = 12
	if a.AverageEfficiency < progress.LowEfficiencyThreshold {
		eff.Color = theme.Accent
	}
	b.WriteString(eff.View() + theme.Subtitle.Render(fmt.Sprintf(" %3.0f%%", a.AverageEfficiency)) + "\n")

	con := components.NewProgressBar("Consistency", a.ConsistencyRate, false, w-6)
	con.LabelWidth = 12
	if a.ConsistencyRate < progress.LowConsistencyThreshold {
		con.Color = theme.Accent
	}
	b.WriteString(con.View() + theme.Subtitle.Render(fmt.Sprintf(" %3.0f%%", a.ConsistencyRate*100)) + "\n")

	if len(a.StrongAreas) > 0 {
		b.WriteString("\n" + theme.Done.Render("Strong: "+strings.Join(a.StrongAreas, ", ")) + "\n")
	}
	if len(a.ImprovementAreas) > 0 {
		b.WriteString(theme.Warning.Render("Improve: "+strings.Join(a.ImprovementAreas, ", ")) + "\n")
	}
	return b.String()
}

func renderAreas(areas []progress.AreaStat, w int) string {
	if len(areas) == 0 {
		return theme.Hint.Render("No topics yet.")
	}
	var b strings.Builder
	for _, area := range areas {
		label := area.Category
		if len([]rune(label)) > 16 {
			label = string([]rune(label)[:15]) + "…"
		}
		bar := components.NewProgressBar(label, area.AverageEfficiency/progress.MaxEfficiency, false, w-10)
		bar.LabelWidth = 16
		b.WriteString(bar.View() + theme.Subtitle.Render(fmt.Sprintf(" %3.0f%% ×%d", area.AverageEfficiency, area.Count)) + "\n")
	}
	return b.String()
}

func renderRecommendations(recs []progress.Recommendation) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		prio := theme.Priority[r.Priority].Render(strings.ToUpper(r.Priority))
		b.WriteString(prio + "  " + theme.Body.Bold(true).Render(r.Title) + "\n")
		b.WriteString(theme.Body.Render(r.Description) + "\n")
		b.WriteString(theme.Subtitle.Render("Expected: "+r.ExpectedImprovement) + "\n")
	}
	return b.String()
}
