// Package home is the dashboard: today's summary plus the main menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/screens/assess"
	"github.com/abhisek/pathwise/internal/screens/chat"
	"github.com/abhisek/pathwise/internal/screens/journal"
	"github.com/abhisek/pathwise/internal/screens/paths"
	"github.com/abhisek/pathwise/internal/screens/stats"
	"github.com/abhisek/pathwise/internal/screens/tasks"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/taskgen"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

// Menu positions.
const (
	itemTasks = iota
	itemChat
	itemStats
	itemJournal
	itemPaths
	itemAssess
	itemQuit
)

const buttonWidth = 24

// fullHeight is the body height needed for banner, mascot and bordered buttons.
const fullHeight = 46

// HomeScreen is the root screen.
type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the dashboard. months is the default roadmap length offered
// when picking a path.
func New(sess *session.Session, months float64) *HomeScreen {
	h := &HomeScreen{sess: sess}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := make([]components.MenuItem, itemQuit+1)
	items[itemTasks] = components.MenuItem{Label: "TODAY'S TASKS", Action: push(func() screen.Screen { return tasks.New(sess) })}
	items[itemChat] = components.MenuItem{Label: "ASK ASSISTANT", Action: push(func() screen.Screen { return chat.New(sess) })}
	items[itemStats] = components.MenuItem{Label: "PROGRESS", Action: push(func() screen.Screen { return stats.New(sess) })}
	items[itemJournal] = components.MenuItem{Label: "JOURNAL", Action: push(func() screen.Screen { return journal.New(sess) })}
	items[itemPaths] = components.MenuItem{Label: "LEARNING PATHS", Action: push(func() screen.Screen { return paths.New(sess, months) })}
	items[itemAssess] = components.MenuItem{Label: "ASSESSMENT", Action: push(func() screen.Screen { return assess.New(sess, months) })}
	items[itemQuit] = components.MenuItem{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }}

	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

// refresh enables menu items that the learner's state allows and moves the
// cursor to the most useful one.
func (h *HomeScreen) refresh() {
	st := h.sess.Status()
	hasProfile := st.HasProfile
	hasRoadmap := st.Roadmap != nil

	h.menu.Items[itemTasks].Disabled = !hasRoadmap
	h.menu.Items[itemPaths].Disabled = !hasProfile

	if !hasProfile {
		h.menu.Items[itemAssess].Label = "START ASSESSMENT"
	} else {
		h.menu.Items[itemAssess].Label = "RETAKE ASSESSMENT"
	}

	if h.menu.Items[h.menu.Selected].Disabled {
		switch {
		case !hasProfile:
			h.menu.Selected = itemAssess
		case !hasRoadmap:
			h.menu.Selected = itemPaths
		default:
			h.menu.Selected = itemTasks
		}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.refresh()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) View(width, height int) string {
	h.refresh()
	compact := layout.IsCompact(width, height) || height < fullHeight
	cw := components.ContentWidth(width, components.BannerWidth+4)

	st := h.sess.Status()
	a := st.Analytics
	today := st.Tasks

	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	if compact {
		sections = append(sections, center.Render(components.Banner(0)))
	} else {
		sections = append(sections,
			center.Render(components.Banner(cw)),
			center.Render(RenderMascot(mascotFor(a, today))),
		)
	}
	sections = append(sections, renderSummary(st, cw))
	sections = append(sections, renderMenu(h.menu, cw, compact))

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func mascotFor(a progress.Analytics, today []taskgen.Task) MascotVariant {
	if len(today) > 0 && countDone(today) == len(today) {
		return MascotCelebrating
	}
	if a.TotalTasksCompleted > 0 && a.AverageEfficiency < progress.LowEfficiencyThreshold {
		return MascotAlert
	}
	return MascotIdle
}

func countDone(tasks []taskgen.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Status == taskgen.StatusCompleted {
			n++
		}
	}
	return n
}

// renderSummary is the double-bordered status strip under the banner.
func renderSummary(st session.Status, cw int) string {
	a, today := st.Analytics, st.Tasks
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	hi := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	acc := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	info := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)

	var line1, line2 string
	switch {
	case !st.HasProfile:
		line1 = dim.Render("No profile yet. Take the assessment to begin.")
	case st.Roadmap == nil:
		line1 = dim.Render(fmt.Sprintf("Profile: %s learner. Choose a learning path next.", st.Profile.PreferredStyle))
	default:
		line1 = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(st.Roadmap.Title)
	}

	if st.Roadmap != nil || a.TotalTasksCompleted > 0 {
		todayText := dim.Render("☐ NOT STARTED")
		if len(today) > 0 {
			todayText = info.Render(fmt.Sprintf("☑ %d/%d TODAY", countDone(today), len(today)))
		}
		line2 = fmt.Sprintf("%s  %s  %s",
			hi.Render(fmt.Sprintf("★ %d DONE", a.TotalTasksCompleted)),
			acc.Render(fmt.Sprintf("◆ %.0f%% EFFICIENCY", a.AverageEfficiency)),
			todayText,
		)
	}

	content := line1
	if line2 != "" {
		content += "\n" + line2
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(content)
}

// renderMenu draws bordered buttons, or plain lines when space is tight.
func renderMenu(m components.Menu, cw int, compact bool) string {
	var rows []string
	for i, item := range m.Items {
		switch {
		case compact && i == m.Selected:
			rows = append(rows, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ "+item.Label+" "))
		case compact && item.Disabled:
			rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Render("   "+item.Label))
		case compact:
			rows = append(rows, theme.Unselected.Render("   "+item.Label))
		case item.Disabled:
			rows = append(rows, lipgloss.NewStyle().
				Width(buttonWidth).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Padding(0, 1).
				Render(item.Label))
		default:
			rows = append(rows, components.Button(item.Label, i == m.Selected, buttonWidth))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}
