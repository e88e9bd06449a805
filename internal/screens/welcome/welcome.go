// Package welcome is the animated splash shown at startup.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// A signpost: one arm per direction a learner might take.
const signpostArt = `     ┌──────────┐
     │  ◀ START │
     └────┬─────┘
   ┌──────┴─────┐
   │  GOAL ▶    │
   └──────┬─────┘
          │
        ══╧══`

var sparkleFrames = []string{"·", "✦"}

type tickMsg time.Time

// WelcomeScreen plays a short animation, then replaces itself with the
// screen built by homeFactory on the next key press.
type WelcomeScreen struct {
	greeting     string
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash. sess may be nil, which yields a generic greeting.
func New(sess *session.Session, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		greeting:    greeting(sess),
		homeFactory: homeFactory,
	}
}

func greeting(sess *session.Session) string {
	if sess == nil {
		return "Let's map out your learning path."
	}
	st := sess.Status()
	if !st.HasProfile {
		return "Let's start by getting to know how you learn."
	}
	if st.Roadmap == nil {
		return "Your profile is ready. Pick a learning path!"
	}
	return fmt.Sprintf("Welcome back! %s, phase %d, day %d.", st.Roadmap.Title, st.Phase, st.Day)
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(signpostArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(art, "\n")
		lines[1] = s1 + "  " + lines[1] + "  " + s2
		lines[4] = s2 + "  " + lines[4] + "  " + s1
		art = strings.Join(lines, "\n")
	}

	sections := []string{art}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			components.Banner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(w.greeting),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
