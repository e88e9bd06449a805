// Package assess walks the learner through the assessment questionnaire and
// shows the resulting profile.
package assess

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/screens/paths"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/ui/components"
	"github.com/abhisek/pathwise/internal/ui/layout"
	"github.com/abhisek/pathwise/internal/ui/theme"
)

type assessedMsg struct {
	Profile profile.Profile
	Err     error
}

// AssessScreen asks one question at a time.
type AssessScreen struct {
	sess      *session.Session
	months    float64
	questions []catalog.Question
	answers   map[string]string
	index     int
	choice    components.Choice
	result    *profile.Profile
	saving    bool
	errMsg    string
}

var _ screen.Screen = (*AssessScreen)(nil)
var _ screen.KeyHintProvider = (*AssessScreen)(nil)

// New starts the questionnaire. months is forwarded to the path picker
// shown afterwards.
func New(sess *session.Session, months float64) *AssessScreen {
	s := &AssessScreen{
		sess:      sess,
		months:    months,
		questions: catalog.AllQuestions(),
		answers:   make(map[string]string),
	}
	s.loadQuestion()
	return s
}

func (s *AssessScreen) Init() tea.Cmd {
	return nil
}

func (s *AssessScreen) Title() string {
	return "Assessment"
}

func (s *AssessScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "A-E", Description: "Pick"},
		{Key: "←", Description: "Previous"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// loadQuestion builds the selector for the current question, preselecting
// an earlier answer when the learner steps back.
func (s *AssessScreen) loadQuestion() {
	q := s.questions[s.index]
	labels := make([]string, len(q.Options))
	pre := 0
	for i, o := range q.Options {
		labels[i] = o.Label
		if s.answers[q.ID] == o.Value {
			pre = i
		}
	}
	s.choice = components.NewChoice(q.Text, labels, pre)
}

func (s *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case assessedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.result = &msg.Profile
		return s, nil

	case tea.KeyMsg:
		if s.result != nil {
			if msg.String() == "enter" {
				return s, s.next()
			}
			return s, nil
		}
		if s.saving {
			return s, nil
		}
		if k := msg.String(); (k == "left" || k == "backspace") && s.index > 0 {
			s.index--
			s.loadQuestion()
			return s, nil
		}

		s.choice, _ = s.choice.Update(msg)
		if !s.choice.Done() {
			return s, nil
		}
		q := s.questions[s.index]
		s.answers[q.ID] = q.Options[s.choice.Chosen].Value
		if s.index < len(s.questions)-1 {
			s.index++
			s.loadQuestion()
			return s, nil
		}
		s.saving = true
		return s, s.submit()
	}
	return s, nil
}

func (s *AssessScreen) submit() tea.Cmd {
	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return func() tea.Msg {
		p, err := s.sess.Assess(context.Background(), answers)
		return assessedMsg{Profile: p, Err: err}
	}
}

// next goes on to pick a path when the learner has none yet.
func (s *AssessScreen) next() tea.Cmd {
	if s.sess.Status().Roadmap == nil {
		p := paths.New(s.sess, s.months)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: p} }
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *AssessScreen) View(width, height int) string {
	cw := components.ContentWidth(width, 70)

	var body string
	switch {
	case s.errMsg != "":
		body = theme.Failure.Render("Could not save your profile: " + s.errMsg)
	case s.result != nil:
		body = renderProfile(*s.result, cw)
	case s.saving:
		body = theme.Hint.Render("Analyzing your answers...")
	default:
		body = s.renderQuestion(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *AssessScreen) renderQuestion(cw int) string {
	q := s.questions[s.index]
	header := fmt.Sprintf("%s  ·  question %d of %d", q.Category.DisplayName(), s.index+1, len(s.questions))

	bar := components.NewProgressBar("", float64(s.index)/float64(len(s.questions)), false, cw)
	return components.Panel(header, s.choice.View()+"\n"+bar.View(), cw, true)
}

func renderProfile(p profile.Profile, cw int) string {
	var b strings.Builder

	scores := []struct {
		label string
		v     float64
	}{
		{"Learning speed", p.LearningSpeed},
		{"Experience", p.ExperienceLevel},
		{"Time commitment", p.TimeCommitment},
		{"Focus", p.FocusCapability},
		{"Motivation", p.Motivation},
	}
	for _, sc := range scores {
		bar := components.NewProgressBar(sc.label, sc.v/profile.MaxScore, false, cw-10)
		bar.LabelWidth = 16
		b.WriteString(bar.View())
		b.WriteString(fmt.Sprintf("  %.1f\n", sc.v))
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Preferred style") + theme.Body.Render(string(p.PreferredStyle)) + "\n")
	if len(p.Strengths) > 0 {
		b.WriteString(theme.Label.Render("Strengths") + theme.Done.Render(strings.Join(p.Strengths, ", ")) + "\n")
	}
	if len(p.Challenges) > 0 {
		b.WriteString(theme.Label.Render("Challenges") + theme.Warning.Render(strings.Join(p.Challenges, ", ")) + "\n")
	}

	return components.Panel("Your learner profile", b.String(), cw, true)
}
