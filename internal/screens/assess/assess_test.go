package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/router"
	"github.com/abhisek/pathwise/internal/screens/paths"
	"github.com/abhisek/pathwise/internal/screens/screentest"
)

func answerAll(t *testing.T, s *AssessScreen) {
	t.Helper()
	for i := range s.questions {
		_, cmd := s.Update(screentest.Enter)
		if i < len(s.questions)-1 {
			assert.Nil(t, cmd)
		} else {
			require.NotNil(t, cmd, "last answer submits")
			screentest.Drive(s, cmd)
		}
	}
}

func TestAssess_CompletesAndSavesProfile(t *testing.T) {
	sess := screentest.Session(t)
	s := New(sess, 6)
	require.Len(t, s.questions, len(catalog.AllQuestions()))

	answerAll(t, s)

	require.NotNil(t, s.result)
	got, ok := sess.Engine().Profile()
	require.True(t, ok)
	assert.Equal(t, *s.result, got)
	assert.Contains(t, s.View(100, 40), "Your learner profile")

	_, cmd := s.Update(screentest.Enter)
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	replace, ok := msgs[0].(router.ReplaceScreenMsg)
	require.True(t, ok, "without a roadmap the path picker follows")
	assert.IsType(t, &paths.PathsScreen{}, replace.Screen)
}

func TestAssess_PopsWhenRoadmapExists(t *testing.T) {
	sess := screentest.WithRoadmap(t, "frontend-development")
	s := New(sess, 6)
	answerAll(t, s)

	_, cmd := s.Update(screentest.Enter)
	msgs := screentest.Run(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
}

func TestAssess_BackPreselectsEarlierAnswer(t *testing.T) {
	s := New(screentest.Session(t), 6)
	if len(s.questions) < 2 || len(s.questions[0].Options) < 2 {
		t.Skip("catalog too small")
	}

	s.Update(screentest.Key('b'))
	require.Equal(t, 1, s.index)
	first := s.questions[0]
	assert.Equal(t, first.Options[1].Value, s.answers[first.ID])

	s.Update(screentest.Left)
	assert.Equal(t, 0, s.index)
	assert.Equal(t, 1, s.choice.Selected)
	assert.False(t, s.choice.Done())
}

func TestAssess_ViewShowsProgress(t *testing.T) {
	s := New(screentest.Session(t), 6)
	view := s.View(100, 30)
	assert.Contains(t, view, "question 1 of")
	assert.Contains(t, view, s.questions[0].Text)
}
