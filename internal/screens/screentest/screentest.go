// Package screentest provides a throwaway learner session for screen tests.
package screentest

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/screen"
	"github.com/abhisek/pathwise/internal/session"
	"github.com/abhisek/pathwise/internal/store"
)

// Now is the fixed clock used by sessions from this package.
var Now = time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

// Answers is a complete, valid questionnaire.
var Answers = map[string]string{
	"ls-approach":    "hands_on_projects",
	"tb-experience":  "intermediate",
	"tc-daily-hours": "3_to_5",
	"mo-goal":        "career_change",
}

// Session opens a fresh session on a private in-memory store.
func Session(t *testing.T) *session.Session {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s, err := session.Open(context.Background(), st.SnapshotRepo(), st.JournalRepo(), session.Options{
		RandSource: rand.NewPCG(7, 11),
		Clock:      func() time.Time { return Now },
	})
	require.NoError(t, err)
	return s
}

// WithRoadmap returns a session that has a profile and an active roadmap.
func WithRoadmap(t *testing.T, pathID string) *session.Session {
	t.Helper()
	s := Session(t)
	ctx := context.Background()
	_, err := s.Assess(ctx, Answers)
	require.NoError(t, err)
	_, err = s.StartRoadmap(ctx, pathID, 4)
	require.NoError(t, err)
	return s
}

// Key builds a printable key press.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special keys.
var (
	Enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	Tab   = tea.KeyPressMsg{Code: tea.KeyTab}
	Up    = tea.KeyPressMsg{Code: tea.KeyUp}
	Down  = tea.KeyPressMsg{Code: tea.KeyDown}
	Left  = tea.KeyPressMsg{Code: tea.KeyLeft}
)

// Type sends each rune of text as a key press.
func Type(s screen.Screen, text string) {
	for _, r := range text {
		s.Update(Key(r))
	}
}

// Run executes cmd and returns its messages, flattening batches.
func Run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, Run(c)...)
	}
	return out
}

// Drive runs cmd and feeds every resulting message back into s.
func Drive(s screen.Screen, cmd tea.Cmd) {
	for _, msg := range Run(cmd) {
		s.Update(msg)
	}
}
