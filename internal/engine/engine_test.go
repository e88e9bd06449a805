package engine

import (
	"encoding/json"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/pathwise/internal/assistant"
	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/taskgen"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithRandSource(rand.NewPCG(1, 2)),
		WithClock(func() time.Time { return testNow }),
	}
	return New(append(base, opts...)...)
}

func sampleResponses() []profile.Response {
	return []profile.Response{
		{QuestionID: "tc-daily-hours", Category: catalog.CategoryTimeCommitment, Weight: 5, Value: "6_plus"},
		{QuestionID: "mo-goal", Category: catalog.CategoryMotivation, Weight: 5, Value: "career_change"},
	}
}

func TestNew_DistinctSessions(t *testing.T) {
	a, b := New(), New()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())

	a.AnalyzeProfile(sampleResponses())
	_, ok := b.Profile()
	assert.False(t, ok, "engines must not share state")
}

func TestEngine_FullFlow(t *testing.T) {
	e := newTestEngine(t)

	p := e.AnalyzeProfile(sampleResponses())
	assert.InDelta(t, 3.5, p.TimeCommitment, 1e-9)

	r, err := e.GenerateRoadmap("frontend-development", 3, p)
	require.NoError(t, err)
	assert.Same(t, r, e.Roadmap())

	tasks := e.GenerateDailyTasks(r, 1, 1, p)
	require.NotEmpty(t, tasks)
	assert.Equal(t, tasks, e.Tasks())

	task, entry, err := e.CompleteTaskByID(tasks[0].ID, tasks[0].EstimatedTime, "notes", "A", "good")
	require.NoError(t, err)
	assert.Equal(t, taskgen.StatusCompleted, task.Status)
	assert.Equal(t, 100.0, entry.Efficiency)
	assert.Equal(t, testNow, entry.CompletedAt)

	_, _, err = e.CompleteTaskByID(tasks[0].ID, 1, "", "", "")
	assert.ErrorIs(t, err, taskgen.ErrAlreadyCompleted)

	_, _, err = e.CompleteTaskByID("ai-task-9-9-9", 1, "", "", "")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	a := e.LearningAnalytics()
	assert.Equal(t, 1, a.TotalTasksCompleted)

	reply := e.ProcessMessage("how is my progress", e.LearningContext())
	assert.Equal(t, assistant.IntentProgress, reply.Intent)
	assert.Contains(t, reply.Response, "Tasks Completed: 1")
	assert.Len(t, e.ChatHistory(), 2)
}

func TestEngine_UnknownPathLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := newTestEngine(t, WithLogger(zap.New(core)))

	_, err := e.GenerateRoadmap("nope", 3, profile.Profile{})
	require.ErrorIs(t, err, catalog.ErrPathNotFound)
	assert.Nil(t, e.Roadmap())
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "roadmap generation failed", logs.All()[0].Message)
}

func TestEngine_RestoreRebindsSessionLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	e := newTestEngine(t, WithLogger(zap.New(core)), WithSessionID("first"))

	e.Restore(State{SessionID: "second"})
	e.AnalyzeProfile(sampleResponses())

	for _, msg := range []string{"state restored", "profile analyzed"} {
		entries := logs.FilterMessage(msg).All()
		require.Len(t, entries, 1, msg)
		assert.Equal(t, "second", entries[0].ContextMap()["session"], msg)
	}

	// A state without an id keeps the current binding.
	e.Restore(State{})
	entries := logs.FilterMessage("state restored").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[1].ContextMap()["session"])
}

func TestEngine_GenerateForOtherRoadmapKeepsPosition(t *testing.T) {
	e := newTestEngine(t)
	r, err := e.GenerateRoadmap("data-science", 6, profile.Profile{})
	require.NoError(t, err)
	e.GenerateDailyTasks(r, 2, 5, profile.Profile{})

	phase, day := e.Position()
	assert.Equal(t, 2, phase)
	assert.Equal(t, 5, day)

	// Out-of-range phase yields no tasks and leaves the position alone.
	assert.Empty(t, e.GenerateDailyTasks(r, 99, 1, profile.Profile{}))
	phase, _ = e.Position()
	assert.Equal(t, 2, phase)
}

func TestEngine_CalculateEfficiency(t *testing.T) {
	e := New()
	assert.Equal(t, 200.0, e.CalculateEfficiency(2, 1))
	assert.Equal(t, 100.0, e.CalculateEfficiency(2, 0))
}

func TestEngine_ImprovementRecommendations(t *testing.T) {
	e := newTestEngine(t)
	e.TrackProgress("t1", progress.Completion{Efficiency: 50, Category: "CSS"})

	recs := e.ImprovementRecommendations(profile.Profile{}, e.LearningAnalytics())
	require.Len(t, recs, 3)
	assert.Equal(t, progress.RecommendTimeManagement, recs[0].Type)
}

func TestEngine_StateRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	p := e.AnalyzeProfile(sampleResponses())
	r, err := e.GenerateRoadmap("backend-development", 5, p)
	require.NoError(t, err)
	tasks := e.GenerateDailyTasks(r, 1, 3, p)
	for _, task := range tasks[:2] {
		_, _, err := e.CompleteTaskByID(task.ID, task.EstimatedTime*2, "", "", "")
		require.NoError(t, err)
	}

	raw, err := json.Marshal(e.State())
	require.NoError(t, err)

	var s State
	require.NoError(t, json.Unmarshal(raw, &s))

	restored := New()
	restored.Restore(s)
	assert.Equal(t, e.ID(), restored.ID())

	want, got := e.LearningAnalytics(), restored.LearningAnalytics()
	assert.Equal(t, want.TotalTasksCompleted, got.TotalTasksCompleted)
	assert.InDelta(t, want.TimeSpentTotal, got.TimeSpentTotal, 1e-9)
	assert.InDelta(t, want.AverageEfficiency, got.AverageEfficiency, 1e-9)
	assert.Equal(t, want.StrongAreas, got.StrongAreas)

	gotProfile, ok := restored.Profile()
	require.True(t, ok)
	assert.Equal(t, p, gotProfile)
	require.NotNil(t, restored.Roadmap())
	assert.Equal(t, r.ID, restored.Roadmap().ID)
	phase, day := restored.Position()
	assert.Equal(t, 1, phase)
	assert.Equal(t, 3, day)
	assert.Len(t, restored.Tasks(), len(tasks))
}

func TestEngine_Reset(t *testing.T) {
	e := newTestEngine(t)
	id := e.ID()
	e.AnalyzeProfile(sampleResponses())
	e.TrackProgress("t", progress.Completion{Efficiency: 100, Category: "x"})
	e.ProcessMessage("hi", assistant.Context{})

	e.Reset()
	assert.Equal(t, id, e.ID())
	_, ok := e.Profile()
	assert.False(t, ok)
	assert.Zero(t, e.LearningAnalytics().TotalTasksCompleted)
	assert.Empty(t, e.ChatHistory())
}

func TestEngine_NextDay(t *testing.T) {
	e := newTestEngine(t)
	_, _, done := e.NextDay()
	assert.True(t, done, "no roadmap yet")

	r, err := e.GenerateRoadmap("frontend-development", 3, profile.Profile{ExperienceLevel: 3})
	require.NoError(t, err)
	e.GenerateDailyTasks(r, 1, 1, profile.Profile{})

	phase, day, done := e.NextDay()
	assert.False(t, done)
	assert.Equal(t, 1, phase)
	assert.Equal(t, 2, day)
	assert.Empty(t, e.Tasks())

	for !done {
		phase, day, done = e.NextDay()
	}
	assert.Equal(t, len(r.Phases), phase)
	assert.Equal(t, r.PhaseDays(phase), day)
}
