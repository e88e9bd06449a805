package assistant

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/progress"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want Intent
	}{
		{"Hello there", IntentGreeting},
		{"hi", IntentGreeting},
		{"  HEY!  ", IntentGreeting},
		{"Hi!", IntentGreeting},
		{"Hi.", IntentGreeting},
		{"hi, I need motivation", IntentGreeting},
		{"hey-ho", IntentGreeting},
		{"this is odd", IntentFallback},
		{"they said so", IntentFallback},
		{"which one", IntentFallback},
		{"how are you?", IntentWellbeing},
		{"hello, how are you?", IntentGreeting},
		{"show my progress", IntentProgress},
		{"what tasks do I have", IntentTasks},
		{"progress on my task", IntentProgress},
		{"help me plan", IntentPlan},
		{"I want to study", IntentPlan},
		{"I'm struggling", IntentMotivation},
		{"need motivation", IntentMotivation},
		{"my performance", IntentAnalytics},
		{"analytics please", IntentAnalytics},
		{"show the roadmap", IntentRoadmap},
		{"which path", IntentRoadmap},
		{"help", IntentHelp},
		{"any resources?", IntentHelp},
		{"what is a closure", IntentFallback},
		{"", IntentFallback},
	}
	rules := DefaultRules()
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(rules, tt.text))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"hi", "I", "need", "motivation"}, Tokens("hi, I need motivation!"))
	assert.Equal(t, []string{"go", "1", "25"}, Tokens("go 1.25"))
	assert.Empty(t, Tokens("?!"))
}

func TestRule_WordsMatchWholeTokens(t *testing.T) {
	r := Rule{Words: []string{"hi"}}
	assert.True(t, r.Matches("hi"))
	assert.True(t, r.Matches("oh, hi!"))
	assert.False(t, r.Matches("this"))
	assert.False(t, r.Matches("high"))
}

func TestDefaultRules_Order(t *testing.T) {
	var got []Intent
	for _, r := range DefaultRules() {
		got = append(got, r.Intent)
	}
	assert.Equal(t, []Intent{
		IntentGreeting, IntentWellbeing, IntentProgress, IntentTasks, IntentPlan,
		IntentMotivation, IntentAnalytics, IntentRoadmap, IntentHelp,
	}, got)
}

func TestProcess_SuggestionsForEveryIntent(t *testing.T) {
	d := New()
	a := &progress.Analytics{Data: progress.Data{TotalTasksCompleted: 2, StrongAreas: []string{"CSS"}, ImprovementAreas: []string{"JS"}}}
	contexts := []Context{
		{},
		{LearningData: &LearningData{Phase: 2, Day: 3, PathTitle: "Frontend"}, Profile: &profile.Profile{PreferredStyle: profile.StylePractical}, Progress: a},
	}
	messages := []string{"hello", "how are you", "progress", "task", "plan", "motivation", "analytics", "roadmap", "help", "quantum physics"}
	for _, ctx := range contexts {
		for _, m := range messages {
			r := d.Process(m, ctx)
			assert.NotEmpty(t, r.Response, m)
			assert.GreaterOrEqual(t, len(r.Suggestions), 3, m)
			assert.LessOrEqual(t, len(r.Suggestions), 4, m)
		}
	}
}

type fakeSource struct{ n int }

func (f *fakeSource) Analytics() progress.Analytics {
	return progress.Analytics{Data: progress.Data{TotalTasksCompleted: f.n}}
}

func TestProcess_LiveAnalytics(t *testing.T) {
	src := &fakeSource{n: 7}
	d := New(WithAnalytics(src))

	r := d.Process("Show my progress", Context{})
	assert.Equal(t, IntentProgress, r.Intent)
	assert.Contains(t, r.Response, "Tasks Completed: 7")

	src.n = 8
	r = d.Process("progress", Context{Progress: &progress.Analytics{Data: progress.Data{TotalTasksCompleted: 1}}})
	assert.Contains(t, r.Response, "Tasks Completed: 8")
}

func TestProcess_ContextProgressWithoutSource(t *testing.T) {
	d := New()
	r := d.Process("progress", Context{Progress: &progress.Analytics{Data: progress.Data{TotalTasksCompleted: 4}}})
	assert.Contains(t, r.Response, "Tasks Completed: 4")

	r = d.Process("progress", Context{})
	assert.NotContains(t, r.Response, "Tasks Completed")
}

func TestProcess_FallbackEchoesInput(t *testing.T) {
	d := New()

	r := d.Process("  What is a Closure?  ", Context{})
	assert.Equal(t, IntentFallback, r.Intent)
	assert.Contains(t, r.Response, `"What is a Closure?"`)
	assert.NotContains(t, r.Response, "phase")

	r = d.Process("What is a Closure?", Context{LearningData: &LearningData{Phase: 3, Day: 12}})
	assert.Contains(t, r.Response, "phase 3, day 12")
}

func TestProcess_RecordsHistory(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	d := New(WithClock(func() time.Time { return now }))

	r := d.Process("  Hello  ", Context{})
	turns := d.History()
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Role: RoleUser, Text: "Hello", At: now}, turns[0])
	assert.Equal(t, Turn{Role: RoleAssistant, Text: r.Response, Intent: IntentGreeting, At: now}, turns[1])

	d.ClearHistory()
	assert.Empty(t, d.History())
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory(5)
	for i := range 12 {
		h.Append(Turn{Text: fmt.Sprint(i)})
		assert.LessOrEqual(t, h.Len(), h.Cap())
	}
	var texts []string
	for _, turn := range h.Turns() {
		texts = append(texts, turn.Text)
	}
	assert.Equal(t, []string{"7", "8", "9", "10", "11"}, texts)
}

func TestHistory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultHistorySize, NewHistory(0).Cap())
	assert.Equal(t, DefaultHistorySize, NewHistory(-3).Cap())
}

func TestDispatcher_HistoryEvictsOldest(t *testing.T) {
	d := New(WithHistorySize(4))
	for i := range 5 {
		d.Process(fmt.Sprintf("message %d", i), Context{})
	}
	turns := d.History()
	require.Len(t, turns, 4)
	assert.Equal(t, "message 3", turns[0].Text)
	assert.Equal(t, "message 4", turns[2].Text)
}

func TestWithRules(t *testing.T) {
	d := New(WithRules([]Rule{{
		Intent:   IntentHelp,
		Keywords: []string{"sos"},
		Reply: func(Input) Reply {
			return Reply{Response: "on it", Suggestions: []string{"a", "b", "c"}}
		},
	}}))
	assert.Equal(t, IntentHelp, d.Process("SOS", Context{}).Intent)
	assert.Equal(t, IntentFallback, d.Process("hello", Context{}).Intent)
}
