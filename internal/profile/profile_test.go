package profile

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/catalog"
)

func TestAnalyze_TimeAndMotivation(t *testing.T) {
	p := Analyze([]Response{
		{Category: catalog.CategoryTimeCommitment, Weight: 5, Value: "6_plus"},
		{Category: catalog.CategoryMotivation, Weight: 5, Value: "career_change"},
	})

	assert.InDelta(t, 3.5, p.TimeCommitment, 1e-9)
	assert.InDelta(t, 4.0, p.Motivation, 1e-9)
	assert.InDelta(t, 1.0, p.FocusCapability, 1e-9)
	assert.Zero(t, p.LearningSpeed)
	assert.Zero(t, p.ExperienceLevel)
	assert.Equal(t, StyleBalanced, p.PreferredStyle)

	assert.Equal(t, []string{StrengthHighMotivation}, p.Strengths)
	assert.Equal(t, []string{ChallengeTechnicalFoundation, ChallengeSustainedFocus}, p.Challenges)
}

func TestAnalyze_WeightingTable(t *testing.T) {
	tests := []struct {
		category catalog.Category
		weight   int
		want     Profile
	}{
		{catalog.CategoryLearningStyle, 4, Profile{LearningSpeed: 2.0, FocusCapability: 1.2}},
		{catalog.CategoryTechnicalBackground, 5, Profile{ExperienceLevel: 3.0}},
		{catalog.CategoryTimeCommitment, 2, Profile{TimeCommitment: 1.4, FocusCapability: 0.4}},
		{catalog.CategoryMotivation, 3, Profile{Motivation: 2.4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := Analyze([]Response{{Category: tt.category, Weight: tt.weight}})
			assert.InDelta(t, tt.want.LearningSpeed, got.LearningSpeed, 1e-9)
			assert.InDelta(t, tt.want.ExperienceLevel, got.ExperienceLevel, 1e-9)
			assert.InDelta(t, tt.want.TimeCommitment, got.TimeCommitment, 1e-9)
			assert.InDelta(t, tt.want.FocusCapability, got.FocusCapability, 1e-9)
			assert.InDelta(t, tt.want.Motivation, got.Motivation, 1e-9)
		})
	}
}

func TestAnalyze_ClampsStackedScores(t *testing.T) {
	var rs []Response
	for range 4 {
		rs = append(rs, Response{Category: catalog.CategoryTechnicalBackground, Weight: 5})
		rs = append(rs, Response{Category: catalog.CategoryMotivation, Weight: 5})
	}
	p := Analyze(rs)
	assert.Equal(t, MaxScore, p.ExperienceLevel)
	assert.Equal(t, MaxScore, p.Motivation)
	assert.Contains(t, p.Strengths, StrengthTechnicalExperience)
	assert.Contains(t, p.Strengths, StrengthHighMotivation)
}

func TestAnalyze_UnknownCategoryIgnored(t *testing.T) {
	p := Analyze([]Response{{Category: "astrology", Weight: 5, Value: "hands_on"}})
	assert.Zero(t, p.LearningSpeed)
	assert.Zero(t, p.FocusCapability)
	assert.Equal(t, StyleBalanced, p.PreferredStyle)
}

func TestAnalyze_Empty(t *testing.T) {
	p := Analyze(nil)
	assert.Equal(t, StyleBalanced, p.PreferredStyle)
	assert.Empty(t, p.Strengths)
	// All-zero scores sit below every challenge threshold.
	assert.Len(t, p.Challenges, 3)
}

func TestPreferredStyle(t *testing.T) {
	ls := catalog.CategoryLearningStyle
	tests := []struct {
		name   string
		values []Response
		want   Style
	}{
		{"hands on", []Response{{Category: ls, Value: "hands_on_projects"}}, StylePractical},
		{"theory", []Response{{Category: ls, Value: "theory_first"}}, StyleTheoretical},
		{"fast", []Response{{Category: ls, Value: "fast_intensive"}}, StyleAccelerated},
		{"none", []Response{{Category: ls, Value: "video_tutorials"}}, StyleBalanced},
		{"hands on beats fast regardless of order", []Response{
			{Category: ls, Value: "fast_intensive"},
			{Category: ls, Value: "hands_on_projects"},
		}, StylePractical},
		{"theory beats fast", []Response{
			{Category: ls, Value: "fast_intensive"},
			{Category: ls, Value: "theory_first"},
		}, StyleTheoretical},
		{"other categories ignored", []Response{
			{Category: catalog.CategoryMotivation, Value: "hands_on"},
		}, StyleBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Analyze(tt.values).PreferredStyle)
		})
	}
}

func TestAnalyze_ScoresAlwaysBounded(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	categories := append(catalog.AllCategories(), "unknown")

	for range 500 {
		n := rng.IntN(12)
		rs := make([]Response, n)
		for i := range rs {
			rs[i] = Response{
				Category: categories[rng.IntN(len(categories))],
				Weight:   1 + rng.IntN(5),
			}
		}
		p := Analyze(rs)
		for _, s := range []float64{p.LearningSpeed, p.ExperienceLevel, p.TimeCommitment, p.FocusCapability, p.Motivation} {
			if s < 0 || s > MaxScore {
				t.Fatalf("score %v out of [0, %v] for %+v", s, MaxScore, rs)
			}
		}
	}
}

func TestStrengthsAndChallengesDisjoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for range 200 {
		var rs []Response
		for _, c := range catalog.AllCategories() {
			rs = append(rs, Response{Category: c, Weight: 1 + rng.IntN(5)})
		}
		p := Analyze(rs)
		for _, s := range p.Strengths {
			assert.NotContains(t, p.Challenges, s)
		}
	}
}

func TestResponsesFromAnswers(t *testing.T) {
	rs, err := ResponsesFromAnswers(map[string]string{
		"tc-daily-hours": "6_plus",
		"mo-goal":        "career_change",
	})
	require.NoError(t, err)
	require.Len(t, rs, 2)

	// Sorted by question id.
	assert.Equal(t, "mo-goal", rs[0].QuestionID)
	assert.Equal(t, catalog.CategoryMotivation, rs[0].Category)
	assert.Equal(t, 5, rs[0].Weight)
	assert.Equal(t, "tc-daily-hours", rs[1].QuestionID)
	assert.Equal(t, 5, rs[1].Weight)

	p := Analyze(rs)
	assert.InDelta(t, 3.5, p.TimeCommitment, 1e-9)
	assert.InDelta(t, 4.0, p.Motivation, 1e-9)
}

func TestResponsesFromAnswers_Errors(t *testing.T) {
	_, err := ResponsesFromAnswers(map[string]string{"nope": "x"})
	assert.ErrorIs(t, err, catalog.ErrQuestionNotFound)

	_, err = ResponsesFromAnswers(map[string]string{"mo-goal": "world_domination"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "world_domination")
}
