// Package profile turns assessment responses into a learner profile.
package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/pathwise/internal/catalog"
)

// MaxScore is the saturation point of every profile score.
const MaxScore = 5.0

// Style is the learner's preferred way of studying.
type Style string

const (
	StylePractical   Style = "practical"
	StyleTheoretical Style = "theoretical"
	StyleAccelerated Style = "accelerated"
	StyleBalanced    Style = "balanced"
)

// Strength and challenge labels.
const (
	StrengthTechnicalExperience = "Technical Experience"
	StrengthTimeAvailability    = "Time Availability"
	StrengthHighMotivation      = "High Motivation"
	StrengthFocus               = "Focus & Concentration"

	ChallengeTechnicalFoundation = "Technical Foundation"
	ChallengeTimeManagement      = "Time Management"
	ChallengeSustainedFocus      = "Sustained Focus"
)

// Response is one answered assessment question.
type Response struct {
	QuestionID string           `json:"questionId"`
	Value      string           `json:"value"`
	Weight     int              `json:"weight"`
	Category   catalog.Category `json:"category"`
}

// Profile is the normalized result of an assessment. Scores are in [0, 5].
type Profile struct {
	LearningSpeed   float64  `json:"learningSpeed"`
	ExperienceLevel float64  `json:"experienceLevel"`
	TimeCommitment  float64  `json:"timeCommitment"`
	FocusCapability float64  `json:"focusCapability"`
	Motivation      float64  `json:"motivation"`
	PreferredStyle  Style    `json:"preferredStyle"`
	Strengths       []string `json:"strengths"`
	Challenges      []string `json:"challenges"`
}

// contribution maps a response category onto a score with a multiplier.
type contribution struct {
	score      func(p *Profile) *float64
	multiplier float64
}

var weighting = map[catalog.Category][]contribution{
	catalog.CategoryLearningStyle: {
		{func(p *Profile) *float64 { return &p.LearningSpeed }, 0.5},
		{func(p *Profile) *float64 { return &p.FocusCapability }, 0.3},
	},
	catalog.CategoryTechnicalBackground: {
		{func(p *Profile) *float64 { return &p.ExperienceLevel }, 0.6},
	},
	catalog.CategoryTimeCommitment: {
		{func(p *Profile) *float64 { return &p.TimeCommitment }, 0.7},
		{func(p *Profile) *float64 { return &p.FocusCapability }, 0.2},
	},
	catalog.CategoryMotivation: {
		{func(p *Profile) *float64 { return &p.Motivation }, 0.8},
	},
}

// Analyze builds a profile from assessment responses. Responses with an
// unknown category contribute nothing.
func Analyze(responses []Response) Profile {
	var p Profile

	for _, r := range responses {
		for _, c := range weighting[r.Category] {
			*c.score(&p) += float64(r.Weight) * c.multiplier
		}
	}

	// Stacked questions can push a score past the cap; saturate.
	for _, s := range p.scores() {
		*s = clamp(*s, 0, MaxScore)
	}

	p.PreferredStyle = preferredStyle(responses)
	p.Strengths, p.Challenges = deriveTraits(p)
	return p
}

func (p *Profile) scores() []*float64 {
	return []*float64{
		&p.LearningSpeed,
		&p.ExperienceLevel,
		&p.TimeCommitment,
		&p.FocusCapability,
		&p.Motivation,
	}
}

// preferredStyle scans learning-style answers. The first matching rule wins.
func preferredStyle(responses []Response) Style {
	var values []string
	for _, r := range responses {
		if r.Category == catalog.CategoryLearningStyle {
			values = append(values, r.Value)
		}
	}

	rules := []struct {
		marker string
		style  Style
	}{
		{"hands_on", StylePractical},
		{"theory", StyleTheoretical},
		{"fast", StyleAccelerated},
	}
	for _, rule := range rules {
		for _, v := range values {
			if strings.Contains(v, rule.marker) {
				return rule.style
			}
		}
	}
	return StyleBalanced
}

func deriveTraits(p Profile) (strengths, challenges []string) {
	strengths = []string{}
	challenges = []string{}

	if p.ExperienceLevel >= 4 {
		strengths = append(strengths, StrengthTechnicalExperience)
	}
	if p.TimeCommitment >= 4 {
		strengths = append(strengths, StrengthTimeAvailability)
	}
	if p.Motivation >= 4 {
		strengths = append(strengths, StrengthHighMotivation)
	}
	if p.FocusCapability >= 4 {
		strengths = append(strengths, StrengthFocus)
	}

	if p.ExperienceLevel <= 2 {
		challenges = append(challenges, ChallengeTechnicalFoundation)
	}
	if p.TimeCommitment <= 2 {
		challenges = append(challenges, ChallengeTimeManagement)
	}
	if p.FocusCapability <= 2 {
		challenges = append(challenges, ChallengeSustainedFocus)
	}
	return strengths, challenges
}

// ResponsesFromAnswers resolves question-id → option-value answers against
// the catalog. Output is ordered by question id for reproducibility.
func ResponsesFromAnswers(answers map[string]string) ([]Response, error) {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	responses := make([]Response, 0, len(ids))
	for _, id := range ids {
		q, err := catalog.GetQuestion(id)
		if err != nil {
			return nil, err
		}
		value := answers[id]
		opt, ok := q.Option(value)
		if !ok {
			return nil, fmt.Errorf("question %q has no option %q", id, value)
		}
		responses = append(responses, Response{
			QuestionID: q.ID,
			Value:      opt.Value,
			Weight:     opt.Weight,
			Category:   q.Category,
		})
	}
	return responses, nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
