package roadmap

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/profile"
)

func TestGenerate_UnknownPath(t *testing.T) {
	r, err := Generate("does-not-exist", 3, profile.Profile{})
	require.Error(t, err)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, catalog.ErrPathNotFound)
}

func TestGenerate_CopiesPathFields(t *testing.T) {
	p := profile.Profile{ExperienceLevel: 3, TimeCommitment: 3, Motivation: 3, FocusCapability: 3}
	r, err := Generate("backend-development", 4, p)
	require.NoError(t, err)

	path, err := catalog.GetPath("backend-development")
	require.NoError(t, err)

	assert.Equal(t, path.ID, r.ID)
	assert.Equal(t, path.Title, r.Title)
	assert.Equal(t, path.Difficulty, r.Difficulty)
	assert.True(t, r.AdjustedForProfile)
	assert.Equal(t, 4.0, r.TotalDuration)
	require.Len(t, r.Phases, len(path.Phases))

	// months == Duration.Min and mid experience: durations unchanged.
	for i, ph := range r.Phases {
		assert.True(t, ph.AdjustedForUser)
		assert.Equal(t, path.Phases[i].Number, ph.Number)
		assert.Equal(t, path.Phases[i].Topics, ph.Topics)
		assert.InDelta(t, path.Phases[i].Duration, ph.Duration, 1e-9)
	}
}

func TestGenerate_ScalesAndAdjustsForExperience(t *testing.T) {
	// frontend-development: min 3 months, phase 1 = 3 weeks.
	tests := []struct {
		name       string
		months     float64
		experience float64
		want       float64
	}{
		{"double timeframe", 6, 3, 6},
		{"experienced", 6, 4, 6 * 0.8},
		{"inexperienced", 6, 2, 6 * 1.2},
		{"tiny timeframe floors", 0.1, 4, MinPhaseWeeks},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Generate("frontend-development", tt.months, profile.Profile{ExperienceLevel: tt.experience})
			require.NoError(t, err)
			assert.InDelta(t, tt.want, r.Phases[0].Duration, 1e-9)
		})
	}
}

func TestGenerate_PhaseDurationFloor(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ids := catalog.PathIDs()

	for range 300 {
		months := rng.Float64()*24 + 0.001
		p := profile.Profile{
			ExperienceLevel: rng.Float64() * profile.MaxScore,
			TimeCommitment:  rng.Float64() * profile.MaxScore,
			Motivation:      rng.Float64() * profile.MaxScore,
			FocusCapability: rng.Float64() * profile.MaxScore,
		}
		r, err := Generate(ids[rng.IntN(len(ids))], months, p)
		require.NoError(t, err)
		for _, ph := range r.Phases {
			if ph.Duration < MinPhaseWeeks {
				t.Fatalf("phase %d duration %v < %v (months=%v)", ph.Number, ph.Duration, MinPhaseWeeks, months)
			}
		}
		if r.SuccessPrediction < 0 || r.SuccessPrediction > 1 {
			t.Fatalf("success prediction %v out of [0,1]", r.SuccessPrediction)
		}
	}
}

func TestGenerate_PreservesRelativeOrder(t *testing.T) {
	path, err := catalog.GetPath("data-science")
	require.NoError(t, err)
	r, err := Generate("data-science", 12, profile.Profile{ExperienceLevel: 1})
	require.NoError(t, err)

	for i := range path.Phases {
		for j := range path.Phases {
			if path.Phases[i].Duration < path.Phases[j].Duration {
				assert.LessOrEqual(t, r.Phases[i].Duration, r.Phases[j].Duration)
			}
		}
	}
}

func TestSuccessPrediction(t *testing.T) {
	assert.Zero(t, SuccessPrediction(profile.Profile{}))
	full := profile.Profile{ExperienceLevel: 5, TimeCommitment: 5, Motivation: 5, FocusCapability: 5}
	assert.InDelta(t, 1.0, SuccessPrediction(full), 1e-9)

	// 0.3*(3.5/5) + 0.3*(4/5) + 0.2*(1/5)
	p := profile.Profile{TimeCommitment: 3.5, Motivation: 4, FocusCapability: 1}
	assert.InDelta(t, 0.21+0.24+0.04, SuccessPrediction(p), 1e-9)
}

func TestRoadmap_PhaseLookup(t *testing.T) {
	r, err := Generate("devops-engineering", 5, profile.Profile{})
	require.NoError(t, err)

	ph, ok := r.Phase(1)
	require.True(t, ok)
	assert.Equal(t, 1, ph.Number)

	_, ok = r.Phase(0)
	assert.False(t, ok)
	_, ok = r.Phase(len(r.Phases) + 1)
	assert.False(t, ok)

	var nilRoadmap *Roadmap
	_, ok = nilRoadmap.Phase(1)
	assert.False(t, ok)

	var sum float64
	for _, ph := range r.Phases {
		sum += ph.Duration
	}
	assert.InDelta(t, sum, r.TotalWeeks(), 1e-9)
}

func TestRoadmap_Next(t *testing.T) {
	r := &Roadmap{Phases: []PhasePlan{
		{Phase: catalog.Phase{Number: 1, Duration: 0.5}}, // 4 days
		{Phase: catalog.Phase{Number: 2, Duration: 1}},   // 7 days
	}}
	assert.Equal(t, 4, r.PhaseDays(1))
	assert.Equal(t, 7, r.PhaseDays(2))
	assert.Zero(t, r.PhaseDays(3))

	phase, day, done := r.Next(1, 3)
	assert.Equal(t, []int{1, 4}, []int{phase, day})
	assert.False(t, done)

	phase, day, done = r.Next(1, 4)
	assert.Equal(t, []int{2, 1}, []int{phase, day})
	assert.False(t, done)

	phase, day, done = r.Next(2, 7)
	assert.Equal(t, []int{2, 7}, []int{phase, day})
	assert.True(t, done)

	var nilMap *Roadmap
	_, _, done = nilMap.Next(1, 1)
	assert.True(t, done)
}
