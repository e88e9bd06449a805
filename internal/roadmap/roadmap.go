// Package roadmap expands a catalog learning path into a personalized,
// time-adjusted plan with a study schedule.
package roadmap

import (
	"fmt"
	"math"

	"github.com/abhisek/pathwise/internal/catalog"
	"github.com/abhisek/pathwise/internal/profile"
)

// MinPhaseWeeks is the floor applied to every adjusted phase duration.
const MinPhaseWeeks = 0.5

// Experience adjustments applied after timeframe scaling.
const (
	ExperiencedFactor   = 0.8
	InexperiencedFactor = 1.2
)

// PhasePlan is a catalog phase rescaled for one learner.
type PhasePlan struct {
	catalog.Phase
	AdjustedForUser bool `json:"adjustedForUser"`
}

// Roadmap is a learning path personalized for a profile and timeframe.
type Roadmap struct {
	ID                 string                `json:"id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Difficulty         catalog.Difficulty    `json:"difficulty"`
	Duration           catalog.DurationRange `json:"duration"`
	SuccessPrediction  float64               `json:"successPrediction"`
	Phases             []PhasePlan           `json:"phases"`
	Schedule           Schedule              `json:"personalizedSchedule"`
	TotalDuration      float64               `json:"totalDuration"` // months
	AdjustedForProfile bool                  `json:"adjustedForProfile"`
}

// Generate builds a personalized roadmap. The only error is an unknown path id,
// which wraps catalog.ErrPathNotFound.
//
// Each phase is scaled independently, so adjusted durations are not
// renormalized to sum exactly to the requested timeframe.
func Generate(pathID string, months float64, p profile.Profile) (*Roadmap, error) {
	path, err := catalog.GetPath(pathID)
	if err != nil {
		return nil, fmt.Errorf("generate roadmap: %w", err)
	}

	scale := months / float64(path.Duration.Min)
	phases := make([]PhasePlan, len(path.Phases))
	for i, ph := range path.Phases {
		ph.Duration = AdjustPhaseDuration(ph.Duration, scale, p.ExperienceLevel)
		phases[i] = PhasePlan{Phase: ph, AdjustedForUser: true}
	}

	return &Roadmap{
		ID:                 path.ID,
		Title:              path.Title,
		Description:        path.Description,
		Difficulty:         path.Difficulty,
		Duration:           path.Duration,
		SuccessPrediction:  SuccessPrediction(p),
		Phases:             phases,
		Schedule:           BuildSchedule(p),
		TotalDuration:      months,
		AdjustedForProfile: true,
	}, nil
}

// AdjustPhaseDuration rescales a template duration (weeks) by the timeframe
// factor, then by experience, with a floor of MinPhaseWeeks.
func AdjustPhaseDuration(weeks, scale, experience float64) float64 {
	adjusted := weeks * scale
	switch {
	case experience >= 4:
		adjusted *= ExperiencedFactor
	case experience <= 2:
		adjusted *= InexperiencedFactor
	}
	if math.IsNaN(adjusted) || adjusted < MinPhaseWeeks {
		return MinPhaseWeeks
	}
	return adjusted
}

// SuccessPrediction is a weighted blend of normalized profile scores in [0, 1].
func SuccessPrediction(p profile.Profile) float64 {
	v := 0.2*(p.ExperienceLevel/profile.MaxScore) +
		0.3*(p.TimeCommitment/profile.MaxScore) +
		0.3*(p.Motivation/profile.MaxScore) +
		0.2*(p.FocusCapability/profile.MaxScore)
	return max(0, min(1, v))
}

// Phase returns the 1-based phase n.
func (r *Roadmap) Phase(n int) (PhasePlan, bool) {
	if r == nil || n < 1 || n > len(r.Phases) {
		return PhasePlan{}, false
	}
	return r.Phases[n-1], true
}

// TotalWeeks sums the adjusted phase durations.
func (r *Roadmap) TotalWeeks() float64 {
	var total float64
	for _, ph := range r.Phases {
		total += ph.Duration
	}
	return total
}

// PhaseDays is the number of study days in phase n, rounded up to whole
// days. Unknown phases have zero days.
func (r *Roadmap) PhaseDays(n int) int {
	ph, ok := r.Phase(n)
	if !ok {
		return 0
	}
	return int(math.Ceil(ph.Duration * DaysPerWeek))
}

// Next returns the position after (phase, day). It rolls into the next phase
// once the current phase's days are used up and stays on the last day of
// the final phase. done reports whether the roadmap is finished.
func (r *Roadmap) Next(phase, day int) (nextPhase, nextDay int, done bool) {
	if r == nil || len(r.Phases) == 0 {
		return phase, day, true
	}
	phase = max(1, min(phase, len(r.Phases)))
	if day+1 <= r.PhaseDays(phase) {
		return phase, day + 1, false
	}
	if phase < len(r.Phases) {
		return phase + 1, 1, false
	}
	return phase, max(1, day), true
}
