package progress

import (
	"fmt"

	"github.com/abhisek/pathwise/internal/profile"
)

// Recommendation thresholds.
const (
	LowEfficiencyThreshold  = 80.0 // percent, same unit as Efficiency
	LowConsistencyThreshold = 0.6
)

// Recommendation types.
const (
	RecommendTimeManagement = "time_management"
	RecommendConsistency    = "consistency"
	RecommendFocusArea      = "focus_area"
)

// Recommendation is a rule-based improvement tip.
type Recommendation struct {
	Type                string `json:"type"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Priority            string `json:"priority"`
	ExpectedImprovement string `json:"expectedImprovement"`
}

// Recommendations returns up to three tips derived from analytics thresholds.
// The profile tailors wording only; it never adds or removes a tip.
func Recommendations(p profile.Profile, a Analytics) []Recommendation {
	recs := []Recommendation{}

	if a.AverageEfficiency < LowEfficiencyThreshold {
		desc := "Tasks are taking longer than estimated. Break work into 25-minute focus blocks and set a timer before starting each task."
		if p.PreferredStyle == profile.StylePractical {
			desc = "Tasks are taking longer than estimated. Timebox each hands-on exercise and ship a minimal version before polishing."
		}
		recs = append(recs, Recommendation{
			Type:                RecommendTimeManagement,
			Title:               "Time Management",
			Description:         desc,
			Priority:            "high",
			ExpectedImprovement: "15-25% faster task completion",
		})
	}

	if a.ConsistencyRate < LowConsistencyThreshold {
		recs = append(recs, Recommendation{
			Type:                RecommendConsistency,
			Title:               "Study Consistency",
			Description:         "Complete at least one task every study day to build momentum. Short daily sessions beat occasional marathons.",
			Priority:            "medium",
			ExpectedImprovement: "Better retention and steadier progress",
		})
	}

	if n := len(a.ImprovementAreas); n > 0 {
		weakest := a.ImprovementAreas[n-1]
		recs = append(recs, Recommendation{
			Type:                RecommendFocusArea,
			Title:               fmt.Sprintf("Strengthen %s", weakest),
			Description:         fmt.Sprintf("%s is your lowest-efficiency area. Schedule an extra review task and revisit its fundamentals this week.", weakest),
			Priority:            "medium",
			ExpectedImprovement: "More balanced skill development",
		})
	}

	return recs
}
