// Package taskgen procedurally generates daily study tasks for the active
// phase of a roadmap.
package taskgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/roadmap"
)

const (
	MinTasksPerDay = 3
	MaxTasksPerDay = 5
)

// Difficulties are the possible task difficulty ratings.
var Difficulties = []int{3, 4, 5}

// baseHours is the estimated time for a difficulty-3 task of each type.
var baseHours = map[Type]float64{
	TypeLearning: 2,
	TypePractice: 3,
	TypeReview:   1,
}

var titleTemplates = map[Type][]string{
	TypeLearning: {
		"Study {topic} Fundamentals",
		"Deep Dive into {topic}",
		"Explore {topic} Concepts",
		"Learn {topic} Best Practices",
	},
	TypePractice: {
		"Build a {topic} Exercise",
		"Hands-on {topic} Practice",
		"Implement a {topic} Mini Project",
		"Solve {topic} Challenges",
	},
	TypeReview: {
		"Review {topic} Concepts",
		"Revise {topic} Notes",
		"Reflect on {topic} Progress",
		"Quiz Yourself on {topic}",
	},
}

// Generator produces daily tasks. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator drawing from src. A nil src seeds from the clock,
// so repeated calls with the same arguments yield different tasks.
func New(src rand.Source, opts ...Option) *Generator {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1|1)
	}
	g := &Generator{rng: rand.New(src), now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// GenerateDaily produces 3–5 tasks for the given 1-based phase and day.
// An out-of-range phase yields an empty slice.
func (g *Generator) GenerateDaily(r *roadmap.Roadmap, phase, day int, p profile.Profile) []Task {
	ph, ok := r.Phase(phase)
	if !ok || len(ph.Topics) == 0 {
		return []Task{}
	}

	count := MinTasksPerDay + g.rng.IntN(MaxTasksPerDay-MinTasksPerDay+1)
	created := g.now()
	tasks := make([]Task, 0, count)

	for i := range count {
		typ := AllTypes()[g.rng.IntN(len(AllTypes()))]
		topic := ph.Topics[g.rng.IntN(len(ph.Topics))]
		difficulty := Difficulties[g.rng.IntN(len(Difficulties))]

		tasks = append(tasks, Task{
			ID:            TaskID(phase, day, i+1),
			Title:         g.title(typ, topic),
			Description:   Description(typ, topic, difficulty),
			Type:          typ,
			Category:      topic,
			Difficulty:    difficulty,
			Priority:      g.priority(typ, difficulty),
			EstimatedTime: EstimateHours(typ, difficulty, p.ExperienceLevel),
			Topics:        []string{topic},
			Resources:     resourcesFor(topic),
			Status:        StatusPending,
			Phase:         phase,
			Day:           day,
			CreatedAt:     created,
		})
	}
	return tasks
}

// TaskID builds the composite id of the index-th (1-based) task of a day.
func TaskID(phase, day, index int) string {
	return fmt.Sprintf("ai-task-%d-%d-%d", phase, day, index)
}

func (g *Generator) title(typ Type, topic string) string {
	templates := titleTemplates[typ]
	tmpl := templates[g.rng.IntN(len(templates))]
	return strings.ReplaceAll(tmpl, "{topic}", topic)
}

// Description renders the fixed per-type description for a difficulty.
func Description(typ Type, topic string, difficulty int) string {
	hard := difficulty >= 4
	switch typ {
	case TypeLearning:
		return fmt.Sprintf("Work through %s material on %s, taking notes on key ideas and examples.",
			pick(hard, "advanced", "intermediate"), topic)
	case TypePractice:
		return fmt.Sprintf("Apply %s by completing a %s hands-on exercise and committing your solution.",
			topic, pick(hard, "complex", "structured"))
	default:
		return fmt.Sprintf("Run a %s review of %s: revisit notes, redo an exercise, and list open questions.",
			pick(hard, "challenging", "comprehensive"), topic)
	}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// priority: learning at difficulty ≥4 or anything at 5 is high; practice is
// medium; everything else is a coin flip between medium and low.
func (g *Generator) priority(typ Type, difficulty int) Priority {
	switch {
	case (typ == TypeLearning && difficulty >= 4) || difficulty >= 5:
		return PriorityHigh
	case typ == TypePractice:
		return PriorityMedium
	case g.rng.IntN(2) == 0:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// EstimateHours scales the type's base time by difficulty and experience,
// rounded to one decimal.
func EstimateHours(typ Type, difficulty int, experience float64) float64 {
	h := baseHours[typ] * float64(difficulty) / 3
	switch {
	case experience >= 4:
		h *= 0.8
	case experience <= 2:
		h *= 1.3
	}
	return math.Round(h*10) / 10
}

func resourcesFor(topic string) []Resource {
	return []Resource{
		{Kind: "documentation", Title: topic + " Official Documentation", URL: "#"},
		{Kind: "video", Title: topic + " Video Tutorial", URL: "#"},
		{Kind: "exercise", Title: topic + " Practice Exercises", URL: "#"},
	}
}
