package catalog

import "slices"

// Difficulty is the overall level of a learning path.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// DurationRange is the expected length of a path in months.
type DurationRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Phase is one ordered stage of a learning path template.
type Phase struct {
	Number   int      `yaml:"phase" json:"phase"`
	Title    string   `yaml:"title" json:"title"`
	Duration float64  `yaml:"duration" json:"duration"` // weeks
	Topics   []string `yaml:"topics" json:"topics"`
	Projects []string `yaml:"projects" json:"projects"`
}

// LearningPath is a static roadmap template.
type LearningPath struct {
	ID          string        `yaml:"id" json:"id"`
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Difficulty  Difficulty    `yaml:"difficulty" json:"difficulty"`
	Duration    DurationRange `yaml:"duration" json:"duration"`
	Phases      []Phase       `yaml:"phases" json:"phases"`
}

// Category tags an assessment question with the profile dimension it feeds.
type Category string

const (
	CategoryLearningStyle       Category = "learningStyle"
	CategoryTechnicalBackground Category = "technicalBackground"
	CategoryTimeCommitment      Category = "timeCommitment"
	CategoryMotivation          Category = "motivation"
)

// AllCategories returns the question categories in section order.
func AllCategories() []Category {
	return []Category{
		CategoryLearningStyle,
		CategoryTechnicalBackground,
		CategoryTimeCommitment,
		CategoryMotivation,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return slices.Contains(AllCategories(), c)
}

// DisplayName returns a human-readable section heading.
func (c Category) DisplayName() string {
	switch c {
	case CategoryLearningStyle:
		return "Learning Style"
	case CategoryTechnicalBackground:
		return "Technical Background"
	case CategoryTimeCommitment:
		return "Time Commitment"
	case CategoryMotivation:
		return "Motivation & Goals"
	default:
		return string(c)
	}
}

// Option is one selectable answer. Weight is in [1, 5].
type Option struct {
	Value  string `yaml:"value" json:"value"`
	Label  string `yaml:"label" json:"label"`
	Weight int    `yaml:"weight" json:"weight"`
}

// Question is a single assessment question.
type Question struct {
	ID       string   `yaml:"id" json:"id"`
	Text     string   `yaml:"question" json:"question"`
	Category Category `yaml:"category" json:"category"`
	Options  []Option `yaml:"options" json:"options"`
}

// Option returns the option with the given value.
func (q Question) Option(value string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

func (p LearningPath) clone() LearningPath {
	out := p
	out.Phases = make([]Phase, len(p.Phases))
	for i, ph := range p.Phases {
		out.Phases[i] = ph.Clone()
	}
	return out
}

// Clone returns a deep copy of the phase.
func (ph Phase) Clone() Phase {
	out := ph
	out.Topics = slices.Clone(ph.Topics)
	out.Projects = slices.Clone(ph.Projects)
	return out
}

func (q Question) clone() Question {
	out := q
	out.Options = slices.Clone(q.Options)
	return out
}
