package taskgen

import "time"

// Type is the kind of work a task asks for.
type Type string

const (
	TypeLearning Type = "learning"
	TypePractice Type = "practice"
	TypeReview   Type = "review"
)

// AllTypes returns the task types in draw order.
func AllTypes() []Type {
	return []Type{TypeLearning, TypePractice, TypeReview}
}

// Priority orders tasks within a day.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Resource is a placeholder study resource attached to a task.
type Resource struct {
	Kind  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Task is one generated unit of daily work.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Type           Type       `json:"type"`
	Category       string     `json:"category"`
	Difficulty     int        `json:"difficulty"`
	Priority       Priority   `json:"priority"`
	EstimatedTime  float64    `json:"estimatedTime"` // hours
	Topics         []string   `json:"topics"`
	Resources      []Resource `json:"resources"`
	Status         Status     `json:"status"`
	Phase          int        `json:"phase"`
	Day            int        `json:"day"`
	CreatedAt      time.Time  `json:"createdAt"`
	ActualTime     float64    `json:"actualTime,omitempty"`
	SubmissionType string     `json:"submissionType,omitempty"`
	Grade          string     `json:"grade,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
}
