package taskgen

import (
	"errors"
	"time"

	"github.com/abhisek/pathwise/internal/progress"
)

// ErrAlreadyCompleted is returned when completing a task twice.
var ErrAlreadyCompleted = errors.New("task already completed")

// Start moves a pending task to in-progress. Other states are unchanged.
func (t *Task) Start() {
	if t.Status == StatusPending {
		t.Status = StatusInProgress
	}
}

// Complete marks the task done with the time actually spent (hours).
func (t *Task) Complete(actualHours float64, submissionType, grade string, at time.Time) error {
	if t.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	t.Status = StatusCompleted
	t.ActualTime = actualHours
	t.SubmissionType = submissionType
	t.Grade = grade
	t.CompletedAt = &at
	return nil
}

// Completion builds the tracker input for a completed task.
func (t *Task) Completion(quality string) progress.Completion {
	return progress.Completion{
		TimeSpent:     t.ActualTime,
		EstimatedTime: t.EstimatedTime,
		Efficiency:    progress.Efficiency(t.EstimatedTime, t.ActualTime),
		Difficulty:    t.Difficulty,
		Category:      t.Category,
		Quality:       quality,
	}
}
