package taskgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_Lifecycle(t *testing.T) {
	task := Task{ID: TaskID(1, 1, 1), Status: StatusPending, EstimatedTime: 2, Difficulty: 4, Category: "CSS"}

	task.Start()
	assert.Equal(t, StatusInProgress, task.Status)

	at := time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC)
	require.NoError(t, task.Complete(1, "code", "A", at))
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Equal(t, 1.0, task.ActualTime)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, at, *task.CompletedAt)

	// Start after completion is a no-op.
	task.Start()
	assert.Equal(t, StatusCompleted, task.Status)

	err := task.Complete(3, "", "", at.Add(time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 1.0, task.ActualTime)
}

func TestTask_Completion(t *testing.T) {
	task := Task{EstimatedTime: 2, Difficulty: 4, Category: "CSS"}
	require.NoError(t, task.Complete(1, "", "", time.Now()))

	c := task.Completion("good")
	assert.Equal(t, 200.0, c.Efficiency)
	assert.Equal(t, 1.0, c.TimeSpent)
	assert.Equal(t, 2.0, c.EstimatedTime)
	assert.Equal(t, "CSS", c.Category)
	assert.Equal(t, 4, c.Difficulty)
	assert.Equal(t, "good", c.Quality)
}
