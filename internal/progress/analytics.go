package progress

// Analytics is a point-in-time view of progress for display and chat.
type Analytics struct {
	Data
	RecentTasks     []Entry `json:"recentTasks"`
	AverageTaskTime float64 `json:"averageTaskTime"`
}

// Analytics returns the full progress data plus the last RecentLimit
// entries and the mean hours per task.
func (t *Tracker) Analytics() Analytics {
	d := t.data.clone()
	a := Analytics{Data: d, RecentTasks: []Entry{}}

	n := len(d.CompletedTasks)
	if n > 0 {
		start := max(0, n-RecentLimit)
		a.RecentTasks = append(a.RecentTasks, d.CompletedTasks[start:]...)
		a.AverageTaskTime = d.TimeSpentTotal / float64(n)
	}
	return a
}
