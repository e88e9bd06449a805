package progress

import (
	"cmp"
	"slices"
	"time"
)

// ConsistencyTarget is the number of completed tasks treated as fully consistent.
const ConsistencyTarget = 10

// RecentLimit is the number of entries reported as recent tasks.
const RecentLimit = 5

// areaCount is how many strong and improvement areas are reported.
const areaCount = 2

// Completion is the caller-supplied description of a finished task.
// Efficiency is trusted as given.
type Completion struct {
	TimeSpent     float64 `json:"timeSpent"`
	EstimatedTime float64 `json:"estimatedTime"`
	Efficiency    float64 `json:"efficiency"`
	Difficulty    int     `json:"difficulty"`
	Category      string  `json:"category"`
	Quality       string  `json:"quality"`
}

// Entry is one append-only record of a completed task.
type Entry struct {
	TaskID        string    `json:"taskId"`
	CompletedAt   time.Time `json:"completedAt"`
	TimeSpent     float64   `json:"timeSpent"`
	EstimatedTime float64   `json:"estimatedTime"`
	Efficiency    float64   `json:"efficiency"`
	Difficulty    int       `json:"difficulty"`
	Category      string    `json:"category"`
	Quality       string    `json:"quality"`
}

// Data is the running progress state.
type Data struct {
	CompletedTasks      []Entry  `json:"completedTasks"`
	TotalTasksCompleted int      `json:"totalTasksCompleted"`
	TimeSpentTotal      float64  `json:"timeSpentTotal"`
	AverageEfficiency   float64  `json:"averageEfficiency"`
	ConsistencyRate     float64  `json:"consistencyRate"`
	StrongAreas         []string `json:"strongAreas"`
	ImprovementAreas    []string `json:"improvementAreas"`
}

// AreaStat aggregates completed entries of one category.
type AreaStat struct {
	Category          string  `json:"category"`
	Count             int     `json:"count"`
	AverageEfficiency float64 `json:"averageEfficiency"`
}

// Tracker owns the progress data of one learner. It is not safe for
// concurrent use.
type Tracker struct {
	data  Data
	areas []AreaStat
	now   func() time.Time
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the completion timestamp source.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{now: time.Now}
	for _, o := range opts {
		o(t)
	}
	t.data.StrongAreas = []string{}
	t.data.ImprovementAreas = []string{}
	return t
}

// Track appends a completed task and refreshes every aggregate.
func (t *Tracker) Track(taskID string, c Completion) Entry {
	e := Entry{
		TaskID:        taskID,
		CompletedAt:   t.now(),
		TimeSpent:     c.TimeSpent,
		EstimatedTime: c.EstimatedTime,
		Efficiency:    c.Efficiency,
		Difficulty:    c.Difficulty,
		Category:      c.Category,
		Quality:       c.Quality,
	}
	t.data.CompletedTasks = append(t.data.CompletedTasks, e)
	t.data.TimeSpentTotal += e.TimeSpent
	t.refresh()
	return e
}

// refresh recomputes all derived fields from the entry list.
func (t *Tracker) refresh() {
	d := &t.data
	d.TotalTasksCompleted = len(d.CompletedTasks)

	var sum float64
	for _, e := range d.CompletedTasks {
		sum += e.Efficiency
	}
	d.AverageEfficiency = 0
	if d.TotalTasksCompleted > 0 {
		d.AverageEfficiency = sum / float64(d.TotalTasksCompleted)
	}
	d.ConsistencyRate = min(1, float64(d.TotalTasksCompleted)/ConsistencyTarget)

	t.updateAreas()
}

// updateAreas ranks categories by mean efficiency. With fewer than four
// categories the strong and improvement lists overlap.
func (t *Tracker) updateAreas() {
	byCat := make(map[string]*AreaStat)
	var order []string
	sums := make(map[string]float64)
	for _, e := range t.data.CompletedTasks {
		st, ok := byCat[e.Category]
		if !ok {
			st = &AreaStat{Category: e.Category}
			byCat[e.Category] = st
			order = append(order, e.Category)
		}
		st.Count++
		sums[e.Category] += e.Efficiency
	}

	areas := make([]AreaStat, 0, len(order))
	for _, cat := range order {
		st := byCat[cat]
		st.AverageEfficiency = sums[cat] / float64(st.Count)
		areas = append(areas, *st)
	}
	slices.SortStableFunc(areas, func(a, b AreaStat) int {
		if c := cmp.Compare(b.AverageEfficiency, a.AverageEfficiency); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	t.areas = areas

	strong := make([]string, 0, areaCount)
	for i := 0; i < areaCount && i < len(areas); i++ {
		strong = append(strong, areas[i].Category)
	}
	weak := make([]string, 0, areaCount)
	for i := max(0, len(areas)-areaCount); i < len(areas); i++ {
		weak = append(weak, areas[i].Category)
	}
	t.data.StrongAreas = strong
	t.data.ImprovementAreas = weak
}

// Areas returns per-category stats sorted by descending mean efficiency.
func (t *Tracker) Areas() []AreaStat {
	return slices.Clone(t.areas)
}

// Data returns a copy of the current progress data.
func (t *Tracker) Data() Data {
	return t.data.clone()
}

// Restore replaces the tracker state with previously exported data.
// Derived fields are recomputed from the entries, so only CompletedTasks
// is authoritative.
func (t *Tracker) Restore(d Data) {
	t.data = Data{CompletedTasks: slices.Clone(d.CompletedTasks)}
	for _, e := range t.data.CompletedTasks {
		t.data.TimeSpentTotal += e.TimeSpent
	}
	t.refresh()
}

// Reset clears all progress.
func (t *Tracker) Reset() {
	t.Restore(Data{})
}

func (d Data) clone() Data {
	out := d
	out.CompletedTasks = slices.Clone(d.CompletedTasks)
	out.StrongAreas = slices.Clone(d.StrongAreas)
	out.ImprovementAreas = slices.Clone(d.ImprovementAreas)
	return out
}
