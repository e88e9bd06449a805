package engine

import (
	"slices"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/taskgen"
)

// State is a JSON-serializable snapshot of an engine for caller-side
// persistence.
type State struct {
	SessionID string           `json:"sessionId"`
	Profile   *profile.Profile `json:"profile,omitempty"`
	Roadmap   *roadmap.Roadmap `json:"roadmap,omitempty"`
	Phase     int              `json:"phase"`
	Day       int              `json:"day"`
	Tasks     []taskgen.Task   `json:"tasks"`
	Progress  progress.Data    `json:"progress"`
}

// State exports the engine's learner state. Chat history is not included.
func (e *Engine) State() State {
	s := State{
		SessionID: e.id,
		Phase:     e.phase,
		Day:       e.day,
		Tasks:     slices.Clone(e.tasks),
		Progress:  e.tracker.Data(),
	}
	if s.Tasks == nil {
		s.Tasks = []taskgen.Task{}
	}
	if e.profile != nil {
		p := *e.profile
		s.Profile = &p
	}
	if e.roadmap != nil {
		r := *e.roadmap
		r.Phases = slices.Clone(e.roadmap.Phases)
		s.Roadmap = &r
	}
	return s
}

// Restore replaces the learner state. The session id is kept unless the
// state carries one. Progress aggregates are recomputed from the entries.
func (e *Engine) Restore(s State) {
	if s.SessionID != "" && s.SessionID != e.id {
		e.id = s.SessionID
		e.bindLogger()
	}
	e.profile = nil
	if s.Profile != nil {
		p := *s.Profile
		e.profile = &p
	}
	e.roadmap = s.Roadmap
	e.phase, e.day = max(1, s.Phase), max(1, s.Day)
	e.tasks = slices.Clone(s.Tasks)
	e.tracker.Restore(s.Progress)
	e.log.Debug("state restored",
		zap.Bool("profile", e.profile != nil),
		zap.Bool("roadmap", e.roadmap != nil),
		zap.Int("completed", s.Progress.TotalTasksCompleted),
	)
}

// Reset clears all learner state and chat history, keeping the session id.
func (e *Engine) Reset() {
	e.Restore(State{})
	e.chat.ClearHistory()
}
