// Package engine composes the profiler, roadmap generator, task generator,
// progress tracker and chat dispatcher behind one per-session object.
//
// An Engine owns all mutable learner state. Construct one per session and
// pass it to whatever needs it; nothing here is package-level.
package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/assistant"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/taskgen"
)

// ErrTaskNotFound is returned when completing a task id that is not in the
// current day's task list.
var ErrTaskNotFound = errors.New("task not found")

// Engine is a single learner's session. It is not safe for concurrent use.
type Engine struct {
	id      string
	base    *zap.Logger
	log     *zap.Logger // base with the session id attached
	now     func() time.Time
	gen     *taskgen.Generator
	tracker *progress.Tracker
	chat    *assistant.Dispatcher

	profile *profile.Profile
	roadmap *roadmap.Roadmap
	phase   int
	day     int
	tasks   []taskgen.Task
}

type options struct {
	log         *zap.Logger
	src         rand.Source
	now         func() time.Time
	historySize int
	sessionID   string
}

// Option configures an Engine.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRandSource fixes the task generator's random source.
func WithRandSource(src rand.Source) Option {
	return func(o *options) { o.src = src }
}

// WithSeed seeds the task generator deterministically. Zero keeps the
// clock-seeded default.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		if seed != 0 {
			o.src = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
		}
	}
}

// WithClock overrides the time source for tasks, progress and chat turns.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHistorySize sets the chat history capacity in turns.
func WithHistorySize(n int) Option {
	return func(o *options) { o.historySize = n }
}

// WithSessionID reuses an existing session id instead of minting one.
func WithSessionID(id string) Option {
	return func(o *options) { o.sessionID = id }
}

// New creates an empty engine.
func New(opts ...Option) *Engine {
	o := options{
		log:         zap.NewNop(),
		now:         time.Now,
		historySize: assistant.DefaultHistorySize,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.sessionID == "" {
		o.sessionID = uuid.NewString()
	}

	e := &Engine{
		id:      o.sessionID,
		base:    o.log,
		now:     o.now,
		gen:     taskgen.New(o.src, taskgen.WithClock(o.now)),
		tracker: progress.NewTracker(progress.WithClock(o.now)),
		phase:   1,
		day:     1,
	}
	e.bindLogger()
	e.chat = assistant.New(
		assistant.WithHistorySize(o.historySize),
		assistant.WithAnalytics(e.tracker),
		assistant.WithClock(o.now),
	)
	return e
}

func (e *Engine) bindLogger() {
	e.log = e.base.With(zap.String("session", e.id))
}

// ID returns the session id.
func (e *Engine) ID() string { return e.id }

// AnalyzeProfile scores assessment responses and keeps the result as the
// active profile.
func (e *Engine) AnalyzeProfile(responses []profile.Response) profile.Profile {
	p := profile.Analyze(responses)
	e.profile = &p
	e.log.Debug("profile analyzed",
		zap.Int("responses", len(responses)),
		zap.String("style", string(p.PreferredStyle)),
		zap.Float64("experience", p.ExperienceLevel),
	)
	return p
}

// Profile returns the active profile, if any.
func (e *Engine) Profile() (profile.Profile, bool) {
	if e.profile == nil {
		return profile.Profile{}, false
	}
	return *e.profile, true
}

// GenerateRoadmap personalizes a learning path and makes it the active
// roadmap, resetting the position to phase 1, day 1.
func (e *Engine) GenerateRoadmap(pathID string, months float64, p profile.Profile) (*roadmap.Roadmap, error) {
	r, err := roadmap.Generate(pathID, months, p)
	if err != nil {
		e.log.Warn("roadmap generation failed", zap.String("path", pathID), zap.Error(err))
		return nil, err
	}
	e.roadmap = r
	e.phase, e.day = 1, 1
	e.tasks = nil
	e.log.Debug("roadmap generated",
		zap.String("path", pathID),
		zap.Float64("months", months),
		zap.Int("phases", len(r.Phases)),
		zap.Float64("success", r.SuccessPrediction),
	)
	return r, nil
}

// Roadmap returns the active roadmap, or nil.
func (e *Engine) Roadmap() *roadmap.Roadmap { return e.roadmap }

// GenerateDailyTasks produces tasks for a phase and day. When r is the
// active roadmap, the tasks become the current day's list and the position
// moves to (phase, day).
func (e *Engine) GenerateDailyTasks(r *roadmap.Roadmap, phase, day int, p profile.Profile) []taskgen.Task {
	tasks := e.gen.GenerateDaily(r, phase, day, p)
	if r != nil && r == e.roadmap && len(tasks) > 0 {
		e.phase, e.day = phase, day
		e.tasks = slices.Clone(tasks)
	}
	e.log.Debug("daily tasks generated",
		zap.Int("phase", phase),
		zap.Int("day", day),
		zap.Int("count", len(tasks)),
	)
	return tasks
}

// Position returns the current phase and day.
func (e *Engine) Position() (phase, day int) { return e.phase, e.day }

// NextDay moves to the following study day of the active roadmap and clears
// the current task list. done reports that the roadmap's last day was
// already reached, in which case the position is unchanged.
func (e *Engine) NextDay() (phase, day int, done bool) {
	phase, day, done = e.roadmap.Next(e.phase, e.day)
	if !done {
		e.phase, e.day = phase, day
		e.tasks = nil
	}
	e.log.Debug("advanced day", zap.Int("phase", e.phase), zap.Int("day", e.day), zap.Bool("done", done))
	return e.phase, e.day, done
}

// Tasks returns a copy of the current day's tasks.
func (e *Engine) Tasks() []taskgen.Task { return slices.Clone(e.tasks) }

// TrackProgress records a completion event.
func (e *Engine) TrackProgress(taskID string, c progress.Completion) progress.Entry {
	entry := e.tracker.Track(taskID, c)
	e.log.Debug("progress tracked",
		zap.String("task", taskID),
		zap.String("category", c.Category),
		zap.Float64("efficiency", c.Efficiency),
	)
	return entry
}

// CalculateEfficiency compares estimated and actual hours as a percentage.
func (e *Engine) CalculateEfficiency(estimated, actual float64) float64 {
	return progress.Efficiency(estimated, actual)
}

// LearningAnalytics returns a snapshot of progress analytics.
func (e *Engine) LearningAnalytics() progress.Analytics {
	return e.tracker.Analytics()
}

// Areas returns per-category efficiency stats, strongest first.
func (e *Engine) Areas() []progress.AreaStat {
	return e.tracker.Areas()
}

// ImprovementRecommendations derives up to three tips.
func (e *Engine) ImprovementRecommendations(p profile.Profile, a progress.Analytics) []progress.Recommendation {
	return progress.Recommendations(p, a)
}

// ProcessMessage answers a chat message. Analytics in the reply always come
// from this engine's tracker.
func (e *Engine) ProcessMessage(text string, ctx assistant.Context) assistant.Reply {
	reply := e.chat.Process(text, ctx)
	e.log.Debug("message processed", zap.String("intent", string(reply.Intent)))
	return reply
}

// LearningContext builds a chat context from the engine's own state.
func (e *Engine) LearningContext() assistant.Context {
	ctx := assistant.Context{}
	if e.roadmap != nil {
		ctx.LearningData = &assistant.LearningData{Phase: e.phase, Day: e.day, PathTitle: e.roadmap.Title}
	}
	if e.profile != nil {
		p := *e.profile
		ctx.Profile = &p
	}
	a := e.tracker.Analytics()
	ctx.Progress = &a
	return ctx
}

// ChatHistory returns the retained conversation, oldest first.
func (e *Engine) ChatHistory() []assistant.Turn { return e.chat.History() }

// CompleteTask marks t completed and records it with the tracker.
func (e *Engine) CompleteTask(t *taskgen.Task, actualHours float64, submission, grade, quality string) (progress.Entry, error) {
	if err := t.Complete(actualHours, submission, grade, e.now()); err != nil {
		return progress.Entry{}, fmt.Errorf("complete %s: %w", t.ID, err)
	}
	return e.TrackProgress(t.ID, t.Completion(quality)), nil
}

// CompleteTaskByID completes one of the current day's tasks and returns the
// updated task.
func (e *Engine) CompleteTaskByID(id string, actualHours float64, submission, grade, quality string) (taskgen.Task, progress.Entry, error) {
	i := slices.IndexFunc(e.tasks, func(t taskgen.Task) bool { return t.ID == id })
	if i < 0 {
		return taskgen.Task{}, progress.Entry{}, fmt.Errorf("complete %s: %w", id, ErrTaskNotFound)
	}
	entry, err := e.CompleteTask(&e.tasks[i], actualHours, submission, grade, quality)
	if err != nil {
		return taskgen.Task{}, progress.Entry{}, err
	}
	return e.tasks[i], entry, nil
}
