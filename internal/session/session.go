// Package session binds an engine to persistent storage. It restores the
// latest snapshot on open, saves after every mutation and mirrors completed
// tasks and chat turns into the journal.
//
// The engine and its latest snapshot are the source of truth: a mutation
// whose snapshot cannot be saved is rolled back. The task journal is a
// mirror written after the snapshot; a failed journal write is logged and
// does not undo the mutation.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/pathwise/internal/assistant"
	"github.com/abhisek/pathwise/internal/engine"
	"github.com/abhisek/pathwise/internal/profile"
	"github.com/abhisek/pathwise/internal/progress"
	"github.com/abhisek/pathwise/internal/roadmap"
	"github.com/abhisek/pathwise/internal/store"
	"github.com/abhisek/pathwise/internal/taskgen"
)

var (
	// ErrNoProfile is returned by operations that need a completed assessment.
	ErrNoProfile = errors.New("no learner profile: run the assessment first")

	// ErrNoRoadmap is returned by operations that need an active roadmap.
	ErrNoRoadmap = errors.New("no active roadmap: choose a learning path first")
)

// DefaultKeepSnapshots is how many snapshots survive each save.
const DefaultKeepSnapshots = 20

// Options configures a Session.
type Options struct {
	Logger        *zap.Logger
	HistorySize   int
	Seed          uint64
	RandSource    rand.Source
	KeepSnapshots int
	Clock         func() time.Time
}

// Session is one learner's engine plus its persistence. All methods are safe
// for concurrent use; each one runs to completion before the next starts.
type Session struct {
	mu      sync.Mutex
	engine  *engine.Engine
	snaps   store.SnapshotRepo
	journal store.JournalRepo
	log     *zap.Logger
	keep    int
	now     func() time.Time
}

// Open restores the latest snapshot, if any, into a new engine.
func Open(ctx context.Context, snaps store.SnapshotRepo, journal store.JournalRepo, opts Options) (*Session, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.KeepSnapshots <= 0 {
		opts.KeepSnapshots = DefaultKeepSnapshots
	}

	snap, err := snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	engOpts := []engine.Option{
		engine.WithLogger(opts.Logger),
		engine.WithClock(opts.Clock),
		engine.WithHistorySize(opts.HistorySize),
		engine.WithSeed(opts.Seed),
	}
	if opts.RandSource != nil {
		engOpts = append(engOpts, engine.WithRandSource(opts.RandSource))
	}
	if snap != nil && snap.SessionID != "" {
		engOpts = append(engOpts, engine.WithSessionID(snap.SessionID))
	}
	eng := engine.New(engOpts...)
	if snap != nil {
		eng.Restore(snap.Data.Engine)
	}

	return &Session{
		engine:  eng,
		snaps:   snaps,
		journal: journal,
		log:     opts.Logger,
		keep:    opts.KeepSnapshots,
		now:     opts.Clock,
	}, nil
}

// Engine exposes the underlying engine. Access through it is not
// synchronized; callers that share the session across goroutines read
// through Status instead.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Status is a copy of the learner state, safe to keep after the call.
type Status struct {
	SessionID  string
	Profile    profile.Profile
	HasProfile bool
	Roadmap    *roadmap.Roadmap
	Phase      int
	Day        int
	Tasks      []taskgen.Task
	Analytics  progress.Analytics
}

// Status returns a consistent copy of the engine's state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.engine.State()
	out := Status{
		SessionID: st.SessionID,
		Roadmap:   st.Roadmap,
		Phase:     st.Phase,
		Day:       st.Day,
		Tasks:     st.Tasks,
		Analytics: s.engine.LearningAnalytics(),
	}
	if st.Profile != nil {
		out.Profile, out.HasProfile = *st.Profile, true
	}
	return out
}

// Save writes a snapshot of the engine and prunes old ones.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

func (s *Session) save(ctx context.Context) error {
	snap := &store.Snapshot{
		SessionID: s.engine.ID(),
		Timestamp: s.now(),
		Data:      store.SnapshotData{Version: store.SnapshotVersion, Engine: s.engine.State()},
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return err
	}
	if err := s.snaps.Prune(ctx, s.keep); err != nil {
		// A failed prune only leaves extra rows behind.
		s.log.Warn("snapshot prune failed", zap.Error(err))
	}
	return nil
}

// commit saves the engine, restoring before when the save fails.
func (s *Session) commit(ctx context.Context, before engine.State) error {
	if err := s.save(ctx); err != nil {
		s.engine.Restore(before)
		s.log.Warn("snapshot save failed, state rolled back", zap.Error(err))
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Assess scores question-id → option-value answers and saves the profile.
func (s *Session) Assess(ctx context.Context, answers map[string]string) (profile.Profile, error) {
	responses, err := profile.ResponsesFromAnswers(answers)
	if err != nil {
		return profile.Profile{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.engine.State()
	p := s.engine.AnalyzeProfile(responses)
	if err := s.commit(ctx, before); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

// StartRoadmap generates a roadmap for the saved profile and makes it active.
func (s *Session) StartRoadmap(ctx context.Context, pathID string, months float64) (*roadmap.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.engine.Profile()
	if !ok {
		return nil, ErrNoProfile
	}
	before := s.engine.State()
	r, err := s.engine.GenerateRoadmap(pathID, months, p)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, before); err != nil {
		return nil, err
	}
	return r, nil
}

// Today returns the current day's tasks, generating them when none exist.
func (s *Session) Today(ctx context.Context) ([]taskgen.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tasks := s.engine.Tasks(); len(tasks) > 0 {
		return tasks, nil
	}
	phase, day := s.engine.Position()
	return s.generate(ctx, s.engine.State(), phase, day)
}

// Generate replaces the task list with fresh tasks for phase and day.
func (s *Session) Generate(ctx context.Context, phase, day int) ([]taskgen.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generate(ctx, s.engine.State(), phase, day)
}

func (s *Session) generate(ctx context.Context, before engine.State, phase, day int) ([]taskgen.Task, error) {
	r := s.engine.Roadmap()
	if r == nil {
		return nil, ErrNoRoadmap
	}
	p, _ := s.engine.Profile()
	tasks := s.engine.GenerateDailyTasks(r, phase, day, p)
	if len(tasks) == 0 {
		return tasks, nil
	}
	if err := s.commit(ctx, before); err != nil {
		return nil, err
	}
	return tasks, nil
}

// NextDay advances to the next study day and generates its tasks. done
// reports that the roadmap was already on its last day.
func (s *Session) NextDay(ctx context.Context) (tasks []taskgen.Task, done bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.Roadmap() == nil {
		return nil, false, ErrNoRoadmap
	}
	before := s.engine.State()
	phase, day, done := s.engine.NextDay()
	if done {
		return s.engine.Tasks(), true, nil
	}
	tasks, err = s.generate(ctx, before, phase, day)
	return tasks, false, err
}

// Complete marks one of today's tasks done, records progress, saves and
// mirrors the completion to the journal.
func (s *Session) Complete(ctx context.Context, taskID string, hours float64, submission, grade, quality string) (taskgen.Task, progress.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.engine.State()
	task, entry, err := s.engine.CompleteTaskByID(taskID, hours, submission, grade, quality)
	if err != nil {
		return taskgen.Task{}, progress.Entry{}, err
	}
	if err := s.commit(ctx, before); err != nil {
		return taskgen.Task{}, progress.Entry{}, err
	}

	_, err = s.journal.AppendTaskEvent(ctx, store.TaskEvent{
		SessionID:      s.engine.ID(),
		Timestamp:      entry.CompletedAt,
		TaskID:         task.ID,
		Title:          task.Title,
		Category:       task.Category,
		Type:           string(task.Type),
		Difficulty:     task.Difficulty,
		EstimatedHours: task.EstimatedTime,
		ActualHours:    task.ActualTime,
		Efficiency:     entry.Efficiency,
		Grade:          task.Grade,
		Quality:        quality,
	})
	if err != nil {
		s.log.Warn("journal task failed", zap.String("task", task.ID), zap.Error(err))
	}
	return task, entry, nil
}

// Chat answers a message using the engine's own learning context and logs
// the turn.
func (s *Session) Chat(ctx context.Context, text string) (assistant.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reply := s.engine.ProcessMessage(text, s.engine.LearningContext())
	_, err := s.journal.AppendChatEvent(ctx, store.ChatEvent{
		SessionID: s.engine.ID(),
		Timestamp: s.now(),
		UserText:  text,
		Intent:    string(reply.Intent),
		Response:  reply.Response,
	})
	if err != nil {
		return reply, fmt.Errorf("journal chat: %w", err)
	}
	return reply, nil
}

// RecentTasks returns up to limit journaled completions, newest first, across
// all sessions.
func (s *Session) RecentTasks(ctx context.Context, limit int) ([]store.TaskEvent, error) {
	return s.journal.QueryTaskEvents(ctx, store.QueryOpts{Limit: limit, Newest: true})
}

// RecentChat returns up to limit chat turns of the current session in
// chronological order.
func (s *Session) RecentChat(ctx context.Context, limit int) ([]store.ChatEvent, error) {
	s.mu.Lock()
	id := s.engine.ID()
	s.mu.Unlock()

	events, err := s.journal.QueryChatEvents(ctx, store.QueryOpts{
		SessionID: id,
		Limit:     limit,
		Newest:    true,
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(events)
	return events, nil
}

// Stats combines in-memory analytics with journal totals.
type Stats struct {
	Analytics       progress.Analytics
	Areas           []progress.AreaStat
	Recommendations []progress.Recommendation
	Journal         store.TaskStats
}

// Stats gathers analytics and recommendations.
func (s *Session) Stats(ctx context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.engine.LearningAnalytics()
	p, _ := s.engine.Profile()
	js, err := s.journal.TaskStats(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Analytics:       a,
		Areas:           s.engine.Areas(),
		Recommendations: s.engine.ImprovementRecommendations(p, a),
		Journal:         js,
	}, nil
}

// Reset wipes the engine, every snapshot and the journal.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reset()
	if err := s.snaps.DeleteAll(ctx); err != nil {
		return err
	}
	return s.journal.DeleteAll(ctx)
}
