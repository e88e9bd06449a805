package store

import (
	"context"
	"time"

	"github.com/abhisek/pathwise/internal/engine"
)

// QueryOpts configures journal queries with filtering and pagination.
type QueryOpts struct {
	SessionID string    // exact match when set
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Newest    bool      // descending sequence order, so Limit keeps the latest
}

// SnapshotVersion is the current SnapshotData layout. Version 2 nests the
// roadmap schedule's study and rest days under weeklyStructure.
const SnapshotVersion = 2

// SnapshotData is the persisted engine state.
type SnapshotData struct {
	Version int          `json:"version"`
	Engine  engine.State `json:"engine"`
}

// Snapshot is a point-in-time capture of one session.
type Snapshot struct {
	ID        int64
	SessionID string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages engine snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. A zero Sequence is assigned from the
	// global counter; ID and Sequence are written back to snap.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the keep most recent snapshots.
	Prune(ctx context.Context, keep int) error

	// DeleteAll removes every snapshot.
	DeleteAll(ctx context.Context) error
}

// TaskEvent mirrors one completed task.
type TaskEvent struct {
	Sequence       int64
	SessionID      string
	Timestamp      time.Time
	TaskID         string
	Title          string
	Category       string
	Type           string
	Difficulty     int
	EstimatedHours float64
	ActualHours    float64
	Efficiency     float64
	Grade          string
	Quality        string
}

// ChatEvent records one dispatcher turn.
type ChatEvent struct {
	Sequence  int64
	SessionID string
	Timestamp time.Time
	UserText  string
	Intent    string
	Response  string
}

// TaskStats aggregates the task journal.
type TaskStats struct {
	Count             int
	Hours             float64
	AverageEfficiency float64
}

// JournalRepo provides append and query access to journal events.
type JournalRepo interface {
	// AppendTaskEvent records a completed task. Sequence is assigned and
	// a zero Timestamp defaults to now.
	AppendTaskEvent(ctx context.Context, ev TaskEvent) (int64, error)

	// AppendChatEvent records a chat turn.
	AppendChatEvent(ctx context.Context, ev ChatEvent) (int64, error)

	// QueryTaskEvents returns task events in sequence order.
	QueryTaskEvents(ctx context.Context, opts QueryOpts) ([]TaskEvent, error)

	// QueryChatEvents returns chat events in sequence order.
	QueryChatEvents(ctx context.Context, opts QueryOpts) ([]ChatEvent, error)

	// TaskStats aggregates every task event.
	TaskStats(ctx context.Context) (TaskStats, error)

	// DeleteAll clears both journal tables.
	DeleteAll(ctx context.Context) error
}
