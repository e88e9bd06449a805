package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/pathwise/internal/engine"
	"github.com/abhisek/pathwise/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{tableSnapshots, tableTaskEvents, tableChatEvents, "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pathwise.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if _, err := s.JournalRepo().AppendChatEvent(context.Background(), ChatEvent{UserText: "hi"}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	events, err := s.JournalRepo().QueryChatEvents(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[1].Sequence <= events[0].Sequence {
		t.Errorf("sequence did not survive reopen: %d then %d", events[0].Sequence, events[1].Sequence)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	e := engine.New()
	e.AnalyzeProfile([]profile.Response{{Category: "motivation", Weight: 5}})
	now := time.Now().UTC().Truncate(time.Second)
	in := &Snapshot{
		SessionID: e.ID(),
		Timestamp: now,
		Data:      SnapshotData{Version: SnapshotVersion, Engine: e.State()},
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if in.Sequence == 0 {
		t.Error("expected sequence to be assigned")
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != in.Sequence {
		t.Errorf("sequence = %d, want %d", snap.Sequence, in.Sequence)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.SessionID != e.ID() {
		t.Errorf("session = %q, want %q", snap.SessionID, e.ID())
	}
	if snap.Data.Engine.Profile == nil || snap.Data.Engine.Profile.Motivation != 4 {
		t.Errorf("profile not round-tripped: %+v", snap.Data.Engine.Profile)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: i + 1}})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := repo.Save(ctx, &Snapshot{Sequence: int64(i + 1), Data: SnapshotData{Version: 1}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, tableSnapshots); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Save(ctx, &Snapshot{Data: SnapshotData{Version: 1}}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, tableSnapshots); n != 2 {
		t.Errorf("remaining snapshots = %d, want 2", n)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n := countRows(t, s, tableSnapshots); n != 0 {
		t.Errorf("remaining snapshots = %d, want 0", n)
	}
}

func TestJournalTaskEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.JournalRepo()
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	events := []TaskEvent{
		{SessionID: "a", TaskID: "ai-task-1-1-1", Category: "HTML", ActualHours: 1, Efficiency: 200},
		{SessionID: "a", TaskID: "ai-task-1-1-2", Category: "CSS", ActualHours: 2, Efficiency: 100},
		{SessionID: "b", TaskID: "ai-task-1-1-1", Category: "Git", ActualHours: 3, Efficiency: 60},
	}
	var seqs []int64
	for i, ev := range events {
		ev.Timestamp = base.Add(time.Duration(i) * time.Hour)
		seq, err := repo.AppendTaskEvent(ctx, ev)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	all, err := repo.QueryTaskEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	for i, ev := range all {
		if ev.Sequence != seqs[i] {
			t.Errorf("event %d sequence = %d, want %d", i, ev.Sequence, seqs[i])
		}
	}
	if !all[1].Timestamp.Equal(base.Add(time.Hour)) {
		t.Errorf("timestamp = %v", all[1].Timestamp)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []string
	}{
		{"session", QueryOpts{SessionID: "a"}, []string{"HTML", "CSS"}},
		{"after", QueryOpts{After: seqs[0]}, []string{"CSS", "Git"}},
		{"before", QueryOpts{Before: seqs[2]}, []string{"HTML", "CSS"}},
		{"limit", QueryOpts{Limit: 1}, []string{"HTML"}},
		{"newest", QueryOpts{Newest: true, Limit: 2}, []string{"Git", "CSS"}},
		{"from", QueryOpts{From: base.Add(2 * time.Hour)}, []string{"Git"}},
		{"to", QueryOpts{To: base}, []string{"HTML"}},
	}
	for _, tt := range tests {
		got, err := repo.QueryTaskEvents(ctx, tt.opts)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		var cats []string
		for _, ev := range got {
			cats = append(cats, ev.Category)
		}
		if fmt.Sprint(cats) != fmt.Sprint(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, cats, tt.want)
		}
	}

	stats, err := repo.TaskStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Count != 3 || stats.Hours != 6 {
		t.Errorf("stats = %+v, want count 3 hours 6", stats)
	}
	if stats.AverageEfficiency < 119.9 || stats.AverageEfficiency > 120.1 {
		t.Errorf("average efficiency = %v, want 120", stats.AverageEfficiency)
	}
}

func TestJournalEmptyStats(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.JournalRepo().TaskStats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != (TaskStats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestJournalSharedSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.JournalRepo()
	ctx := context.Background()

	first, err := repo.AppendChatEvent(ctx, ChatEvent{UserText: "hello", Intent: "greeting", Response: "hi"})
	if err != nil {
		t.Fatalf("append chat: %v", err)
	}
	second, err := repo.AppendTaskEvent(ctx, TaskEvent{TaskID: "t"})
	if err != nil {
		t.Fatalf("append task: %v", err)
	}
	snap := &Snapshot{}
	if err := s.SnapshotRepo().Save(ctx, snap); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if !(first < second && second < snap.Sequence) {
		t.Errorf("sequences not global: chat=%d task=%d snapshot=%d", first, second, snap.Sequence)
	}

	chats, err := repo.QueryChatEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query chat: %v", err)
	}
	if len(chats) != 1 || chats[0].Intent != "greeting" || chats[0].Response != "hi" {
		t.Errorf("chats = %+v", chats)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if n := countRows(t, s, tableChatEvents) + countRows(t, s, tableTaskEvents); n != 0 {
		t.Errorf("remaining events = %d, want 0", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PATHWISE_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if p != filepath.Join(dir, "custom", "x.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("PATHWISE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("xdg path: %v", err)
	}
	if want := filepath.Join(dir, "pathwise", "pathwise.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
}
