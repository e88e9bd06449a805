package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// journalRepo implements JournalRepo with the ent SQL builder.
type journalRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *journalRepo) AppendTaskEvent(ctx context.Context, ev TaskEvent) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableTaskEvents).
		Columns("sequence", "session_id", "timestamp", "task_id", "title", "category",
			"task_type", "difficulty", "estimated_hours", "actual_hours", "efficiency", "grade", "quality").
		Values(seqNum, ev.SessionID, ev.Timestamp.UnixNano(), ev.TaskID, ev.Title, ev.Category,
			ev.Type, ev.Difficulty, ev.EstimatedHours, ev.ActualHours, ev.Efficiency, ev.Grade, ev.Quality).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save task event: %w", err)
	}
	return seqNum, nil
}

func (r *journalRepo) AppendChatEvent(ctx context.Context, ev ChatEvent) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableChatEvents).
		Columns("sequence", "session_id", "timestamp", "user_text", "intent", "response").
		Values(seqNum, ev.SessionID, ev.Timestamp.UnixNano(), ev.UserText, ev.Intent, ev.Response).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("save chat event: %w", err)
	}
	return seqNum, nil
}

func (r *journalRepo) QueryTaskEvents(ctx context.Context, opts QueryOpts) ([]TaskEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "session_id", "timestamp", "task_id", "title", "category",
			"task_type", "difficulty", "estimated_hours", "actual_hours", "efficiency", "grade", "quality").
		From(entsql.Table(tableTaskEvents))
	query, args := applyOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query task events: %w", err)
	}
	defer rows.Close()

	var out []TaskEvent
	for rows.Next() {
		var (
			ev TaskEvent
			ts int64
		)
		if err := rows.Scan(&ev.Sequence, &ev.SessionID, &ts, &ev.TaskID, &ev.Title, &ev.Category,
			&ev.Type, &ev.Difficulty, &ev.EstimatedHours, &ev.ActualHours, &ev.Efficiency, &ev.Grade, &ev.Quality); err != nil {
			return nil, fmt.Errorf("scan task event: %w", err)
		}
		ev.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *journalRepo) QueryChatEvents(ctx context.Context, opts QueryOpts) ([]ChatEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "session_id", "timestamp", "user_text", "intent", "response").
		From(entsql.Table(tableChatEvents))
	query, args := applyOpts(sel, opts).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query chat events: %w", err)
	}
	defer rows.Close()

	var out []ChatEvent
	for rows.Next() {
		var (
			ev ChatEvent
			ts int64
		)
		if err := rows.Scan(&ev.Sequence, &ev.SessionID, &ts, &ev.UserText, &ev.Intent, &ev.Response); err != nil {
			return nil, fmt.Errorf("scan chat event: %w", err)
		}
		ev.Timestamp = time.Unix(0, ts).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *journalRepo) TaskStats(ctx context.Context) (TaskStats, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*"), entsql.Sum("actual_hours"), entsql.Avg("efficiency")).
		From(entsql.Table(tableTaskEvents)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return TaskStats{}, fmt.Errorf("query task stats: %w", err)
	}
	defer rows.Close()

	var (
		stats TaskStats
		hours sql.NullFloat64
		eff   sql.NullFloat64
	)
	if rows.Next() {
		if err := rows.Scan(&stats.Count, &hours, &eff); err != nil {
			return TaskStats{}, fmt.Errorf("scan task stats: %w", err)
		}
	}
	stats.Hours = hours.Float64
	stats.AverageEfficiency = eff.Float64
	return stats, rows.Err()
}

func (r *journalRepo) DeleteAll(ctx context.Context) error {
	for _, table := range []string{tableTaskEvents, tableChatEvents} {
		query, args := entsql.Dialect(dialect.SQLite).Delete(table).Query()
		var res sql.Result
		if err := r.drv.Exec(ctx, query, args, &res); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// applyOpts adds QueryOpts filters, sequence order and the limit.
func applyOpts(sel *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	if opts.Newest {
		sel.OrderBy(entsql.Desc("sequence"))
	} else {
		sel.OrderBy(entsql.Asc("sequence"))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel
}
