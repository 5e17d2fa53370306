package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	daily := 0
	if data.Daily {
		daily = 1
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events (
			sequence, timestamp, session_id, action, mode, daily, score, level,
			questions_answered, questions_correct, duration_secs
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, formatTime(time.Now()), data.SessionID, data.Action, data.Mode, daily,
		data.Score, data.Level, data.QuestionsAnswered, data.QuestionsCorrect, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	where, args := whereClause(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, session_id, action, mode, daily, score, level,
			questions_answered, questions_correct, duration_secs
		FROM session_events`+where+limitClause(opts),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			ev    SessionEvent
			ts    string
			daily int
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.SessionID, &ev.Action, &ev.Mode, &daily,
			&ev.Score, &ev.Level, &ev.QuestionsAnswered, &ev.QuestionsCorrect, &ev.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		if ev.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		ev.Daily = daily != 0
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return out, nil
}
