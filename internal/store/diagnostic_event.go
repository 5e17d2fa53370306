package store

import (
	"context"
	"fmt"
	"os"
	"time"
)

func (r *eventRepo) AppendDiagnostic(ctx context.Context, data DiagnosticEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO diagnostic_events (sequence, timestamp, source, message, detail)
		VALUES (?, ?, ?, ?, ?)`,
		seq, formatTime(time.Now()), data.Source, data.Message, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("append diagnostic: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryDiagnostics(ctx context.Context, opts QueryOpts) ([]DiagnosticEvent, error) {
	where, args := whereClause(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, timestamp, source, message, detail FROM diagnostic_events`+where+limitClause(opts),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	var out []DiagnosticEvent
	for rows.Next() {
		var (
			ev DiagnosticEvent
			ts string
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.Source, &ev.Message, &ev.Detail); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		if ev.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostics: %w", err)
	}
	return out, nil
}

// RecordDiagnostic appends a diagnostic built from cause. Nil repos are
// ignored and append failures only print a warning: diagnostics must never
// break play.
func RecordDiagnostic(ctx context.Context, repo EventRepo, source, message string, cause error) {
	if repo == nil {
		return
	}
	detail := ""
	if cause != nil {
		detail = cause.Error()
	}
	if err := repo.AppendDiagnostic(ctx, DiagnosticEventData{
		Source:  source,
		Message: message,
		Detail:  detail,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record %s diagnostic: %v\n", source, err)
	}
}
