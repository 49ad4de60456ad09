package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

// Record appends event and sets its ID.
func (j *SQLiteJournal) Record(ctx context.Context, event *model.ScanEvent) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEvent(event); err != nil {
		return err
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO scan_events (session_id, code, source, accepted, scanned_at)
		VALUES (?, ?, ?, ?, ?)`,
		event.SessionID, event.Code, string(event.Source), event.Accepted, event.ScannedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record scan event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read event id: %w", err)
	}
	event.ID = id
	return nil
}

// Events returns matching events, newest first.
func (j *SQLiteJournal) Events(ctx context.Context, filter service.EventFilter) ([]model.ScanEvent, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if filter.SessionID != "" {
		where = append(where, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.AcceptedOnly {
		where = append(where, "accepted = 1")
	}

	query := `SELECT id, session_id, code, source, accepted, scanned_at FROM scan_events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY scanned_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan events: %w", err)
	}
	defer rows.Close()

	var events []model.ScanEvent
	for rows.Next() {
		var (
			e         model.ScanEvent
			source    string
			scannedAt int64
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Code, &source, &e.Accepted, &scannedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		if e.Source, err = model.ParseScanSource(source); err != nil {
			return nil, fmt.Errorf("event %d: %w", e.ID, err)
		}
		e.ScannedAt = time.Unix(0, scannedAt).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scan events: %w", err)
	}
	return events, nil
}

// Sessions summarizes every recorded session, most recent first.
func (j *SQLiteJournal) Sessions(ctx context.Context) ([]model.SessionSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT session_id,
			MIN(scanned_at),
			MAX(scanned_at),
			COUNT(*),
			SUM(accepted)
		FROM scan_events
		GROUP BY session_id
		ORDER BY MAX(scanned_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.SessionSummary
	for rows.Next() {
		var (
			s           model.SessionSummary
			first, last int64
		)
		if err := rows.Scan(&s.ID, &first, &last, &s.Events, &s.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		s.FirstScan = time.Unix(0, first).UTC()
		s.LastScan = time.Unix(0, last).UTC()
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
