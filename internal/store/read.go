package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rkeller/cadence/internal/sched"
)

// LoadBase reads the base schedule. ok is false when the document has
// never been written.
func (s *Store) LoadBase(ctx context.Context) (tasks []sched.Task, ok bool, err error) {
	var payload string
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM base_schedule WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load base schedule: %w", err)
	}
	if err := strictUnmarshal([]byte(payload), &tasks); err != nil {
		return nil, false, fmt.Errorf("load base schedule: %w", err)
	}
	return tasks, true, nil
}

// LoadDay reads the current DayRecord, or nil when none has been
// written yet (first run ever).
func (s *Store) LoadDay(ctx context.Context) (*sched.DayRecord, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM day_current WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load day record: %w", err)
	}
	rec, err := sched.UnmarshalDay([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("load day record: %w", err)
	}
	return &rec, nil
}

// LoadDirectives reads the ad-hoc directive list. An unwritten document
// reads as an empty list; directives have no first-run semantics to
// distinguish.
func (s *Store) LoadDirectives(ctx context.Context) ([]sched.Directive, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM directives WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load directives: %w", err)
	}
	var items []sched.Directive
	if err := strictUnmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("load directives: %w", err)
	}
	return items, nil
}

// Archive returns up to limit archived DayRecords, most recent first.
// limit <= 0 returns everything.
func (s *Store) Archive(ctx context.Context, limit int) ([]sched.DayRecord, error) {
	q := `SELECT payload FROM day_archive ORDER BY date DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query archive: %w", err)
	}
	defer rows.Close()

	var out []sched.DayRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan archive row: %w", err)
		}
		rec, err := sched.UnmarshalDay([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("decode archived day: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive: %w", err)
	}
	return out, nil
}

// strictUnmarshal decodes JSON rejecting unknown fields, so corrupted
// or foreign payloads fail loudly instead of loading with dropped state.
func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
