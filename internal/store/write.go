package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rkeller/cadence/internal/sched"
)

// SaveBase replaces the base-schedule document.
func (s *Store) SaveBase(ctx context.Context, tasks []sched.Task) error {
	payload, err := marshalDoc(tasks)
	if err != nil {
		return fmt.Errorf("save base schedule: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO base_schedule (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save base schedule: %w", err)
	}
	return nil
}

// SaveDay replaces the current-day slot with rec. Uses the canonical
// serialization so the stored payload is byte-stable for equal records.
func (s *Store) SaveDay(ctx context.Context, rec sched.DayRecord) error {
	payload, err := sched.MarshalCanonical(rec)
	if err != nil {
		return fmt.Errorf("save day record: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO day_current (id, date, payload) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, payload = excluded.payload
	`, rec.Date, string(payload))
	if err != nil {
		return fmt.Errorf("save day record: %w", err)
	}
	return nil
}

// ArchiveDay copies a finished day into the append-only archive.
// Rollover calls this with the previous record before overwriting the
// current slot. Re-archiving the same date replaces the entry.
func (s *Store) ArchiveDay(ctx context.Context, rec sched.DayRecord) error {
	payload, err := sched.MarshalCanonical(rec)
	if err != nil {
		return fmt.Errorf("archive day: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO day_archive (date, payload, archived_at) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET payload = excluded.payload, archived_at = excluded.archived_at
	`, rec.Date, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("archive day: %w", err)
	}
	return nil
}

// SaveDirectives replaces the ad-hoc directive document.
func (s *Store) SaveDirectives(ctx context.Context, items []sched.Directive) error {
	payload, err := marshalDoc(items)
	if err != nil {
		return fmt.Errorf("save directives: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO directives (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload
	`, payload)
	if err != nil {
		return fmt.Errorf("save directives: %w", err)
	}
	return nil
}

// marshalDoc serializes a document payload without HTML escaping,
// matching the canonical DayRecord encoding.
func marshalDoc(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
