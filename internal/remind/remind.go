// Package remind plans reminder occurrences for ad-hoc directives and
// talks to the external notification collaborator.
//
// The planning itself is pure: given a fire time, a repeat interval,
// and the current moment, Plan decides which occurrences to request.
// Scheduling and cancellation go through the Scheduler interface; the
// package never delivers anything itself.
package remind

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// MaxOccurrences caps how many occurrences a repeating directive may
// register with the notification collaborator.
const MaxOccurrences = 15

// Occurrence is one reminder registration request.
type Occurrence struct {
	Title  string
	Body   string
	FireAt time.Time
}

// Scheduler is the external notification collaborator. Schedule
// registers one occurrence and returns an opaque identifier; Cancel
// revokes a previously returned identifier.
type Scheduler interface {
	Schedule(ctx context.Context, occ Occurrence) (string, error)
	Cancel(ctx context.Context, id string) error
}

// Plan computes the occurrences to request for a directive.
//
// everyMinutes == 0 plans exactly one occurrence at fireAt. A positive
// interval plans up to MaxOccurrences spaced everyMinutes apart
// starting at fireAt. Occurrences whose time has already passed
// relative to now are silently skipped, so a directive created late in
// a repeat series only registers the future part.
//
// The first occurrence's body is the bare title; later ones are
// numbered so a string of reminders reads as a series.
func Plan(title string, fireAt time.Time, everyMinutes int, now time.Time) ([]Occurrence, error) {
	if everyMinutes < 0 {
		return nil, fmt.Errorf("repeat interval must be >= 0, got %d", everyMinutes)
	}

	repeats := 1
	if everyMinutes > 0 {
		repeats = MaxOccurrences
	}

	var occs []Occurrence
	for i := 0; i < repeats; i++ {
		at := fireAt.Add(time.Duration(i*everyMinutes) * time.Minute)
		if !at.After(now) {
			continue
		}
		body := title
		if i > 0 {
			body = fmt.Sprintf("%s (Reminder %d)", title, i)
		}
		occs = append(occs, Occurrence{Title: title, Body: body, FireAt: at})
	}
	return occs, nil
}

// ScheduleAll registers every occurrence with the collaborator and
// returns the opaque identifiers collected so far. On failure the
// identifiers already issued are returned alongside the error so the
// caller can persist or cancel them; orphaned registrations are worse
// than a partial series.
func ScheduleAll(ctx context.Context, s Scheduler, occs []Occurrence) ([]string, error) {
	var ids []string
	for _, occ := range occs {
		id, err := s.Schedule(ctx, occ)
		if err != nil {
			return ids, fmt.Errorf("schedule reminder at %s: %w", occ.FireAt.Format(time.RFC3339), err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// CancelAll revokes every identifier best-effort: a failure on one id
// is logged and does not abort cancellation of the rest. Returns the
// number of failures.
func CancelAll(ctx context.Context, s Scheduler, ids []string) int {
	failed := 0
	for _, id := range ids {
		if err := s.Cancel(ctx, id); err != nil {
			slog.Warn("reminder cancellation failed", "id", id, "error", err)
			failed++
		}
	}
	return failed
}
