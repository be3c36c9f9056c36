package engine

import (
	"fmt"

	"github.com/rkeller/cadence/internal/sched"
)

// Mutations transform the current day's DayRecord in response to user
// actions. Every function checks that rec.Date == today first: mutating
// a stale record is a caller error surfaced as ErrCodeStaleDay, never
// auto-corrected (rollover is the one place days change).
//
// Tasks are addressed by position in rec.Tasks, penalties by id. On any
// error the input record is returned unchanged.

// ToggleTask flips the completion state of the task at index i.
// Re-opening a task clears its partial-completion state so the
// uncompleted-implies-untouched invariant holds.
func ToggleTask(rec sched.DayRecord, i int, today string) (sched.DayRecord, error) {
	if rec.Date != today {
		return rec, staleDay(rec.Date, today)
	}
	if i < 0 || i >= len(rec.Tasks) {
		return rec, &TransitionError{Code: ErrCodeUnknownTask, Message: fmt.Sprintf("no task #%d", i)}
	}

	out := clone(rec)
	t := &out.Tasks[i]
	t.Completed = !t.Completed
	if !t.Completed {
		t.PartiallyCompleted = false
		t.Remaining = 0
	}
	return out, nil
}

// PartialComplete closes the task at index i, crediting minutesDone of
// its duration and converting the rest into a new penalty. Crediting
// the full duration (or more) is exactly a ToggleTask: the task closes
// and no penalty is created.
//
// The new penalty is appended and the ledger re-sorted by duration
// descending. Insertion is the only mid-day re-sort trigger; reductions
// keep their position so the visible ordering does not jitter.
func PartialComplete(rec sched.DayRecord, i, minutesDone int, today string, ids IDGenerator) (sched.DayRecord, error) {
	if rec.Date != today {
		return rec, staleDay(rec.Date, today)
	}
	if i < 0 || i >= len(rec.Tasks) {
		return rec, &TransitionError{Code: ErrCodeUnknownTask, Message: fmt.Sprintf("no task #%d", i)}
	}
	if rec.Tasks[i].Completed {
		return rec, &TransitionError{Code: ErrCodeTaskClosed, Message: "task is already completed for today"}
	}
	if minutesDone < 0 {
		return rec, &TransitionError{Code: ErrCodeBadMinutes, Message: "minutes done must be >= 0"}
	}

	if minutesDone >= rec.Tasks[i].Duration {
		return ToggleTask(rec, i, today)
	}

	out := clone(rec)
	t := &out.Tasks[i]
	remainder := t.Duration - minutesDone
	t.Completed = true
	t.PartiallyCompleted = true
	t.Remaining = 0 // the remainder lives in the ledger, not on the task

	out.Penalties = append(out.Penalties, sched.Penalty{
		ID:       ids.NewID(),
		Label:    t.Label,
		Duration: remainder,
	})
	sortLedger(out.Penalties)
	return out, nil
}

// TogglePenalty settles the penalty with the given id. Settling is
// one-way; there is no un-complete for penalties.
func TogglePenalty(rec sched.DayRecord, id, today string) (sched.DayRecord, error) {
	if rec.Date != today {
		return rec, staleDay(rec.Date, today)
	}
	out := clone(rec)
	for i := range out.Penalties {
		if out.Penalties[i].ID == id {
			out.Penalties[i].Completed = true
			return out, nil
		}
	}
	return rec, &TransitionError{Code: ErrCodeUnknownPenalty, Message: fmt.Sprintf("no penalty %q", id)}
}

// ReducePenalty redeems minutesRedeemed against the penalty with the
// given id. Redeeming the full duration (or more) settles it; a
// penalty never persists at zero or negative duration. A partial
// redemption updates the duration in place without re-sorting.
func ReducePenalty(rec sched.DayRecord, id string, minutesRedeemed int, today string) (sched.DayRecord, error) {
	if rec.Date != today {
		return rec, staleDay(rec.Date, today)
	}
	if minutesRedeemed <= 0 {
		return rec, &TransitionError{Code: ErrCodeBadMinutes, Message: "minutes redeemed must be > 0"}
	}
	idx := -1
	for i := range rec.Penalties {
		if rec.Penalties[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rec, &TransitionError{Code: ErrCodeUnknownPenalty, Message: fmt.Sprintf("no penalty %q", id)}
	}
	if rec.Penalties[idx].Completed {
		return rec, &TransitionError{Code: ErrCodePenaltySettled, Message: "penalty is already settled"}
	}

	if rec.Penalties[idx].Duration-minutesRedeemed <= 0 {
		return TogglePenalty(rec, id, today)
	}

	out := clone(rec)
	out.Penalties[idx].Duration -= minutesRedeemed
	return out, nil
}

// DeleteTask removes the task at index i outright. Deletion is a hard
// drop, distinct from completion: no penalty is created.
func DeleteTask(rec sched.DayRecord, i int, today string) (sched.DayRecord, error) {
	if rec.Date != today {
		return rec, staleDay(rec.Date, today)
	}
	if i < 0 || i >= len(rec.Tasks) {
		return rec, &TransitionError{Code: ErrCodeUnknownTask, Message: fmt.Sprintf("no task #%d", i)}
	}
	out := clone(rec)
	out.Tasks = append(out.Tasks[:i:i], out.Tasks[i+1:]...)
	return out, nil
}

// clone deep-copies a DayRecord so transitions never alias the caller's
// slices.
func clone(rec sched.DayRecord) sched.DayRecord {
	out := rec
	if rec.Tasks != nil {
		out.Tasks = append([]sched.TaskInstance(nil), rec.Tasks...)
	}
	if rec.Penalties != nil {
		out.Penalties = append([]sched.Penalty(nil), rec.Penalties...)
	}
	return out
}
