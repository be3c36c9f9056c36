package engine

import (
	"sort"

	"github.com/rkeller/cadence/internal/sched"
)

// Rollover computes the DayRecord for today from yesterday's record and
// the base schedule. prev is nil on the first run ever.
//
// Accrual: every unsettled penalty carries its duration forward, and
// every unfinished task contributes its full duration (or its recorded
// remainder, if it was partially completed). Contributions merge by
// task label. The day boundary is the only point where penalties merge;
// within a day the ledger keeps distinct entries per insertion.
//
// The resulting ledger is ordered by duration descending, ties broken
// by label ascending. This ordering is part of the engine's contract:
// two rollovers over identical inputs produce identical sequences.
//
// On weekends today's task list is empty; the base schedule otherwise
// seeds fresh instances in base order (the base owner pre-sorts by
// start time; Rollover does not re-sort).
func Rollover(prev *sched.DayRecord, base []sched.Task, today string, weekend bool, ids IDGenerator) sched.DayRecord {
	penalties := accruePenalties(prev, ids)

	// Slices stay non-nil so the canonical serialization renders empty
	// lists as [], never null.
	tasks := make([]sched.TaskInstance, 0, len(base))
	if !weekend {
		for _, t := range base {
			tasks = append(tasks, sched.NewInstance(t))
		}
	}

	return sched.DayRecord{
		Date:      today,
		Tasks:     tasks,
		Penalties: penalties,
		LastRun:   today,
	}
}

// accruePenalties folds yesterday's unmet obligations into a fresh,
// label-merged, deterministically ordered ledger.
func accruePenalties(prev *sched.DayRecord, ids IDGenerator) []sched.Penalty {
	penalties := []sched.Penalty{}
	if prev == nil {
		return penalties
	}

	owed := make(map[string]int)
	for _, p := range prev.Penalties {
		if !p.Completed && p.Duration > 0 {
			owed[p.Label] += p.Duration
		}
	}
	for _, t := range prev.Tasks {
		if t.Completed {
			// A partial completion already moved its remainder into
			// the ledger when it happened; nothing more is owed here.
			continue
		}
		minutes := t.Duration
		if t.PartiallyCompleted {
			minutes = t.Remaining
		}
		if minutes > 0 {
			owed[t.Label] += minutes
		}
	}

	labels := make([]string, 0, len(owed))
	for label := range owed {
		labels = append(labels, label)
	}
	// Duration descending, label ascending on ties. Sorting labels
	// first would also work, but a single comparator keeps the total
	// order explicit.
	sort.Slice(labels, func(i, j int) bool {
		di, dj := owed[labels[i]], owed[labels[j]]
		if di != dj {
			return di > dj
		}
		return labels[i] < labels[j]
	})

	for _, label := range labels {
		penalties = append(penalties, sched.Penalty{
			ID:       ids.NewID(),
			Label:    label,
			Duration: owed[label],
		})
	}
	return penalties
}

// sortLedger orders a penalty ledger by duration descending, stably, so
// that equal durations keep their existing relative order. Used when a
// partial completion inserts a new penalty mid-day.
func sortLedger(penalties []sched.Penalty) {
	sort.SliceStable(penalties, func(i, j int) bool {
		return penalties[i].Duration > penalties[j].Duration
	})
}
