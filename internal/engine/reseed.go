package engine

import "github.com/rkeller/cadence/internal/sched"

// Reseed applies a newly saved base schedule to the current day in
// place: today's task instances are rebuilt fresh from base (empty on
// weekends) while the penalty ledger and date are preserved. This is
// the "overwrite today" path after editing the base schedule; the
// normal path is to let the change apply at the next rollover.
func Reseed(rec sched.DayRecord, base []sched.Task, weekend bool) sched.DayRecord {
	out := clone(rec)
	out.Tasks = make([]sched.TaskInstance, 0, len(base))
	if !weekend {
		for _, t := range base {
			out.Tasks = append(out.Tasks, sched.NewInstance(t))
		}
	}
	out.LastRun = out.Date
	return out
}
