// Package engine implements the daily rollover and penalty accrual
// core: pure transformations over DayRecord snapshots.
//
// Two pieces collaborate:
//
//   - Rollover computes the next day's state from the previous day and
//     the base schedule: unfinished work and unsettled penalties merge
//     by label into a fresh, deterministically ordered penalty ledger.
//   - The mutation transitions (ToggleTask, PartialComplete,
//     TogglePenalty, ReducePenalty, DeleteTask) transform the current
//     day's record in response to user actions.
//
// Every function is a synchronous, side-effect-free transformation:
// snapshot in, new snapshot out. Persistence, scheduling, and retry are
// the caller's responsibility. Determinism is an observable contract:
// identical inputs yield identical task lists and identical
// (label, duration) penalty sets; only generated IDs may differ.
package engine
