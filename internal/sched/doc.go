// Package sched defines the shared data model for the daily tracker:
// clock times, base-schedule tasks, per-day task instances, penalties,
// and the DayRecord snapshot that the engine transforms.
//
// All types are plain values. The engine never mutates a caller's
// DayRecord in place; transitions copy, transform, and return.
package sched
