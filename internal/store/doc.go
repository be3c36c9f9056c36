// Package store is the persistence collaborator: a SQLite-backed
// document store holding three logical documents per user (the base
// schedule, the current DayRecord, and the ad-hoc directive list),
// plus an append-only archive of past days written at rollover.
//
// Documents are whole-payload JSON; the engine never issues partial
// field updates. Reads report absence explicitly instead of defaulting,
// and the caller decides replace vs. merge.
package store
