package sched

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Task is one base-schedule entry: a labeled, time-boxed obligation.
// Duration is derived from Start/End at construction and cached;
// the invariant Duration == End-Start (minutes) holds for every Task
// built through NewTask.
type Task struct {
	Label    string    `json:"label"`
	Start    ClockTime `json:"start"`
	End      ClockTime `json:"end"`
	Duration int       `json:"duration"`
}

// NewTask builds a Task from its wire fields, deriving Duration.
// The label is trimmed and NFC-normalized so that penalty accrual
// merges visually identical labels regardless of input encoding.
func NewTask(label, start, end string) (Task, error) {
	l := NormalizeLabel(label)
	if l == "" {
		return Task{}, ValidationError{Field: "label", Code: ErrEmptyLabel, Message: "label must not be empty"}
	}
	s, err := ParseClock(start)
	if err != nil {
		return Task{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Task{}, err
	}
	d, err := SpanMinutes(s, e)
	if err != nil {
		return Task{}, err
	}
	return Task{Label: l, Start: s, End: e, Duration: d}, nil
}

// NormalizeLabel trims whitespace and applies Unicode NFC so equal-looking
// labels hash and merge equally.
func NormalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}

// TaskInstance is a Task plus per-day execution state. Instances are
// created fresh at rollover and replaced at the next one.
//
// Invariants:
//   - !Completed implies !PartiallyCompleted and Remaining == 0
//   - PartiallyCompleted implies Completed (a partial completion closes
//     the instance for the day; the remainder lives on as a Penalty)
type TaskInstance struct {
	Task
	Completed          bool `json:"completed"`
	PartiallyCompleted bool `json:"partiallyCompleted"`
	Remaining          int  `json:"remaining"`
}

// NewInstance seeds a fresh, untouched instance of t for a new day.
func NewInstance(t Task) TaskInstance {
	return TaskInstance{Task: t}
}

// Penalty is accrued, unmet obligation carried across day boundaries.
// Duration is strictly positive while the penalty is active; a penalty
// reduced to zero is resolved, never stored at zero.
type Penalty struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Duration  int    `json:"duration"`
	Completed bool   `json:"completed"`
}

// DayRecord is the authoritative per-day snapshot: the date it covers,
// the day's active task instances, the penalty ledger, and the date the
// rollover last executed (equal to Date after a successful rollover).
type DayRecord struct {
	Date      string         `json:"date"`
	Tasks     []TaskInstance `json:"tasks"`
	Penalties []Penalty      `json:"penalties"`
	LastRun   string         `json:"lastRun"`
}

// ActivePenalties returns the penalties not yet settled, in ledger order.
func (d DayRecord) ActivePenalties() []Penalty {
	var out []Penalty
	for _, p := range d.Penalties {
		if !p.Completed {
			out = append(out, p)
		}
	}
	return out
}

// OwedMinutes sums the durations of all active penalties.
func (d DayRecord) OwedMinutes() int {
	total := 0
	for _, p := range d.Penalties {
		if !p.Completed {
			total += p.Duration
		}
	}
	return total
}

// Directive is an ad-hoc, one-off item independent of the base schedule.
// RemindAt and Every drive reminder planning; ReminderIDs holds the
// opaque occurrence identifiers returned by the notification collaborator
// so completion or deletion can cancel them later.
type Directive struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	RemindAt    *time.Time `json:"remindAt,omitempty"`
	Every       int        `json:"every"` // repeat interval in minutes; 0 = one-shot
	Completed   bool       `json:"completed"`
	ReminderIDs []string   `json:"reminderIds,omitempty"`
}
