package engine

import (
	"errors"
	"fmt"
)

// TransitionErrorCode categorizes rejected mutation attempts.
type TransitionErrorCode string

const (
	// ErrCodeStaleDay indicates a mutation against a DayRecord whose
	// date is not today. Rollover is the single transition point across
	// days; mutations never auto-roll.
	ErrCodeStaleDay TransitionErrorCode = "STALE_DAY"

	// ErrCodeUnknownTask indicates a task index outside the day's list.
	ErrCodeUnknownTask TransitionErrorCode = "UNKNOWN_TASK"

	// ErrCodeUnknownPenalty indicates a penalty id not in the ledger.
	ErrCodeUnknownPenalty TransitionErrorCode = "UNKNOWN_PENALTY"

	// ErrCodeTaskClosed indicates a partial completion attempted on a
	// task already completed for the day.
	ErrCodeTaskClosed TransitionErrorCode = "TASK_CLOSED"

	// ErrCodePenaltySettled indicates a reduction attempted on a
	// penalty already settled.
	ErrCodePenaltySettled TransitionErrorCode = "PENALTY_SETTLED"

	// ErrCodeBadMinutes indicates a minutes argument outside the
	// transition's allowed range.
	ErrCodeBadMinutes TransitionErrorCode = "BAD_MINUTES"
)

// TransitionError reports why a mutation was rejected. The record the
// caller supplied is returned unchanged alongside one of these; no
// partial application ever occurs.
type TransitionError struct {
	Code    TransitionErrorCode
	Message string
	Date    string // record date, for stale-day diagnostics
	Today   string // caller's today, for stale-day diagnostics
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	if e.Code == ErrCodeStaleDay {
		return fmt.Sprintf("%s: %s (record=%s, today=%s)", e.Code, e.Message, e.Date, e.Today)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStaleDay reports whether err is a stale-day precondition failure.
// Uses errors.As to handle wrapped errors.
func IsStaleDay(err error) bool {
	var te *TransitionError
	return errors.As(err, &te) && te.Code == ErrCodeStaleDay
}

func staleDay(date, today string) error {
	return &TransitionError{
		Code:    ErrCodeStaleDay,
		Message: "day record is not current; run the day check first",
		Date:    date,
		Today:   today,
	}
}
