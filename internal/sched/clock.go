package sched

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is a time of day expressed as minutes since midnight.
// It marshals to and from the wire format "HH:MM" (24-hour).
type ClockTime int

// ParseClock parses "HH:MM" into a ClockTime.
// Hours must be 00-23 and minutes 00-59; anything else is a
// ValidationError with code ErrBadClock.
func ParseClock(s string) (ClockTime, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, ValidationError{Field: "time", Code: ErrBadClock, Message: fmt.Sprintf("want HH:MM, got %q", s)}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, ValidationError{Field: "time", Code: ErrBadClock, Message: fmt.Sprintf("bad hour in %q", s)}
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, ValidationError{Field: "time", Code: ErrBadClock, Message: fmt.Sprintf("bad minute in %q", s)}
	}
	return ClockTime(h*60 + m), nil
}

// String renders the canonical "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Minutes returns the time of day as minutes since midnight.
func (c ClockTime) Minutes() int { return int(c) }

// MarshalJSON encodes as the "HH:MM" string.
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes the "HH:MM" string and validates it.
func (c *ClockTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return ValidationError{Field: "time", Code: ErrBadClock, Message: "not a JSON string"}
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SpanMinutes derives the wall-clock duration in minutes from start to
// end on the same calendar day. end <= start is rejected with
// ErrNonPositiveSpan: a zero or negative duration would corrupt penalty
// accrual downstream, so it never enters the model.
func SpanMinutes(start, end ClockTime) (int, error) {
	d := int(end) - int(start)
	if d <= 0 {
		return 0, ValidationError{
			Field:   "end",
			Code:    ErrNonPositiveSpan,
			Message: fmt.Sprintf("end %s must be after start %s", end, start),
		}
	}
	return d, nil
}

// DateOf formats t as the ISO date string used throughout the model.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
