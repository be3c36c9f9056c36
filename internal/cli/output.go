package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rkeller/cadence/internal/sched"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected transition, malformed input
	ExitCommandError = 2 // Command error (bad paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional underlying error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string `json:"status"` // "ok" or "error"
	Data   any    `json:"data,omitempty"`
}

// JSON emits data wrapped in the standard response envelope.
func (f *OutputFormatter) JSON(data any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(CLIResponse{Status: "ok", Data: data})
}

// Day renders a DayRecord in the configured format.
func (f *OutputFormatter) Day(rec sched.DayRecord) error {
	if f.Format == "json" {
		return f.JSON(rec)
	}

	fmt.Fprintf(f.Writer, "%s\n", rec.Date)

	if active := rec.ActivePenalties(); len(active) > 0 {
		fmt.Fprintf(f.Writer, "\nPENALTIES (%dm owed)\n", rec.OwedMinutes())
		for _, p := range active {
			fmt.Fprintf(f.Writer, "  [%s] %-20s %4dm\n", p.ID, p.Label, p.Duration)
		}
	}

	fmt.Fprintf(f.Writer, "\nTASKS\n")
	if len(rec.Tasks) == 0 {
		fmt.Fprintln(f.Writer, "  (none scheduled)")
		return nil
	}
	for i, t := range rec.Tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		note := ""
		if t.PartiallyCompleted {
			note = "  (partial)"
		}
		fmt.Fprintf(f.Writer, "  [%s] %2d  %-20s %s-%s %4dm%s\n",
			mark, i, t.Label, t.Start, t.End, t.Duration, note)
	}
	return nil
}

// Directives renders an ad-hoc directive list in the configured format.
func (f *OutputFormatter) Directives(items []sched.Directive) error {
	if f.Format == "json" {
		return f.JSON(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(f.Writer, "no directives")
		return nil
	}
	for _, d := range items {
		mark := " "
		if d.Completed {
			mark = "x"
		}
		line := fmt.Sprintf("  [%s] %s  %s", mark, d.ID, d.Title)
		if d.RemindAt != nil {
			line += "  @" + d.RemindAt.Format("15:04")
			if d.Every > 0 {
				line += fmt.Sprintf(" every %dm", d.Every)
			}
		}
		fmt.Fprintln(f.Writer, line)
	}
	return nil
}
