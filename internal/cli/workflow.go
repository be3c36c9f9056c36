package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rkeller/cadence/internal/engine"
	"github.com/rkeller/cadence/internal/sched"
	"github.com/rkeller/cadence/internal/store"
)

// openStore opens the tracker database, creating parent directories on
// first use.
func openStore(opts *RootOptions) (*store.Store, error) {
	if dir := filepath.Dir(opts.Database); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapExitError(ExitCommandError, "create database directory", err)
		}
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}
	return st, nil
}

// loadCurrentDay loads the current DayRecord and requires it to cover
// today. Mutations never auto-roll; a stale or missing record points
// the user at the day check instead.
func loadCurrentDay(ctx context.Context, st *store.Store) (sched.DayRecord, string, error) {
	today := sched.DateOf(nowFunc())
	rec, err := st.LoadDay(ctx)
	if err != nil {
		return sched.DayRecord{}, "", WrapExitError(ExitCommandError, "load day record", err)
	}
	if rec == nil || rec.Date != today {
		return sched.DayRecord{}, "", &ExitError{
			Code:    ExitFailure,
			Message: fmt.Sprintf("no current record for %s; run 'cadence check' first", today),
		}
	}
	return *rec, today, nil
}

// mutateDay runs one engine transition against the current day and
// persists the result. The transition applied in memory is only
// reported once the save succeeds, so the printed state never diverges
// from the stored one.
func mutateDay(opts *RootOptions, out *OutputFormatter, transition func(rec sched.DayRecord, today string) (sched.DayRecord, error)) error {
	ctx := context.Background()
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, today, err := loadCurrentDay(ctx, st)
	if err != nil {
		return err
	}

	next, err := transition(rec, today)
	if err != nil {
		return WrapExitError(ExitFailure, "transition rejected", err)
	}

	if err := st.SaveDay(ctx, next); err != nil {
		return WrapExitError(ExitCommandError, "persist day record", err)
	}
	return out.Day(next)
}

// idGen is the production identifier source for new penalties and
// directives.
var idGen engine.IDGenerator = engine.UUIDv7Generator{}
