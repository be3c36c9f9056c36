package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rkeller/cadence/internal/engine"
	"github.com/rkeller/cadence/internal/sched"
)

// NewCheckCommand creates the check command: the day-check that the
// caller triggers whenever the app comes back into the foreground.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Roll the schedule forward if the stored day is no longer today",
		Long: `Compare the stored current day against the calendar date. When they
differ, compute the rollover: unfinished tasks and unsettled penalties
merge by label into the new day's ledger, the previous day is archived,
and today's tasks are seeded from the base schedule (none on weekends).
When the stored day is already today, nothing changes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runCheck(rootOpts, out)
		},
	}
	return cmd
}

func runCheck(opts *RootOptions, out *OutputFormatter) error {
	ctx := context.Background()
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	now := nowFunc()
	today := sched.DateOf(now)

	prev, err := st.LoadDay(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load day record", err)
	}
	if prev != nil && prev.Date == today {
		slog.Debug("day record already current", "date", today)
		return out.Day(*prev)
	}

	base, ok, err := st.LoadBase(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load base schedule", err)
	}
	if !ok {
		slog.Debug("no base schedule yet; seeding an empty day")
	}

	rec := engine.Rollover(prev, base, today, sched.IsWeekend(now), idGen)

	if prev != nil {
		if err := st.ArchiveDay(ctx, *prev); err != nil {
			return WrapExitError(ExitCommandError, "archive previous day", err)
		}
	}
	if err := st.SaveDay(ctx, rec); err != nil {
		return WrapExitError(ExitCommandError, "persist day record", err)
	}

	slog.Info("rolled over", "date", today, "tasks", len(rec.Tasks), "penalties", len(rec.Penalties))
	return out.Day(rec)
}
