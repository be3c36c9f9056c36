package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rkeller/cadence/internal/engine"
	"github.com/rkeller/cadence/internal/sched"
)

// NewReseedCommand creates the reseed command: apply the saved base
// schedule to the current day immediately.
func NewReseedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reseed",
		Short: "Rebuild today's tasks from the base schedule, keeping penalties",
		Long: `Replace today's task instances with fresh ones from the saved base
schedule (none on weekends). The penalty ledger and the date are left
untouched. Completion state on the old instances is discarded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runReseed(rootOpts, out)
		},
	}
}

func runReseed(opts *RootOptions, out *OutputFormatter) error {
	ctx := context.Background()
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, _, err := loadCurrentDay(ctx, st)
	if err != nil {
		return err
	}
	base, _, err := st.LoadBase(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load base schedule", err)
	}

	next := engine.Reseed(rec, base, sched.IsWeekend(nowFunc()))
	if err := st.SaveDay(ctx, next); err != nil {
		return WrapExitError(ExitCommandError, "persist day record", err)
	}
	return out.Day(next)
}
