package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rkeller/cadence/internal/engine"
	"github.com/rkeller/cadence/internal/sched"
)

// NewSettleCommand creates the settle command: mark a penalty done.
func NewSettleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "settle <penalty-id>",
		Short:         "Settle a penalty in full",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return mutateDay(rootOpts, out, func(rec sched.DayRecord, today string) (sched.DayRecord, error) {
				return engine.TogglePenalty(rec, args[0], today)
			})
		},
	}
}

// NewRedeemCommand creates the redeem command: work off part of a
// penalty's minutes.
func NewRedeemCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "redeem <penalty-id> <minutes>",
		Short: "Redeem minutes against a penalty",
		Long: `Subtract the redeemed minutes from a penalty's duration. Redeeming
the full amount (or more) settles the penalty; otherwise it stays in
place with the reduced duration.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "minutes must be an integer", err)
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return mutateDay(rootOpts, out, func(rec sched.DayRecord, today string) (sched.DayRecord, error) {
				return engine.ReducePenalty(rec, args[0], minutes, today)
			})
		},
	}
}
