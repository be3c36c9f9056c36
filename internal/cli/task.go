package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rkeller/cadence/internal/engine"
	"github.com/rkeller/cadence/internal/sched"
)

// NewDoneCommand creates the done command: toggle a task's completion.
func NewDoneCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "done <task#>",
		Short:         "Toggle a task's completion for today",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := taskIndex(args[0])
			if err != nil {
				return err
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return mutateDay(rootOpts, out, func(rec sched.DayRecord, today string) (sched.DayRecord, error) {
				return engine.ToggleTask(rec, i, today)
			})
		},
	}
}

// NewPartialCommand creates the partial command: close a task crediting
// only part of its duration, the rest becoming a penalty.
func NewPartialCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "partial <task#> <minutes-done>",
		Short: "Close a task with partial credit; the remainder becomes a penalty",
		Long: `Close the task for the day, crediting the minutes actually spent.
The unfinished remainder is appended to the penalty ledger under the
task's label. Crediting the full duration is the same as 'done'.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := taskIndex(args[0])
			if err != nil {
				return err
			}
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return WrapExitError(ExitFailure, "minutes-done must be an integer", err)
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return mutateDay(rootOpts, out, func(rec sched.DayRecord, today string) (sched.DayRecord, error) {
				return engine.PartialComplete(rec, i, minutes, today, idGen)
			})
		},
	}
}

// NewDropCommand creates the drop command: remove a task outright.
func NewDropCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "drop <task#>",
		Short:         "Remove a task from today without penalty",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := taskIndex(args[0])
			if err != nil {
				return err
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return mutateDay(rootOpts, out, func(rec sched.DayRecord, today string) (sched.DayRecord, error) {
				return engine.DeleteTask(rec, i, today)
			})
		},
	}
}

func taskIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, WrapExitError(ExitFailure, "task# must be an integer index from 'cadence show'", err)
	}
	return i, nil
}
