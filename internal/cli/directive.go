package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rkeller/cadence/internal/remind"
	"github.com/rkeller/cadence/internal/sched"
)

// AdhocOptions holds flags for the adhoc add command.
type AdhocOptions struct {
	*RootOptions
	At    string
	Every int
}

// NewDirectiveCommand creates the adhoc command group for one-off
// directives with optional reminders.
func NewDirectiveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adhoc",
		Short: "Manage ad-hoc directives (one-off items with optional reminders)",
	}

	cmd.AddCommand(newAdhocAddCommand(rootOpts))
	cmd.AddCommand(newAdhocListCommand(rootOpts))
	cmd.AddCommand(newAdhocTickCommand(rootOpts))
	cmd.AddCommand(newAdhocRemoveCommand(rootOpts))

	return cmd
}

func newAdhocAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AdhocOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a directive, optionally with a reminder",
		Long: `Add an ad-hoc directive. With --at HH:MM a reminder is registered for
that time today (or tomorrow if it already passed). With --every N the
reminder repeats every N minutes, capped at a fixed number of
occurrences; occurrences already in the past are skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdhocAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "reminder time as HH:MM")
	cmd.Flags().IntVar(&opts.Every, "every", 0, "repeat interval in minutes (0 = one-shot)")

	return cmd
}

func runAdhocAdd(opts *AdhocOptions, title string, cmd *cobra.Command) error {
	ctx := context.Background()
	now := nowFunc()

	var remindAt *time.Time
	var reminderIDs []string

	if opts.At != "" {
		clock, err := sched.ParseClock(opts.At)
		if err != nil {
			return WrapExitError(ExitFailure, "invalid --at time", err)
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			Add(time.Duration(clock.Minutes()) * time.Minute)
		// A time already behind us today means tomorrow.
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		remindAt = &at

		occs, err := remind.Plan(title, at, opts.Every, now)
		if err != nil {
			return WrapExitError(ExitFailure, "plan reminders", err)
		}
		reminderIDs, err = remind.ScheduleAll(ctx, notifier, occs)
		if err != nil {
			// Roll back whatever was registered before the failure so
			// no orphaned reminders fire for a directive that was
			// never saved.
			remind.CancelAll(ctx, notifier, reminderIDs)
			return WrapExitError(ExitCommandError, "register reminders", err)
		}
	} else if opts.Every > 0 {
		return &ExitError{Code: ExitFailure, Message: "--every requires --at"}
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.LoadDirectives(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load directives", err)
	}
	d := sched.Directive{
		ID:          idGen.NewID(),
		Title:       title,
		RemindAt:    remindAt,
		Every:       opts.Every,
		ReminderIDs: reminderIDs,
	}
	if err := st.SaveDirectives(ctx, append(items, d)); err != nil {
		remind.CancelAll(ctx, notifier, reminderIDs)
		return WrapExitError(ExitCommandError, "save directives", err)
	}

	slog.Info("directive added", "id", d.ID, "reminders", len(reminderIDs))
	fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", d.ID)
	return nil
}

func newAdhocListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List directives",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := openStore(rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			items, err := st.LoadDirectives(ctx)
			if err != nil {
				return WrapExitError(ExitCommandError, "load directives", err)
			}
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return out.Directives(items)
		},
	}
}

func newAdhocTickCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tick <id>",
		Short: "Toggle a directive's completion",
		Long: `Toggle a directive's completion. Completing a directive cancels its
pending reminders best-effort; re-opening it does not re-register them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateDirective(rootOpts, args[0], func(ctx context.Context, items []sched.Directive, i int) []sched.Directive {
				items[i].Completed = !items[i].Completed
				if items[i].Completed {
					remind.CancelAll(ctx, notifier, items[i].ReminderIDs)
					items[i].ReminderIDs = nil
				}
				return items
			}, cmd)
		},
	}
}

func newAdhocRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <id>",
		Short:         "Delete a directive and cancel its reminders",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateDirective(rootOpts, args[0], func(ctx context.Context, items []sched.Directive, i int) []sched.Directive {
				remind.CancelAll(ctx, notifier, items[i].ReminderIDs)
				return append(items[:i], items[i+1:]...)
			}, cmd)
		},
	}
}

// updateDirective loads the directive list, applies fn to the entry
// with the given id, and persists the result.
func updateDirective(opts *RootOptions, id string, fn func(ctx context.Context, items []sched.Directive, i int) []sched.Directive, cmd *cobra.Command) error {
	ctx := context.Background()
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	items, err := st.LoadDirectives(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load directives", err)
	}
	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("no directive %q", id)}
	}

	items = fn(ctx, items, idx)
	if err := st.SaveDirectives(ctx, items); err != nil {
		return WrapExitError(ExitCommandError, "save directives", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Directives(items)
}
