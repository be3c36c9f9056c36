package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Archive int
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current day record",
		Long: `Print the stored current day record without touching it. Use
--archive N to list the last N archived days instead.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return runShow(opts, out)
		},
	}

	cmd.Flags().IntVar(&opts.Archive, "archive", 0, "show the last N archived days instead of today")

	return cmd
}

func runShow(opts *ShowOptions, out *OutputFormatter) error {
	ctx := context.Background()
	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.Archive > 0 {
		days, err := st.Archive(ctx, opts.Archive)
		if err != nil {
			return WrapExitError(ExitCommandError, "load archive", err)
		}
		if len(days) == 0 {
			fmt.Fprintln(out.Writer, "archive is empty")
			return nil
		}
		for _, d := range days {
			if err := out.Day(d); err != nil {
				return err
			}
			fmt.Fprintln(out.Writer)
		}
		return nil
	}

	rec, err := st.LoadDay(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "load day record", err)
	}
	if rec == nil {
		return &ExitError{Code: ExitFailure, Message: "no day record yet; run 'cadence check' first"}
	}
	return out.Day(*rec)
}
