package cli

import (
	"github.com/spf13/cobra"
)

// NewCloseCommand creates the close command.
func NewCloseCommand(opts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close the cash session and email the day's log",
		Long: `Close the current cash session: compute the day total, append the
closing summary to the ledger, mark the session CLOSED, and email the
log. If the send fails the log is queued in the outbox for a later
"pos resend".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.CloseFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout(), yes)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "close without the confirmation prompt")
	return cmd
}

// NewReopenCommand creates the reopen command.
func NewReopenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen [date]",
		Short: "Force-reopen a session (escape hatch)",
		Long: `Overwrite the session record to OPEN for the given date (default
today), regardless of its prior state. Useful for recording a late sale
after the cash was closed.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			date := ""
			if len(args) == 1 {
				date = args[0]
			}
			return app.ReopenFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout(), date)
		},
	}
}
