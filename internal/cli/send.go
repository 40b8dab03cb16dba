package cli

import (
	"github.com/spf13/cobra"
)

// NewSendCommand creates the send command.
func NewSendCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Email the session day's log now",
		Long: `Email the current day's log without closing the session. On failure
the log is copied into the outbox for a later "pos resend".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.SendFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	}
}

// NewResendCommand creates the resend command.
func NewResendCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resend",
		Short: "Retry every queued outbox item",
		Long: `Walk the outbox in name order and retry each queued log: the session
date is re-derived from the file name, the total recomputed from that
date's ledger. Successfully sent items are removed; failures stay
queued.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ResendFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	}
}
