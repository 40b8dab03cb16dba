// Package cli implements the pos command surface: one cobra command
// per operation plus the interactive numbered menu the operator runs
// all day. Commands are thin wrappers over the flows in flows.go; the
// menu reuses the same flows.
package cli

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marllondevsec/store-pos/internal/mailer"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Dir     string
	Verbose bool

	// Sender overrides the mail transport (for testing).
	// If nil, defaults to mailer.SMTPSender.
	Sender mailer.Sender

	// Now overrides the wall clock (for testing). If nil, time.Now.
	Now func() time.Time
}

// NewRootCommand creates the root command for the pos CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pos",
		Short: "Single-operator point of sale and cash-session ledger",
		Long: `pos records sales line-by-line to a daily append-only log, tracks the
open/closed cash session, maintains a product catalog, aggregates sales
into top-seller reports, and emails the day's log at close with a local
retry queue for failed sends.

Run "pos menu" (or just "pos") for the interactive menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare "pos" drops into the menu.
			return runMenu(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Dir, "dir", ".", "workspace directory (state files live here)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewMenuCommand(opts))
	cmd.AddCommand(NewSaleCommand(opts))
	cmd.AddCommand(NewTotalCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCloseCommand(opts))
	cmd.AddCommand(NewReopenCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewPanelCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewEmailCommand(opts))
	cmd.AddCommand(NewSendCommand(opts))
	cmd.AddCommand(NewResendCommand(opts))

	return cmd
}
