package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewReportCommand creates the report command.
func NewReportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report <week|month>",
		Short: "Generate and save a top-sellers report",
		Long: `Generate the top-sellers report for the trailing week ([today-6,
today]) or the current month ([1st, today]). The rendered report is
also saved as a summary file in the log directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			switch args[0] {
			case "week":
				return app.WeeklyFlow(cmd.OutOrStdout())
			case "month":
				return app.MonthlyFlow(cmd.OutOrStdout())
			default:
				return NewExitError(ExitCommandError, fmt.Sprintf("unknown period %q: must be week or month", args[0]))
			}
		},
	}
}

// NewPanelCommand creates the panel command.
func NewPanelCommand(opts *RootOptions) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:           "panel",
		Short:         "Show condensed weekly and monthly highlights",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.PanelFlow(cmd.OutOrStdout(), topN)
		},
	}

	cmd.Flags().IntVar(&topN, "top", 5, "entries per highlight block")
	return cmd
}
