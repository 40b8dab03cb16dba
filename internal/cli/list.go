package cli

import (
	"github.com/spf13/cobra"
)

// NewTotalCommand creates the total command.
func NewTotalCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "total",
		Short:         "Show the session day's accumulated total",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.TotalFlow(cmd.OutOrStdout())
		},
	}
}

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List the session day's recent sales",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ListFlow(cmd.OutOrStdout(), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "maximum lines to show")
	return cmd
}
