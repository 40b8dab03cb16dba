package cli

import (
	"github.com/spf13/cobra"
)

// NewSaleCommand creates the sale command.
func NewSaleCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sale",
		Short: "Record a sale on the session's ledger",
		Long: `Record one sale interactively. If the product is in the catalog its
price is suggested and the stock can optionally be decremented.

Example:
  pos sale --dir ~/pandacell`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.SaleFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	}
}
