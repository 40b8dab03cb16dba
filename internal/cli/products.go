package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marllondevsec/store-pos/internal/catalog"
	"github.com/marllondevsec/store-pos/internal/money"
)

// NewProductsCommand creates the products command tree.
func NewProductsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the product catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ProductListFlow(cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ProductAddFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit a product (name, price, stock)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ProductEditFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Delete a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ProductDeleteFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stock",
		Short: "Adjust product stock (add/remove/set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			return app.ProductStockFlow(NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()), cmd.OutOrStdout())
		},
	})

	return cmd
}

// ProductListFlow prints the catalog sorted by display name.
func (a *App) ProductListFlow(out io.Writer) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	printProducts(out, cat)
	return nil
}

func printProducts(out io.Writer, cat *catalog.Catalog) []catalog.Entry {
	entries := cat.List()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No products in catalog.")
		return nil
	}
	fmt.Fprintln(out, "=== PRODUCTS ===")
	fmt.Fprintln(out, "IDX | Name | Price | Stock")
	for i, e := range entries {
		price, stock := "-", "-"
		if e.Product.Price != nil {
			price = "R$ " + e.Product.Price.String()
		}
		if e.Product.Stock != nil {
			stock = e.Product.Stock.String()
		}
		fmt.Fprintf(out, "%3d | %s | %s | %s\n", i+1, e.Product.Name, price, stock)
	}
	return entries
}

// selectProduct lists the catalog and resolves the operator's answer:
// a number picks by index, anything else goes through Lookup.
func selectProduct(p *Prompter, out io.Writer, cat *catalog.Catalog) (string, catalog.Product, bool) {
	entries := printProducts(out, cat)
	if len(entries) == 0 {
		return "", catalog.Product{}, false
	}
	answer, err := p.Line("Choose product (index or name)", "")
	if err != nil || answer == "" {
		return "", catalog.Product{}, false
	}
	if idx, err := strconv.Atoi(answer); err == nil {
		if idx < 1 || idx > len(entries) {
			fmt.Fprintln(out, "Invalid selection.")
			return "", catalog.Product{}, false
		}
		e := entries[idx-1]
		return e.Key, e.Product, true
	}
	return cat.Lookup(answer)
}

// optionalAmount parses an optional prompt answer: empty keeps cur,
// otherwise the answer must be a valid amount.
func optionalAmount(raw string, cur *money.Money) (*money.Money, error) {
	if raw == "" {
		return cur, nil
	}
	m, ok := money.Parse(raw)
	if !ok {
		return nil, NewExitError(ExitFailure, fmt.Sprintf("invalid amount %q", raw))
	}
	return &m, nil
}

// ProductAddFlow creates a catalog entry; price and stock are optional.
func (a *App) ProductAddFlow(p *Prompter, out io.Writer) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	name, err := p.Line("Product name", "")
	if err != nil {
		return err
	}
	if name == "" {
		return NewExitError(ExitFailure, "empty product name")
	}
	priceRaw, err := p.Line("Unit price (optional)", "")
	if err != nil {
		return err
	}
	price, err := optionalAmount(priceRaw, nil)
	if err != nil {
		return err
	}
	stockRaw, err := p.Line("Initial stock (optional)", "")
	if err != nil {
		return err
	}
	stock, err := optionalAmount(stockRaw, nil)
	if err != nil {
		return err
	}
	if err := cat.Add(name, price, stock); err != nil {
		return WrapExitError(ExitFailure, "cannot add product", err)
	}
	fmt.Fprintln(out, "Product added.")
	return nil
}

// ProductEditFlow updates name, price, and stock of one product.
// Renaming onto another product's key is rejected instead of silently
// overwriting it.
func (a *App) ProductEditFlow(p *Prompter, out io.Writer) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	key, prod, ok := selectProduct(p, out, cat)
	if !ok {
		return NewExitError(ExitFailure, "product not found")
	}
	fmt.Fprintf(out, "Editing product: %s\n", prod.Name)

	name, err := p.Line("New name", prod.Name)
	if err != nil {
		return err
	}
	var priceDef string
	if prod.Price != nil {
		priceDef = prod.Price.String()
	}
	priceRaw, err := p.Line("New price", priceDef)
	if err != nil {
		return err
	}
	price, err := optionalAmount(priceRaw, prod.Price)
	if err != nil {
		return err
	}
	var stockDef string
	if prod.Stock != nil {
		stockDef = prod.Stock.String()
	}
	stockRaw, err := p.Line("New stock", stockDef)
	if err != nil {
		return err
	}
	stock, err := optionalAmount(stockRaw, prod.Stock)
	if err != nil {
		return err
	}

	err = cat.Edit(key, catalog.Product{Name: name, Price: price, Stock: stock})
	if err != nil {
		return WrapExitError(ExitFailure, "cannot edit product", err)
	}
	fmt.Fprintln(out, "Product updated.")
	return nil
}

// ProductDeleteFlow removes a product after confirmation.
func (a *App) ProductDeleteFlow(p *Prompter, out io.Writer) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	key, prod, ok := selectProduct(p, out, cat)
	if !ok {
		return NewExitError(ExitFailure, "product not found")
	}
	if !p.YesNo(fmt.Sprintf("Confirm removal of %q?", prod.Name)) {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}
	if err := cat.Delete(key); err != nil {
		return WrapExitError(ExitCommandError, "cannot delete product", err)
	}
	fmt.Fprintln(out, "Product removed.")
	return nil
}

// ProductStockFlow adjusts stock: add to, remove from, or set the
// current level. Removing below zero warns but is allowed.
func (a *App) ProductStockFlow(p *Prompter, out io.Writer) error {
	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	key, prod, ok := selectProduct(p, out, cat)
	if !ok {
		return NewExitError(ExitFailure, "product not found")
	}
	cur := "(no stock defined)"
	if prod.Stock != nil {
		cur = prod.Stock.String()
	}
	fmt.Fprintf(out, "Product: %s | Current stock: %s\n", prod.Name, cur)

	opRaw, err := p.Line("Operation: 1) add  2) remove  3) set", "")
	if err != nil {
		return err
	}
	var op catalog.StockOp
	switch opRaw {
	case "1":
		op = catalog.StockAdd
	case "2":
		op = catalog.StockRemove
	case "3":
		op = catalog.StockSet
	default:
		return NewExitError(ExitFailure, "invalid operation")
	}

	amountRaw, err := p.Line("Quantity", "")
	if err != nil {
		return err
	}
	amount, okAmt := money.Parse(amountRaw)
	if !okAmt {
		return NewExitError(ExitFailure, "invalid quantity")
	}

	newStock, negative, err := cat.AdjustStock(key, op, amount)
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot adjust stock", err)
	}
	fmt.Fprintf(out, "Stock updated: %s\n", newStock)
	if negative {
		fmt.Fprintln(out, "Warning: stock is now negative.")
	}
	return nil
}
