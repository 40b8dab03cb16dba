package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/marllondevsec/store-pos/internal/session"
)

// ptWeekdays maps Go weekday names to the Portuguese names the banner
// shows.
var ptWeekdays = map[time.Weekday]string{
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// NewMenuCommand creates the menu command: the interactive loop the
// operator keeps open all day.
func NewMenuCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "menu",
		Short:         "Run the interactive register menu",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(opts, cmd)
		},
	}
}

func runMenu(opts *RootOptions, cmd *cobra.Command) error {
	app, err := newApp(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	p := NewPrompter(cmd.InOrStdin(), out)

	printBanner(out, app)

	// First run: insist on a working email setup before opening the day.
	if !app.EmailConfig().Configured() {
		fmt.Fprintln(out, "Looks like the first run, or the emails are not configured yet.")
		if _, err := app.EmailConfigureFlow(p, out, true); err != nil {
			return err
		}
	}

	date, resumed, err := app.Session.Start(app.Ledger)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to start session", err)
	}
	if resumed {
		fmt.Fprintf(out, "Resuming open session for %s.\n", date)
	} else {
		fmt.Fprintf(out, "Cash open for %s.\n", date)
	}

	autoReports(app, out)

	for {
		printMenu(out, app)
		choice, err := p.Line("Choose", "")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var flowErr error
		switch choice {
		case "1":
			flowErr = app.SaleFlow(p, out)
		case "2":
			flowErr = app.TotalFlow(out)
		case "3":
			flowErr = app.ListFlow(out, 100)
		case "4":
			flowErr = app.CloseFlow(p, out, false)
		case "5":
			flowErr = app.ReopenFlow(p, out, "")
		case "6":
			flowErr = app.WeeklyFlow(out)
		case "7":
			flowErr = app.MonthlyFlow(out)
		case "8":
			flowErr = app.PanelFlow(out, 5)
		case "9":
			_, flowErr = app.EmailConfigureFlow(p, out, false)
		case "10":
			flowErr = app.EmailPasswordFlow(p, out)
		case "11":
			flowErr = app.SendFlow(p, out)
		case "12":
			flowErr = app.ResendFlow(p, out)
		case "13":
			flowErr = productsMenu(app, p, out)
		case "0":
			if rec, err := app.Session.Current(); err == nil && rec != nil && rec.State == session.Open {
				if !p.YesNo("The session is still OPEN. Really quit without closing the cash?") {
					continue
				}
			}
			fmt.Fprintln(out, "Bye.")
			return nil
		default:
			fmt.Fprintln(out, "Invalid option. Try again.")
			continue
		}

		// A flow failure must never take the register down; durable
		// state is already on disk.
		if flowErr != nil {
			fmt.Fprintf(out, "Error: %v\n", flowErr)
			slog.Debug("menu flow failed", "choice", choice, "error", flowErr)
		}
	}
}

// productsMenu is the catalog management submenu. Only an input error
// bubbles up; flow failures are reported and the submenu continues.
func productsMenu(app *App, p *Prompter, out io.Writer) error {
	for {
		fmt.Fprintln(out, "\n=== MANAGE PRODUCTS ===")
		fmt.Fprintln(out, "1) List products")
		fmt.Fprintln(out, "2) Add product")
		fmt.Fprintln(out, "3) Edit product")
		fmt.Fprintln(out, "4) Delete product")
		fmt.Fprintln(out, "5) Adjust stock (add/remove/set)")
		fmt.Fprintln(out, "0) Back")
		choice, err := p.Line("Choose", "")
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var flowErr error
		switch choice {
		case "1":
			flowErr = app.ProductListFlow(out)
		case "2":
			flowErr = app.ProductAddFlow(p, out)
		case "3":
			flowErr = app.ProductEditFlow(p, out)
		case "4":
			flowErr = app.ProductDeleteFlow(p, out)
		case "5":
			flowErr = app.ProductStockFlow(p, out)
		case "0":
			return nil
		default:
			fmt.Fprintln(out, "Invalid option.")
			continue
		}
		if flowErr != nil {
			fmt.Fprintf(out, "Error: %v\n", flowErr)
		}
	}
}

// autoReports emits the scheduled summaries: weekly on Saturday,
// monthly on the last day of the month.
func autoReports(app *App, out io.Writer) {
	week, month, err := app.Reporter.AutoPeriodic()
	if err != nil {
		fmt.Fprintf(out, "Could not generate periodic reports: %v\n", err)
		return
	}
	if week != nil {
		fmt.Fprintf(out, "Saturday: weekly summary generated -> %s\n", week.Path)
	}
	if month != nil {
		fmt.Fprintf(out, "Last day of the month: monthly summary generated -> %s\n", month.Path)
	}
}

func printBanner(out io.Writer, app *App) {
	banner := `   .----.
   |0.00|
 __|____|__
|  ______--|
` + "`-/.::::.\\-'" + `Point of Sale
 ` + "`--------'" + `
`
	fmt.Fprint(out, banner)
	now := app.Session.Now()
	weekday := ptWeekdays[now.Weekday()]
	fmt.Fprintf(out, "Start time: %s — %s\n", now.Format("2006-01-02 15:04:05"), weekday)
	fmt.Fprintln(out, "-------------------------------------------------------")
}

func printMenu(out io.Writer, app *App) {
	ec := app.EmailConfig()
	from, to := ec.EmailFrom, ec.EmailTo
	if from == "" {
		from = "<not configured>"
	}
	if to == "" {
		to = "<not configured>"
	}
	fmt.Fprintf(out, "\n--- %s - Register ---\n", app.Config.StoreName)
	fmt.Fprintf(out, "Sender: %s    Recipient: %s\n", from, to)
	fmt.Fprintln(out, "-------------------------")
	fmt.Fprintln(out, " 1) Record sale")
	fmt.Fprintln(out, " 2) Show day total")
	fmt.Fprintln(out, " 3) List recent sales")
	fmt.Fprintln(out, " 4) Close cash (emails the log)")
	fmt.Fprintln(out, " 5) Reopen session [ADVANCED]")
	fmt.Fprintln(out, " 6) Top sellers (week)")
	fmt.Fprintln(out, " 7) Top sellers (month)")
	fmt.Fprintln(out, " 8) Highlights panel (top 5 week + month)")
	fmt.Fprintln(out, " 9) Configure emails")
	fmt.Fprintln(out, "10) Set/clear sender password")
	fmt.Fprintln(out, "11) Send day's log now")
	fmt.Fprintln(out, "12) Resend outbox items")
	fmt.Fprintln(out, "13) Manage products (add/edit/delete/stock)")
	fmt.Fprintln(out, " 0) Quit (does not close the cash)")
	fmt.Fprintln(out, "-------------------------")
}
