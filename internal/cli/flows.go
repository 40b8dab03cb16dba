package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/marllondevsec/store-pos/internal/catalog"
	"github.com/marllondevsec/store-pos/internal/config"
	"github.com/marllondevsec/store-pos/internal/mailer"
	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/session"
)

// SaleFlow records one sale on the session's ledger, offering the
// catalog's suggested price and an optional stock decrement.
func (a *App) SaleFlow(p *Prompter, out io.Writer) error {
	date := a.sessionDate()
	if rec, err := a.Session.Current(); err == nil && rec != nil && rec.State == session.Closed {
		fmt.Fprintf(out, "Warning: session for %s is CLOSED; recording anyway.\n", rec.Date)
	}

	name, err := p.Line("Product name", "")
	if err != nil {
		return err
	}
	if name == "" {
		return NewExitError(ExitFailure, "empty product name, sale cancelled")
	}

	cat, err := a.LoadCatalog()
	if err != nil {
		return err
	}
	key, prod, found := cat.Lookup(name)
	var suggested *money.Money
	if found {
		fmt.Fprintf(out, "Found in catalog: %s\n", prod.Name)
		if prod.Price != nil {
			suggested = prod.Price
			fmt.Fprintf(out, "Suggested price: R$ %s (Enter to accept)\n", prod.Price)
		}
		if prod.Stock != nil {
			fmt.Fprintf(out, "Current stock: %s\n", prod.Stock)
		}
	}

	qtyRaw, err := p.Line("Quantity", "1")
	if err != nil {
		return err
	}
	qty, ok := money.Parse(qtyRaw)
	if !ok {
		return NewExitError(ExitFailure, "invalid quantity, sale cancelled")
	}

	var priceDefault string
	if suggested != nil {
		priceDefault = suggested.String()
	}
	priceRaw, err := p.Line("Unit price (e.g. 19.90)", priceDefault)
	if err != nil {
		return err
	}
	price, ok := money.Parse(priceRaw)
	if !ok {
		return NewExitError(ExitFailure, "invalid price, sale cancelled")
	}

	rec, err := a.Ledger.Append(date, name, qty, price)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to record sale", err)
	}
	fmt.Fprintf(out, "Sale recorded: %s x%s  subtotal: R$ %s\n", rec.Product, rec.Qty, rec.Subtotal)

	if found && prod.Stock != nil && p.YesNo("Subtract this quantity from catalog stock?") {
		newStock, negative, err := cat.AdjustStock(key, catalog.StockRemove, qty)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to update stock", err)
		}
		fmt.Fprintf(out, "Stock updated: %s\n", newStock)
		if negative {
			fmt.Fprintln(out, "Warning: stock is now negative.")
		}
	}
	return nil
}

// TotalFlow prints the running total of the session's day.
func (a *App) TotalFlow(out io.Writer) error {
	date := a.sessionDate()
	total, err := a.Ledger.ComputeTotal(date)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	fmt.Fprintf(out, "Accumulated total for %s: R$ %s\n", date, total)
	return nil
}

// ListFlow prints the last limit sales of the session's day.
func (a *App) ListFlow(out io.Writer, limit int) error {
	date := a.sessionDate()
	lines, err := a.Ledger.ListRecent(date, limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	if len(lines) == 0 {
		fmt.Fprintf(out, "No sales recorded for %s.\n", date)
		return nil
	}
	fmt.Fprintf(out, "Recent sales (%s):\n", a.Ledger.Path(date))
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}

// CloseFlow finalizes the session's day: shows the total, asks for
// confirmation, writes the closing summary, and dispatches the log by
// email (falling back to the outbox on failure).
func (a *App) CloseFlow(p *Prompter, out io.Writer, assumeYes bool) error {
	date := a.sessionDate()
	total, err := a.Ledger.ComputeTotal(date)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	fmt.Fprintf(out, "=== CASH CLOSE ===\nStore: %s\nDate: %s\nDay total: R$ %s\n",
		a.Config.StoreName, date, total)
	if !assumeYes && !p.YesNo("Confirm cash close?") {
		fmt.Fprintln(out, "Close cancelled.")
		return nil
	}

	total, err = a.Session.Close(date, a.Ledger)
	if err != nil {
		if errors.Is(err, session.ErrNoOpenSession) {
			return WrapExitError(ExitFailure, "cannot close", err)
		}
		return WrapExitError(ExitCommandError, "close failed", err)
	}
	fmt.Fprintln(out, "Cash closed. Summary recorded.")
	a.dispatchLog(p, out, date, total)
	return nil
}

// ReopenFlow force-reopens the session for a date. An escape hatch for
// recording late sales after a close.
func (a *App) ReopenFlow(p *Prompter, out io.Writer, date string) error {
	if date == "" {
		var err error
		date, err = p.Line("Session date to reopen (YYYY-MM-DD)", a.Session.Today())
		if err != nil {
			return err
		}
	}
	if err := a.Session.Reopen(date); err != nil {
		return WrapExitError(ExitFailure, "cannot reopen session", err)
	}
	fmt.Fprintf(out, "Session %s reopened (state=OPEN).\n", date)
	return nil
}

// WeeklyFlow generates and prints the trailing-week top-seller report.
func (a *App) WeeklyFlow(out io.Writer) error {
	res, err := a.Reporter.Weekly()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate weekly report", err)
	}
	fmt.Fprintln(out, res.Text)
	fmt.Fprintf(out, "Summary saved to: %s\n", res.Path)
	return nil
}

// MonthlyFlow generates and prints the month-to-date top-seller report.
func (a *App) MonthlyFlow(out io.Writer) error {
	res, err := a.Reporter.Monthly()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate monthly report", err)
	}
	fmt.Fprintln(out, res.Text)
	fmt.Fprintf(out, "Summary saved to: %s\n", res.Path)
	return nil
}

// PanelFlow generates both periodic reports and prints the condensed
// highlights block.
func (a *App) PanelFlow(out io.Writer, topN int) error {
	week, month, condensed, err := a.Reporter.Panel(topN)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate panel", err)
	}
	fmt.Fprintln(out, "=== HIGHLIGHTS ===")
	fmt.Fprint(out, condensed)
	fmt.Fprintf(out, "\nSummaries saved to:\n  %s\n  %s\n", week.Path, month.Path)
	return nil
}

// SendFlow dispatches the session day's log now, without closing.
func (a *App) SendFlow(p *Prompter, out io.Writer) error {
	date := a.sessionDate()
	total, err := a.Ledger.ComputeTotal(date)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}
	a.dispatchLog(p, out, date, total)
	return nil
}

// ResendFlow retries every queued outbox item in name order.
func (a *App) ResendFlow(p *Prompter, out io.Writer) error {
	items, err := a.Outbox.Items()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read outbox", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "Outbox is empty.")
		return nil
	}

	ec := a.EmailConfig()
	pwd, err := a.credential(p, out, &ec)
	if err != nil {
		return WrapExitError(ExitFailure, "cannot resend", err)
	}

	send := func(logPath, date string, total money.Money) error {
		fmt.Fprintf(out, "Resending %s...\n", logPath)
		return a.Sender.Send(mailer.Message{
			Store:   a.Config.StoreName,
			From:    ec.EmailFrom,
			To:      ec.EmailTo,
			Server:  ec.SMTPServer,
			Port:    ec.SMTPPort,
			Date:    date,
			Total:   total,
			LogPath: logPath,
		}, pwd)
	}
	sent, failed, err := a.Outbox.ResendAll(send, a.Ledger.ComputeTotal, a.Session.Today())
	if err != nil {
		return WrapExitError(ExitCommandError, "resend aborted", err)
	}
	for _, item := range sent {
		fmt.Fprintf(out, "Resent and removed: %s\n", item.Name)
	}
	for _, f := range failed {
		fmt.Fprintf(out, "Still queued %s: %v\n", f.Item.Name, f.Err)
	}
	if len(failed) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d item(s) left in outbox", len(failed)))
	}
	return nil
}

// dispatchLog emails the day's log. Any failure — missing credential
// included — enqueues a copy into the outbox so the log is never lost.
func (a *App) dispatchLog(p *Prompter, out io.Writer, date string, total money.Money) {
	ec := a.EmailConfig()
	logPath := a.Ledger.Path(date)

	pwd, err := a.credential(p, out, &ec)
	if err != nil {
		fmt.Fprintf(out, "Cannot send: %v\n", err)
		a.enqueueFailed(out, logPath, date, err.Error())
		return
	}

	msg := mailer.Message{
		Store:   a.Config.StoreName,
		From:    ec.EmailFrom,
		To:      ec.EmailTo,
		Server:  ec.SMTPServer,
		Port:    ec.SMTPPort,
		Date:    date,
		Total:   total,
		LogPath: logPath,
	}
	if err := a.Sender.Send(msg, pwd); err != nil {
		fmt.Fprintf(out, "Send failed: %v\n", err)
		a.enqueueFailed(out, logPath, date, err.Error())
		return
	}
	fmt.Fprintf(out, "Log sent to %s.\n", ec.EmailTo)
}

// credential resolves the sending password: the stored secret when
// present, otherwise a prompt (with an offer to store it).
func (a *App) credential(p *Prompter, out io.Writer, ec *config.EmailConfig) (string, error) {
	if pwd, ok := ec.Credential(); ok {
		return pwd, nil
	}
	fmt.Fprintln(out, "If you use Gmail, supply an app password, not the account password.")
	pwd, err := p.Password("Sender email password (hidden)")
	if err != nil {
		return "", err
	}
	if pwd == "" {
		return "", errors.New("password not provided")
	}
	if p.YesNo("Store the password for future sends?") {
		ec.SetPassword(pwd)
		if err := ec.Save(a.Config.EmailConfigFile); err != nil {
			fmt.Fprintf(out, "Could not store password: %v\n", err)
		}
	}
	return pwd, nil
}

// enqueueFailed copies the log into the outbox and reports where.
func (a *App) enqueueFailed(out io.Writer, logPath, date, reason string) {
	item, err := a.Outbox.Enqueue(logPath, date, reason)
	if err != nil {
		slog.Error("outbox enqueue failed", "log", logPath, "error", err)
		fmt.Fprintf(out, "Could not save to outbox: %v\n", err)
		return
	}
	fmt.Fprintf(out, "Log copy queued in outbox for resend: %s\n", item.Path)
}
