// Package report aggregates sales across ledger files and renders the
// top-seller summaries.
//
// Aggregates are derived state: each report request rescans the ledger
// files in range and recomputes per-product totals. The rendered text
// is persisted as a summary file in the log directory, named after the
// period bounds.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/marllondevsec/store-pos/internal/ledger"
	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/store"
)

// topSellerLimit caps the ranked lines in a persisted report.
const topSellerLimit = 50

var folder = cases.Fold()

// Entry is the cumulative quantity and revenue for one product name.
// Product keeps the display form first seen in the ledgers.
type Entry struct {
	Product string
	Qty     money.Money
	Revenue money.Money
}

// Metric selects the ranking dimension.
type Metric int

const (
	ByQuantity Metric = iota
	ByRevenue
)

// Result is one generated report: the rendered text and where it was
// persisted.
type Result struct {
	Title  string
	Period string
	Path   string
	Text   string
	Items  []Entry
}

// Reporter scans a store's ledgers and writes summary files next to
// them.
type Reporter struct {
	Ledger *ledger.Ledger

	// Now supplies "today" and the generation timestamp; defaults to
	// time.Now.
	Now func() time.Time
}

// New creates a Reporter over lg.
func New(lg *ledger.Ledger) *Reporter {
	return &Reporter{Ledger: lg, Now: time.Now}
}

// Aggregate accumulates quantity and revenue per case-folded product
// name over every ledger file whose date falls in [start, end]
// inclusive. Dates are YYYY-MM-DD strings, which order lexically.
// Malformed records are skipped by the ledger parser, never fatal.
func (r *Reporter) Aggregate(start, end string) (map[string]Entry, error) {
	files, err := r.Ledger.Files()
	if err != nil {
		return nil, err
	}
	agg := map[string]Entry{}
	for _, f := range files {
		if f.Date < start || f.Date > end {
			continue
		}
		recs, err := ledger.Entries(f.Path)
		if err != nil {
			return nil, err
		}
		for _, rec := range recs {
			name := strings.TrimSpace(rec.Product)
			key := folder.String(name)
			e, ok := agg[key]
			if !ok {
				e = Entry{Product: name}
			}
			e.Qty = e.Qty.Add(rec.Qty)
			e.Revenue = e.Revenue.Add(rec.Subtotal)
			agg[key] = e
		}
	}
	return agg, nil
}

// Rank orders the aggregate descending by the chosen metric, breaking
// ties descending by the other metric and then by product name for a
// stable order, and truncates to topN (0 means no truncation).
func Rank(agg map[string]Entry, by Metric, topN int) []Entry {
	items := make([]Entry, 0, len(agg))
	for _, e := range agg {
		items = append(items, e)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		first, second := a.Qty.Cmp(b.Qty), a.Revenue.Cmp(b.Revenue)
		if by == ByRevenue {
			first, second = second, first
		}
		if first != 0 {
			return first > 0
		}
		if second != 0 {
			return second > 0
		}
		return a.Product < b.Product
	})
	if topN > 0 && len(items) > topN {
		items = items[:topN]
	}
	return items
}

// render produces the fixed-format report block.
func (r *Reporter) render(items []Entry, title, period string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)
	fmt.Fprintf(&b, "# Período: %s\n", period)
	fmt.Fprintf(&b, "# Gerado em: %s\n", r.Now().Format(ledger.TimestampLayout))
	b.WriteString("# Formato: rank | produto | quant_total | receita_total\n")
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString("Sem vendas neste período.\n")
		return b.String()
	}
	for i, it := range items {
		fmt.Fprintf(&b, "%d | %s | %s | R$ %s\n", i+1, it.Product, it.Qty, it.Revenue)
	}
	return b.String()
}

// generate aggregates [start, end], renders under title, and persists
// the text atomically as fname in the log directory.
func (r *Reporter) generate(start, end, title, fname string) (Result, error) {
	agg, err := r.Aggregate(start, end)
	if err != nil {
		return Result{}, err
	}
	items := Rank(agg, ByQuantity, topSellerLimit)
	period := fmt.Sprintf("%s até %s", start, end)
	res := Result{
		Title:  title,
		Period: period,
		Text:   r.render(items, title, period),
		Items:  items,
		Path:   filepath.Join(r.Ledger.Dir, fname),
	}
	if err := store.WriteFileAtomic(res.Path, []byte(res.Text)); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Weekly reports the trailing seven days: [today−6, today].
func (r *Reporter) Weekly() (Result, error) {
	today := r.Now()
	start := ledger.DateOf(today.AddDate(0, 0, -6))
	end := ledger.DateOf(today)
	fname := fmt.Sprintf("%s_summary_week_%s_to_%s.txt", r.Ledger.Store, start, end)
	return r.generate(start, end, "Top vendidos - Semana", fname)
}

// Monthly reports the current month so far: [1st, today].
func (r *Reporter) Monthly() (Result, error) {
	today := r.Now()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	start, end := ledger.DateOf(first), ledger.DateOf(today)
	fname := fmt.Sprintf("%s_summary_month_%s.txt", r.Ledger.Store, today.Format("2006-01"))
	return r.generate(start, end, "Top vendidos - Mês", fname)
}

// Panel generates both periodic reports and returns them along with a
// condensed top-n block of each.
func (r *Reporter) Panel(topN int) (week Result, month Result, condensed string, err error) {
	week, err = r.Weekly()
	if err != nil {
		return
	}
	month, err = r.Monthly()
	if err != nil {
		return
	}
	var b strings.Builder
	b.WriteString("--- Top semana ---\n")
	writeCondensed(&b, week.Items, topN)
	b.WriteString("\n--- Top mês ---\n")
	writeCondensed(&b, month.Items, topN)
	condensed = b.String()
	return
}

func writeCondensed(b *strings.Builder, items []Entry, topN int) {
	if topN > 0 && len(items) > topN {
		items = items[:topN]
	}
	if len(items) == 0 {
		b.WriteString("(sem vendas)\n")
		return
	}
	for i, it := range items {
		fmt.Fprintf(b, "%d. %s  qty: %s  receita: R$ %s\n", i+1, it.Product, it.Qty, it.Revenue)
	}
}

// IsLastDayOfMonth reports whether d's successor falls in a different
// month.
func IsLastDayOfMonth(d time.Time) bool {
	return d.AddDate(0, 0, 1).Month() != d.Month()
}

// AutoPeriodic emits the scheduled reports for today: the weekly
// summary on Saturdays, the monthly summary on the last calendar day
// of the month. Either result is nil when not due.
func (r *Reporter) AutoPeriodic() (week, month *Result, err error) {
	today := r.Now()
	if today.Weekday() == time.Saturday {
		w, err := r.Weekly()
		if err != nil {
			return nil, nil, err
		}
		week = &w
	}
	if IsLastDayOfMonth(today) {
		m, err := r.Monthly()
		if err != nil {
			return week, nil, err
		}
		month = &m
	}
	return week, month, nil
}
