package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/marllondevsec/store-pos/internal/money"
)

// Record is one sale line. Records are immutable once appended.
type Record struct {
	Timestamp time.Time
	ID        string
	Product   string
	Qty       money.Money
	UnitPrice money.Money
	Subtotal  money.Money
}

// Line renders the record in the ledger wire form.
func (r Record) Line() string {
	return fmt.Sprintf("%s | %s | %s | %s | %s | %s",
		r.Timestamp.Format(TimestampLayout), r.ID, r.Product,
		r.Qty, r.UnitPrice, r.Subtotal)
}

// splitFields splits a ledger line on "|" and trims each field.
func splitFields(line string) []string {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ParseLine parses one ledger line into a Record.
//
// Comment and blank lines, and lines with fewer than six fields, are
// rejected (ok=false). Within a data line the parse is tolerant:
// unparsable qty or price default to zero, an unparsable subtotal is
// recomputed as qty × price, and an unparsable timestamp is left zero.
// Aggregation must never abort on a damaged record.
func ParseLine(line string) (Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Record{}, false
	}
	parts := splitFields(line)
	if len(parts) < 6 {
		return Record{}, false
	}

	rec := Record{ID: parts[1], Product: parts[2]}
	if ts, err := time.Parse(TimestampLayout, parts[0]); err == nil {
		rec.Timestamp = ts
	} else if ts, err := time.Parse(time.RFC3339, parts[0]); err == nil {
		rec.Timestamp = ts
	}
	if qty, ok := money.Parse(parts[3]); ok {
		rec.Qty = qty
	}
	if price, ok := money.Parse(parts[4]); ok {
		rec.UnitPrice = price
	}
	if sub, ok := money.Parse(parts[5]); ok {
		rec.Subtotal = sub
	} else {
		rec.Subtotal = rec.Qty.Mul(rec.UnitPrice)
	}
	return rec, true
}
