// Package ledger manages the per-date append-only sales logs.
//
// Each calendar day has one UTF-8 text file named
// <store>_<YYYY-MM-DD>.txt in the log directory. Lines starting with
// "#" are comments (header block, closing summary); data lines carry
// six "|"-separated fields:
//
//	timestamp | shortId | product | qty | unitPrice | subtotal
//
// The only mutation is appending lines, each fsync'd before the append
// returns. Readers skip comment lines and tolerate malformed records.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/store"
)

// DateLayout is the calendar-day form used in file names and the
// session record.
const DateLayout = "2006-01-02"

// TimestampLayout is the record timestamp form.
const TimestampLayout = "2006-01-02 15:04:05"

// DateOf renders t as a calendar day.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Ledger locates and writes the per-date sales logs for one store.
type Ledger struct {
	Dir   string
	Store string

	// Now supplies timestamps; defaults to time.Now. Overridable for
	// deterministic tests.
	Now func() time.Time

	// NewID supplies sale transaction ids; defaults to random 8-hex
	// tokens. Overridable for deterministic tests.
	NewID func() string
}

// New creates a Ledger writing under dir for the named store.
func New(dir, storeName string) *Ledger {
	return &Ledger{
		Dir:   dir,
		Store: storeName,
		Now:   time.Now,
		NewID: shortID,
	}
}

// shortID returns an 8-hex-character random token.
func shortID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:4])
}

// Path returns the ledger file path for a calendar day.
func (l *Ledger) Path(date string) string {
	return filepath.Join(l.Dir, fmt.Sprintf("%s_%s.txt", l.Store, date))
}

// EnsureDay creates the day's ledger with its header comment block if
// the file does not exist yet.
func (l *Ledger) EnsureDay(date string) error {
	path := l.Path(date)
	if store.Exists(path) {
		return nil
	}
	header := fmt.Sprintf(
		"# Log de vendas - %s\n# Data: %s\n# Formato: timestamp | id | produto | qtd | unit_price | subtotal\n",
		l.Store, date)
	return store.WriteFileAtomic(path, []byte(header))
}

// Append records a sale on the given day and returns the appended
// record. The subtotal is qty × unitPrice rounded half-up to 2
// decimals. The write is fsync'd before returning.
func (l *Ledger) Append(date, product string, qty, unitPrice money.Money) (Record, error) {
	rec := Record{
		Timestamp: l.Now(),
		ID:        l.NewID(),
		Product:   strings.TrimSpace(product),
		Qty:       qty,
		UnitPrice: unitPrice,
		Subtotal:  qty.Mul(unitPrice),
	}
	if err := store.AppendLine(l.Path(date), rec.Line()); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// AppendClosing appends the closing summary comment line for the day.
func (l *Ledger) AppendClosing(date string, total money.Money) error {
	line := fmt.Sprintf("# FECHAMENTO: %s | TOTAL R$ %s",
		l.Now().Format(TimestampLayout), total)
	return store.AppendLine(l.Path(date), line)
}

// ListRecent returns the last limit data lines of the day's ledger in
// file order. Comment and blank lines are excluded. A missing file
// yields no lines.
func (l *Ledger) ListRecent(date string, limit int) ([]string, error) {
	lines, err := l.dataLines(date)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, nil
}

// ComputeTotal sums the subtotal field of every well-formed data line
// of the day, rounded half-up to 2 decimals. Malformed lines are
// skipped; a missing file totals 0.00.
func (l *Ledger) ComputeTotal(date string) (money.Money, error) {
	lines, err := l.dataLines(date)
	if err != nil {
		return money.Zero, err
	}
	total := money.Zero
	for _, line := range lines {
		parts := splitFields(line)
		if len(parts) < 6 {
			continue
		}
		sub, ok := money.Parse(parts[5])
		if !ok {
			continue
		}
		total = total.Add(sub)
	}
	return total, nil
}

// dataLines reads the day's non-comment, non-blank lines.
func (l *Ledger) dataLines(date string) ([]string, error) {
	f, err := os.Open(l.Path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return lines, nil
}

// DayFile is one ledger file discovered in the log directory.
type DayFile struct {
	Date string
	Path string
}

// Files lists the per-date ledger files in the log directory, sorted
// by date. Summary reports and foreign files are ignored.
func (l *Ledger) Files() ([]DayFile, error) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(l.Store) + `_(\d{4}-\d{2}-\d{2})\.txt$`)
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list ledgers: %w", err)
	}
	var files []DayFile
	for _, e := range entries {
		m := pattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if _, err := time.Parse(DateLayout, m[1]); err != nil {
			continue
		}
		files = append(files, DayFile{Date: m[1], Path: filepath.Join(l.Dir, e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Date < files[j].Date })
	return files, nil
}

// Entries parses every data line of the file at path, tolerating
// malformed fields per ParseLine.
func Entries(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	defer f.Close()

	var recs []Record
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if rec, ok := ParseLine(sc.Text()); ok {
			recs = append(recs, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return recs, nil
}
