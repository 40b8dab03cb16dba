// Package session tracks the single current cash-session record: the
// one open/closed marker for the day's cash drawer.
//
// Exactly one record exists system-wide, stored as key=value lines in
// the session file and overwritten atomically on every transition.
// Past sessions survive only through their ledger files.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/store"
)

// State is the session lifecycle position.
type State string

const (
	Open   State = "OPEN"
	Closed State = "CLOSED"
)

// ErrNoOpenSession is returned by Close when no OPEN record matches the
// requested date.
var ErrNoOpenSession = errors.New("no matching open session")

// Record is the current session marker.
type Record struct {
	State State
	Date  string // calendar day, YYYY-MM-DD
	Store string
}

// Ledger is the slice of the sales ledger the tracker drives: creating
// the day file when a session starts and writing the closing summary.
type Ledger interface {
	EnsureDay(date string) error
	ComputeTotal(date string) (money.Money, error)
	AppendClosing(date string, total money.Money) error
}

// Tracker reads and transitions the session record at a fixed path.
type Tracker struct {
	Path  string
	Store string

	// Now supplies "today"; defaults to time.Now.
	Now func() time.Time
}

// New creates a Tracker over the session file at path.
func New(path, storeName string) *Tracker {
	return &Tracker{Path: path, Store: storeName, Now: time.Now}
}

// Today returns the tracker's current calendar day.
func (t *Tracker) Today() string {
	return t.Now().Format("2006-01-02")
}

// Current loads the session record. A missing, unreadable, or
// incomplete file yields (nil, nil): no current session.
func (t *Tracker) Current() (*Record, error) {
	data, err := os.ReadFile(t.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	rec := &Record{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "state":
			rec.State = State(strings.TrimSpace(v))
		case "date":
			rec.Date = strings.TrimSpace(v)
		case "store":
			rec.Store = strings.TrimSpace(v)
		}
	}
	if rec.State == "" || rec.Date == "" {
		return nil, nil
	}
	return rec, nil
}

// save overwrites the session record atomically.
func (t *Tracker) save(state State, date string) error {
	content := fmt.Sprintf("state=%s\ndate=%s\nstore=%s\n", state, date, t.Store)
	return store.WriteFileAtomic(t.Path, []byte(content))
}

// Start opens (or resumes) today's session and makes sure the day's
// ledger exists with its header. It reports whether an already-open
// session for today was resumed.
func (t *Tracker) Start(lg Ledger) (date string, resumed bool, err error) {
	today := t.Today()
	cur, err := t.Current()
	if err != nil {
		return "", false, err
	}
	if cur != nil && cur.State == Open && cur.Date == today {
		return today, true, nil
	}
	if err := t.save(Open, today); err != nil {
		return "", false, err
	}
	if err := lg.EnsureDay(today); err != nil {
		return "", false, err
	}
	return today, false, nil
}

// Close finalizes the session for date: it requires the current record
// to be OPEN with a matching date, appends the closing summary line to
// the day's ledger, and flips the record to CLOSED. On ErrNoOpenSession
// neither the session file nor the ledger is touched. The caller is
// responsible for dispatching the log by email afterwards.
func (t *Tracker) Close(date string, lg Ledger) (money.Money, error) {
	cur, err := t.Current()
	if err != nil {
		return money.Zero, err
	}
	if cur == nil || cur.State != Open || cur.Date != date {
		return money.Zero, fmt.Errorf("%w for %s", ErrNoOpenSession, date)
	}
	total, err := lg.ComputeTotal(date)
	if err != nil {
		return money.Zero, err
	}
	if err := lg.AppendClosing(date, total); err != nil {
		return money.Zero, err
	}
	if err := t.save(Closed, date); err != nil {
		return money.Zero, err
	}
	return total, nil
}

// Reopen force-overwrites the record to OPEN for date, regardless of
// prior state. An explicit escape hatch: it does not validate that a
// ledger exists for the date.
func (t *Tracker) Reopen(date string) error {
	if date == "" {
		date = t.Today()
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid session date %q", date)
	}
	return t.save(Open, date)
}
