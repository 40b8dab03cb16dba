// Package outbox is the local retry queue for ledgers that failed to
// email at close-of-day.
//
// Each failed send copies the ledger into the outbox directory under a
// date-and-timestamp name and writes a .meta.json sidecar recording
// when and why. Items are removed only after a successful resend;
// duplicate enqueues for the same close are allowed.
package outbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/marllondevsec/store-pos/internal/ledger"
	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/store"
)

const metaSuffix = ".meta.json"

// Meta is the sidecar recorded next to each queued ledger copy.
type Meta struct {
	SavedAt  string `json:"saved_at"`
	Reason   string `json:"reason"`
	Original string `json:"original"`
}

// Item is one queued ledger copy.
type Item struct {
	Name string // file name inside the outbox
	Path string // payload path
	Date string // session date derived from the name prefix, "" if unparsable
}

// MetaPath returns the sidecar path for the item.
func (i Item) MetaPath() string { return i.Path + metaSuffix }

// Outbox manages the queue directory.
type Outbox struct {
	Dir string

	// Now stamps enqueue times; defaults to time.Now.
	Now func() time.Time
}

// New creates an Outbox over dir.
func New(dir string) *Outbox {
	return &Outbox{Dir: dir, Now: time.Now}
}

// Enqueue copies the ledger at logPath into the outbox and writes its
// metadata sidecar. The queued name is
// <date>_<YYYYMMDD_HHMMSS>_<original-name>, so resend can re-derive the
// session date from the prefix.
func (o *Outbox) Enqueue(logPath, date, reason string) (Item, error) {
	if err := store.EnsureDir(o.Dir); err != nil {
		return Item{}, err
	}
	now := o.Now()
	name := fmt.Sprintf("%s_%s_%s", date, now.Format("20060102_150405"), filepath.Base(logPath))
	path := filepath.Join(o.Dir, name)
	if err := store.CopyFile(logPath, path); err != nil {
		return Item{}, fmt.Errorf("enqueue outbox: %w", err)
	}
	meta := Meta{
		SavedAt:  now.Format(ledger.TimestampLayout),
		Reason:   reason,
		Original: filepath.Base(logPath),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return Item{}, fmt.Errorf("enqueue outbox: %w", err)
	}
	if err := store.WriteFileAtomic(path+metaSuffix, append(data, '\n')); err != nil {
		return Item{}, err
	}
	return Item{Name: name, Path: path, Date: date}, nil
}

// ReadMeta loads the sidecar for an item.
func (o *Outbox) ReadMeta(item Item) (Meta, error) {
	data, err := os.ReadFile(item.MetaPath())
	if err != nil {
		return Meta{}, fmt.Errorf("read outbox meta: %w", err)
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return Meta{}, fmt.Errorf("read outbox meta: %w", err)
	}
	return m, nil
}

// Items lists the queued payloads (sidecars excluded) in name-sorted
// order. A missing outbox directory yields an empty queue.
func (o *Outbox) Items() ([]Item, error) {
	entries, err := os.ReadDir(o.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list outbox: %w", err)
	}
	var items []Item
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), metaSuffix) {
			continue
		}
		items = append(items, Item{
			Name: e.Name(),
			Path: filepath.Join(o.Dir, e.Name()),
			Date: dateFromName(e.Name()),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// dateFromName recovers the session date from the queued-name prefix.
func dateFromName(name string) string {
	prefix, _, _ := strings.Cut(name, "_")
	if _, err := time.Parse(ledger.DateLayout, prefix); err != nil {
		return ""
	}
	return prefix
}

// Remove deletes the item's payload and its sidecar, if present.
func (o *Outbox) Remove(item Item) error {
	if err := os.Remove(item.Path); err != nil {
		return fmt.Errorf("remove outbox item: %w", err)
	}
	if err := os.Remove(item.MetaPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove outbox meta: %w", err)
	}
	return nil
}

// SendFunc attempts delivery of a queued ledger copy.
type SendFunc func(logPath, date string, total money.Money) error

// TotalFunc recomputes the day's total from the live ledger.
type TotalFunc func(date string) (money.Money, error)

// Failure pairs a queue item with the error that kept it queued.
type Failure struct {
	Item Item
	Err  error
}

// ResendAll walks the queue in name order and retries each item: the
// session date comes from the name prefix (falling back to
// fallbackDate), the total is recomputed from that date's ledger, and
// the item is removed on success. Failed items stay queued for a later
// retry; a failure never stops the walk.
func (o *Outbox) ResendAll(send SendFunc, total TotalFunc, fallbackDate string) (sent []Item, failed []Failure, err error) {
	items, err := o.Items()
	if err != nil {
		return nil, nil, err
	}
	for _, item := range items {
		date := item.Date
		if date == "" {
			date = fallbackDate
		}
		sum, err := total(date)
		if err != nil {
			sum = money.Zero
		}
		if err := send(item.Path, date, sum); err != nil {
			failed = append(failed, Failure{Item: item, Err: err})
			continue
		}
		if err := o.Remove(item); err != nil {
			failed = append(failed, Failure{Item: item, Err: err})
			continue
		}
		sent = append(sent, item)
	}
	return sent, failed, nil
}
