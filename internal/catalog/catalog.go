// Package catalog maintains the product catalog: a JSON file mapping a
// case-folded product key to display name, unit price, and stock.
//
// The catalog is whole-file state: every mutation rewrites the file
// atomically. Price and stock are optional; a product may carry a name
// only. Stock is a quantity and is allowed to go negative — removal
// below zero is reported as a warning, never blocked.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/store"
)

var (
	// ErrExists is returned by Add when the product key is already taken.
	ErrExists = errors.New("product already exists")
	// ErrNotFound is returned when a product key has no entry.
	ErrNotFound = errors.New("product not found")
	// ErrConflict is returned by Edit when a rename would overwrite a
	// different existing product.
	ErrConflict = errors.New("rename conflicts with existing product")
)

// folder performs Unicode case folding so keys like "MAÇÃ" and "maçã"
// collapse to the same identity.
var folder = cases.Fold()

// Key derives the catalog identity for a product name.
func Key(name string) string {
	return folder.String(strings.TrimSpace(name))
}

// Product is one catalog entry. Price and Stock are nil when undefined.
type Product struct {
	Name  string
	Price *money.Money
	Stock *money.Money
}

// Entry pairs a product with its catalog key.
type Entry struct {
	Key     string
	Product Product
}

// Catalog is the in-memory view of the products file. Mutating methods
// persist the full catalog before returning; on a persistence error the
// in-memory state is not considered committed and the error is surfaced.
type Catalog struct {
	path  string
	items map[string]Product
}

// productJSON is the wire form: canonical decimal strings or null.
type productJSON struct {
	Name  string  `json:"name"`
	Price *string `json:"price"`
	Stock *string `json:"stock"`
}

// Load reads the catalog at path. A missing file yields an empty
// catalog; unreadable entries are tolerated (legacy plain-string values
// become name-only products).
func Load(path string) (*Catalog, error) {
	c := &Catalog{path: path, items: map[string]Product{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for k, v := range raw {
		var pj productJSON
		if err := json.Unmarshal(v, &pj); err != nil {
			// Legacy form: value is just the display name.
			var name string
			if err := json.Unmarshal(v, &name); err != nil {
				continue
			}
			c.items[Key(k)] = Product{Name: name}
			continue
		}
		if pj.Name == "" {
			pj.Name = k
		}
		c.items[Key(k)] = Product{
			Name:  pj.Name,
			Price: parseOptional(pj.Price),
			Stock: parseOptional(pj.Stock),
		}
	}
	return c, nil
}

func parseOptional(s *string) *money.Money {
	if s == nil {
		return nil
	}
	m, ok := money.Parse(*s)
	if !ok {
		return nil
	}
	return &m
}

func formatOptional(m *money.Money) *string {
	if m == nil {
		return nil
	}
	s := m.String()
	return &s
}

// Save rewrites the full catalog atomically.
func (c *Catalog) Save() error {
	raw := map[string]productJSON{}
	for k, p := range c.items {
		raw[k] = productJSON{
			Name:  p.Name,
			Price: formatOptional(p.Price),
			Stock: formatOptional(p.Stock),
		}
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return store.WriteFileAtomic(c.path, append(data, '\n'))
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.items) }

// Get returns the product for an exact key.
func (c *Catalog) Get(key string) (Product, bool) {
	p, ok := c.items[key]
	return p, ok
}

// Lookup finds a product by name: exact key match first, then a
// substring scan over keys and folded display names. The scan visits
// keys in sorted order so the first match is deterministic.
func (c *Catalog) Lookup(name string) (string, Product, bool) {
	needle := Key(name)
	if needle == "" {
		return "", Product{}, false
	}
	if p, ok := c.items[needle]; ok {
		return needle, p, true
	}
	for _, k := range c.sortedKeys() {
		p := c.items[k]
		if strings.Contains(k, needle) || strings.Contains(folder.String(p.Name), needle) {
			return k, p, true
		}
	}
	return "", Product{}, false
}

// Add creates a new product. It fails with ErrExists when the folded
// key is already present.
func (c *Catalog) Add(name string, price, stock *money.Money) error {
	key := Key(name)
	if _, ok := c.items[key]; ok {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	c.items[key] = Product{Name: strings.TrimSpace(name), Price: price, Stock: stock}
	return c.Save()
}

// Edit replaces the product at key with p. Renaming moves the entry to
// the new key; a rename that collides with a different existing product
// fails with ErrConflict instead of silently destroying it.
func (c *Catalog) Edit(key string, p Product) error {
	if _, ok := c.items[key]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	newKey := Key(p.Name)
	if newKey != key {
		if _, taken := c.items[newKey]; taken {
			return fmt.Errorf("%w: %s", ErrConflict, p.Name)
		}
		delete(c.items, key)
	}
	c.items[newKey] = p
	return c.Save()
}

// StockOp selects how AdjustStock combines the amount with the current
// stock level.
type StockOp int

const (
	StockAdd StockOp = iota
	StockRemove
	StockSet
)

// AdjustStock applies op with amount to the product's stock. A missing
// current stock counts as zero for add/remove. The returned negative
// flag signals that the resulting level dropped below zero; the
// adjustment is still applied and persisted.
func (c *Catalog) AdjustStock(key string, op StockOp, amount money.Money) (newStock money.Money, negative bool, err error) {
	p, ok := c.items[key]
	if !ok {
		return money.Zero, false, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	cur := money.Zero
	if p.Stock != nil {
		cur = *p.Stock
	}
	switch op {
	case StockAdd:
		newStock = cur.Add(amount)
	case StockRemove:
		newStock = cur.Sub(amount)
	case StockSet:
		newStock = amount
	default:
		return money.Zero, false, fmt.Errorf("invalid stock operation %d", op)
	}
	p.Stock = &newStock
	c.items[key] = p
	if err := c.Save(); err != nil {
		return money.Zero, false, err
	}
	return newStock, newStock.IsNegative(), nil
}

// Delete removes the product at key. Deleting an absent key is a no-op.
func (c *Catalog) Delete(key string) error {
	if _, ok := c.items[key]; !ok {
		return nil
	}
	delete(c.items, key)
	return c.Save()
}

// List returns all entries sorted by folded display name.
func (c *Catalog) List() []Entry {
	entries := make([]Entry, 0, len(c.items))
	for k, p := range c.items {
		entries = append(entries, Entry{Key: k, Product: p})
	}
	sort.Slice(entries, func(i, j int) bool {
		a := folder.String(entries[i].Product.Name)
		b := folder.String(entries[j].Product.Name)
		if a == b {
			return entries[i].Key < entries[j].Key
		}
		return a < b
	})
	return entries
}

func (c *Catalog) sortedKeys() []string {
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
