package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marllondevsec/store-pos/internal/money"
)

func ptr(s string) *money.Money {
	m := money.MustParse(s)
	return &m
}

func newCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(filepath.Join(t.TempDir(), "products.json"))
	require.NoError(t, err)
	return c
}

func TestLoad_MissingFile(t *testing.T) {
	c := newCatalog(t)
	assert.Equal(t, 0, c.Len())
}

func TestAdd_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	c, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, c.Add("Chip", ptr("19.90"), ptr("10")))

	reloaded, err := Load(path)
	require.NoError(t, err)
	p, ok := reloaded.Get("chip")
	require.True(t, ok)
	assert.Equal(t, "Chip", p.Name)
	assert.Equal(t, "19.90", p.Price.String())
	assert.Equal(t, "10.00", p.Stock.String())
}

func TestAdd_DuplicateKeyFails(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Chip", nil, nil))
	err := c.Add("CHIP", ptr("5.00"), nil)
	assert.ErrorIs(t, err, ErrExists)
	// original entry untouched
	p, ok := c.Get("chip")
	require.True(t, ok)
	assert.Nil(t, p.Price)
}

func TestLookup_ExactThenSubstring(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Capa iPhone", ptr("35.00"), nil))
	require.NoError(t, c.Add("Capa Samsung", ptr("30.00"), nil))
	require.NoError(t, c.Add("Chip", ptr("19.90"), nil))

	key, p, ok := c.Lookup("chip")
	require.True(t, ok)
	assert.Equal(t, "chip", key)
	assert.Equal(t, "Chip", p.Name)

	// substring fallback scans keys in sorted order: "capa iphone" first
	key, p, ok = c.Lookup("capa")
	require.True(t, ok)
	assert.Equal(t, "capa iphone", key)
	assert.Equal(t, "Capa iPhone", p.Name)

	// matches against display name too
	_, p, ok = c.Lookup("samsung")
	require.True(t, ok)
	assert.Equal(t, "Capa Samsung", p.Name)

	_, _, ok = c.Lookup("fone")
	assert.False(t, ok)
	_, _, ok = c.Lookup("")
	assert.False(t, ok)
}

func TestEdit_Rename(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Chip", ptr("19.90"), ptr("10")))

	require.NoError(t, c.Edit("chip", Product{Name: "Chip 4G", Price: ptr("24.90"), Stock: ptr("10")}))

	_, ok := c.Get("chip")
	assert.False(t, ok)
	p, ok := c.Get("chip 4g")
	require.True(t, ok)
	assert.Equal(t, "24.90", p.Price.String())
}

func TestEdit_RenameCollisionRejected(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Chip", ptr("19.90"), nil))
	require.NoError(t, c.Add("Capa", ptr("30.00"), nil))

	err := c.Edit("capa", Product{Name: "Chip"})
	assert.ErrorIs(t, err, ErrConflict)

	// both entries survive
	_, ok := c.Get("chip")
	assert.True(t, ok)
	_, ok = c.Get("capa")
	assert.True(t, ok)
}

func TestEdit_MissingKey(t *testing.T) {
	c := newCatalog(t)
	err := c.Edit("ghost", Product{Name: "Ghost"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdjustStock(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Chip", nil, ptr("10")))

	got, neg, err := c.AdjustStock("chip", StockAdd, money.MustParse("2.5"))
	require.NoError(t, err)
	assert.False(t, neg)
	assert.Equal(t, "12.50", got.String())

	got, neg, err = c.AdjustStock("chip", StockRemove, money.MustParse("20"))
	require.NoError(t, err)
	assert.True(t, neg, "going below zero warns but does not block")
	assert.Equal(t, "-7.50", got.String())

	got, neg, err = c.AdjustStock("chip", StockSet, money.MustParse("4"))
	require.NoError(t, err)
	assert.False(t, neg)
	assert.Equal(t, "4.00", got.String())
}

func TestAdjustStock_MissingStockTreatedAsZero(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Fone", nil, nil))

	got, neg, err := c.AdjustStock("fone", StockRemove, money.MustParse("3"))
	require.NoError(t, err)
	assert.True(t, neg)
	assert.Equal(t, "-3.00", got.String())
}

func TestDelete(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("Chip", nil, nil))
	require.NoError(t, c.Delete("chip"))
	_, ok := c.Get("chip")
	assert.False(t, ok)

	// absent key is a no-op
	require.NoError(t, c.Delete("chip"))
}

func TestList_SortedByDisplayName(t *testing.T) {
	c := newCatalog(t)
	require.NoError(t, c.Add("fone", nil, nil))
	require.NoError(t, c.Add("Capa", nil, nil))
	require.NoError(t, c.Add("chip", nil, nil))

	var names []string
	for _, e := range c.List() {
		names = append(names, e.Product.Name)
	}
	assert.Equal(t, []string{"Capa", "chip", "fone"}, names)
}

func TestLoad_LegacyStringValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"chip": "Chip"}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	p, ok := c.Get("chip")
	require.True(t, ok)
	assert.Equal(t, "Chip", p.Name)
	assert.Nil(t, p.Price)
	assert.Nil(t, p.Stock)
}

func TestLoad_NullPriceAndStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	raw := `{"chip": {"name": "Chip", "price": null, "stock": null}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	p, ok := c.Get("chip")
	require.True(t, ok)
	assert.Nil(t, p.Price)
	assert.Nil(t, p.Stock)
}
