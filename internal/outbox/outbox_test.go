package outbox

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marllondevsec/store-pos/internal/money"
	"github.com/marllondevsec/store-pos/internal/testutil"
)

func fixture(t *testing.T) (*Outbox, string) {
	t.Helper()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "PandaCell_2025-03-10.txt")
	require.NoError(t, os.WriteFile(logPath, []byte("# header\nline\n"), 0o644))

	ob := New(filepath.Join(dir, "outbox"))
	ob.Now = testutil.FixedClock(time.Date(2025, 3, 10, 18, 5, 42, 0, time.UTC)).Now
	return ob, logPath
}

func TestEnqueue_CopiesPayloadAndMeta(t *testing.T) {
	ob, logPath := fixture(t)

	item, err := ob.Enqueue(logPath, "2025-03-10", "auth failed")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10_20250310_180542_PandaCell_2025-03-10.txt", item.Name)
	assert.Equal(t, "2025-03-10", item.Date)

	payload, err := os.ReadFile(item.Path)
	require.NoError(t, err)
	assert.Equal(t, "# header\nline\n", string(payload))

	meta, err := ob.ReadMeta(item)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10 18:05:42", meta.SavedAt)
	assert.Equal(t, "auth failed", meta.Reason)
	assert.Equal(t, "PandaCell_2025-03-10.txt", meta.Original)
}

func TestEnqueue_DuplicatesAllowed(t *testing.T) {
	ob, logPath := fixture(t)
	clock := testutil.FixedClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))
	ob.Now = clock.Now

	_, err := ob.Enqueue(logPath, "2025-03-10", "first")
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = ob.Enqueue(logPath, "2025-03-10", "second")
	require.NoError(t, err)

	items, err := ob.Items()
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestItems_SortedAndExcludesSidecars(t *testing.T) {
	ob, logPath := fixture(t)
	clock := testutil.FixedClock(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))
	ob.Now = clock.Now

	_, err := ob.Enqueue(logPath, "2025-03-11", "x")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = ob.Enqueue(logPath, "2025-03-10", "x")
	require.NoError(t, err)

	items, err := ob.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2025-03-10", items[0].Date, "name-sorted order")
	assert.Equal(t, "2025-03-11", items[1].Date)
	for _, it := range items {
		assert.NotContains(t, it.Name, ".meta.json")
	}
}

func TestItems_MissingDir(t *testing.T) {
	ob := New(filepath.Join(t.TempDir(), "nope"))
	items, err := ob.Items()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestResendAll_SuccessRemovesPayloadAndSidecar(t *testing.T) {
	ob, logPath := fixture(t)
	item, err := ob.Enqueue(logPath, "2025-03-10", "down")
	require.NoError(t, err)

	var sentDates []string
	var sentTotals []string
	send := func(path, date string, total money.Money) error {
		sentDates = append(sentDates, date)
		sentTotals = append(sentTotals, total.String())
		return nil
	}
	total := func(date string) (money.Money, error) {
		assert.Equal(t, "2025-03-10", date)
		return money.MustParse("18.75"), nil
	}

	sent, failed, err := ob.ResendAll(send, total, "2025-03-12")
	require.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Empty(t, failed)
	assert.Equal(t, []string{"2025-03-10"}, sentDates)
	assert.Equal(t, []string{"18.75"}, sentTotals)

	assert.NoFileExists(t, item.Path)
	assert.NoFileExists(t, item.MetaPath())
}

func TestResendAll_FailureKeepsItem(t *testing.T) {
	ob, logPath := fixture(t)
	item, err := ob.Enqueue(logPath, "2025-03-10", "down")
	require.NoError(t, err)

	send := func(path, date string, total money.Money) error {
		return errors.New("still down")
	}
	total := func(date string) (money.Money, error) { return money.Zero, nil }

	sent, failed, err := ob.ResendAll(send, total, "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, sent)
	require.Len(t, failed, 1)
	assert.EqualError(t, failed[0].Err, "still down")

	assert.FileExists(t, item.Path)
	assert.FileExists(t, item.MetaPath())
}

func TestResendAll_ContinuesPastFailures(t *testing.T) {
	ob, logPath := fixture(t)
	clock := testutil.FixedClock(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC))
	ob.Now = clock.Now

	_, err := ob.Enqueue(logPath, "2025-03-09", "x")
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = ob.Enqueue(logPath, "2025-03-10", "x")
	require.NoError(t, err)

	send := func(path, date string, total money.Money) error {
		if date == "2025-03-09" {
			return errors.New("boom")
		}
		return nil
	}
	total := func(date string) (money.Money, error) { return money.Zero, nil }

	sent, failed, err := ob.ResendAll(send, total, "")
	require.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Len(t, failed, 1)
}

func TestDateFromName_Fallback(t *testing.T) {
	assert.Equal(t, "2025-03-10", dateFromName("2025-03-10_20250310_180542_x.txt"))
	assert.Equal(t, "", dateFromName("garbage.txt"))
}
