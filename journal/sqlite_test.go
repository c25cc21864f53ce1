package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteJournal, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('positions','trades')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["positions"])
	assert.True(t, found["trades"])
}

func TestSQLiteRecordAndQuery(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	pos := PositionRecord{
		PositionID:    "P1",
		Pair:          "BTC/USDT",
		Exchange:      "Binance",
		Market:        "Isolated Margin",
		IsFutures:     true,
		Direction:     "long",
		Notes:         "clean breakout entry",
		PositionSize:  1,
		PositionValue: 100,
		AvgOpenPrice:  100,
		TotalBorrowed: 50,
		NetPnL:        20,
		NetROI:        40,
	}
	require.NoError(t, j.RecordPosition(pos))

	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, j.RecordTrade(TradeRecord{
		PositionID: "P1", TradeID: "T1", Time: ts,
		Action: "Buy", OrderType: "Limit",
		Price: 100, Margin: 50, Borrowed: 50, Leverage: 2, Amount: 1, Total: 100, Fee: 0.1,
	}))
	require.NoError(t, j.RecordTrade(TradeRecord{
		PositionID: "P1", TradeID: "T2", Time: ts.Add(time.Hour),
		Action: "Sell", OrderType: "Market",
		Price: 120, Margin: 120, Borrowed: -50, Leverage: 1, Amount: 1, Total: 120, Fee: 0.12,
	}))

	got, err := j.GetPosition("P1")
	require.NoError(t, err)
	assert.Equal(t, pos.Pair, got.Pair)
	assert.Equal(t, pos.Notes, got.Notes)
	assert.True(t, got.IsFutures)
	assert.InDelta(t, 40.0, got.NetROI, 1e-9)

	trades, err := j.ListTradesByPosition("P1")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "T1", trades[0].TradeID)
	assert.Equal(t, "T2", trades[1].TradeID)
	assert.InDelta(t, -50.0, trades[1].Borrowed, 1e-9)

	all, err := j.ListPositions()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSQLiteGetPositionNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetPosition("missing")
	assert.Error(t, err)
}
