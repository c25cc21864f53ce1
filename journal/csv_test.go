package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	positionsPath := filepath.Join(dir, "positions.csv")
	tradesPath := filepath.Join(dir, "trades.csv")

	j, err := NewCSV(positionsPath, tradesPath)
	require.NoError(t, err)
	assert.NoError(t, j.Close())

	positionsData, err := os.ReadFile(positionsPath)
	require.NoError(t, err)
	tradesData, err := os.ReadFile(tradesPath)
	require.NoError(t, err)

	positionsHeader, err := csv.NewReader(strings.NewReader(string(positionsData))).Read()
	require.NoError(t, err)
	tradesHeader, err := csv.NewReader(strings.NewReader(string(tradesData))).Read()
	require.NoError(t, err)

	wantPositions := []string{"position_id", "pair", "exchange", "market", "is_futures", "direction", "notes", "position_size", "position_value", "avg_open_price", "total_borrowed", "remaining_borrowed", "net_pnl", "net_roi"}
	assert.Equal(t, wantPositions, positionsHeader)

	wantTrades := []string{"trade_id", "position_id", "time", "action", "order_type", "price", "margin", "borrowed", "leverage", "amount", "total", "fee"}
	assert.Equal(t, wantTrades, tradesHeader)
}

func TestCSVJournalRecords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	positionsPath := filepath.Join(dir, "positions.csv")
	tradesPath := filepath.Join(dir, "trades.csv")

	j, err := NewCSV(positionsPath, tradesPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordPosition(PositionRecord{
		PositionID: "P1", Pair: "BTC/USDT", Exchange: "Binance",
		Market: "Spot", Direction: "long", Notes: "held too long",
		PositionSize: 0.5, PositionValue: 30000, AvgOpenPrice: 60000,
		NetPnL: -150.5, NetROI: -0.5,
	}))
	require.NoError(t, j.RecordTrade(TradeRecord{
		TradeID: "T1", PositionID: "P1",
		Time:   time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Action: "Buy", OrderType: "Limit",
		Price: 60000, Margin: 30000, Leverage: 1, Amount: 0.5, Total: 30000, Fee: 30,
	}))
	require.NoError(t, j.Close())

	positionsData, err := os.ReadFile(positionsPath)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(positionsData))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P1", rows[1][0])
	assert.Equal(t, "held too long", rows[1][6])

	tradesData, err := os.ReadFile(tradesPath)
	require.NoError(t, err)
	rows, err = csv.NewReader(strings.NewReader(string(tradesData))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "T1", rows[1][0])
	assert.Equal(t, "2024-03-01T10:00:00Z", rows[1][2])
}
