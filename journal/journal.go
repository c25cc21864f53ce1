// journal/journal.go
package journal

import "time"

// PositionRecord is the summary row persisted when a position is saved
// to the ledger. All figures are raw numerics; formatting is the
// consumer's job.
type PositionRecord struct {
	PositionID        string
	Pair              string
	Exchange          string
	Market            string
	IsFutures         bool
	Direction         string
	Notes             string
	PositionSize      float64 // opening-side volume, base currency
	PositionValue     float64 // opening-side value, quote currency
	AvgOpenPrice      float64
	TotalBorrowed     float64
	RemainingBorrowed float64
	NetPnL            float64
	NetROI            float64
}

// TradeRecord is one execution belonging to a saved position, with its
// replay-derived borrow delta and implied margin.
type TradeRecord struct {
	PositionID string
	TradeID    string
	Time       time.Time
	Action     string
	OrderType  string
	Price      float64
	Margin     float64
	Borrowed   float64 // signed: positive drawn, negative repaid
	Leverage   float64
	Amount     float64
	Total      float64
	Fee        float64
}

type Journal interface {
	RecordPosition(PositionRecord) error
	RecordTrade(TradeRecord) error
	Close() error
}
