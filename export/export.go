// export/export.go
//
// Raw numeric export rows for ledger consumers. Everything textual
// (currency symbols, locale, layout) is left to whoever renders the
// rows; this package only derives numbers.
package export

import (
	"time"

	"github.com/rustyeddy/tradeledger/position"
)

// TradeRow is one execution with its replay-derived display figures.
type TradeRow struct {
	PositionID     string
	TradeID        string
	Time           time.Time
	Pair           string
	Action         string
	OrderType      string
	Price          float64
	Margin         float64 // committed principal, quote currency
	Borrowed       float64 // signed borrow delta, BorrowCurrency units
	BorrowCurrency string
	Leverage       float64
	Amount         float64
	Total          float64
	Fee            float64
}

// SummaryRow is the per-position line of a ledger export.
type SummaryRow struct {
	PositionID        string
	Pair              string
	Exchange          string
	Market            string
	Direction         string
	Closed            bool
	PositionSize      float64 // final opening-side size, base currency
	PositionValue     float64 // final opening-side value, quote currency
	AvgOpenPrice      float64
	TotalBorrowed     float64
	RemainingBorrowed float64
	BorrowedCurrency  string
	NetPnL            float64
	NetROI            float64
	Notes             string
}

// Rows flattens one position into its trade rows and summary. Stats are
// recomputed here, not read from storage, so rows always reflect the
// position's current trade list.
func Rows(p *position.Position, opt position.Options) ([]TradeRow, SummaryRow) {
	s := position.Compute(p, opt)

	trades := make([]TradeRow, 0, len(p.Trades))
	for _, t := range p.Trades {
		row := TradeRow{
			PositionID: p.ID,
			TradeID:    t.ID,
			Time:       t.Timestamp,
			Pair:       p.Pair,
			Action:     string(t.Action),
			OrderType:  string(t.OrderType),
			Price:      t.Price,
			Margin:     t.Margin(),
			Leverage:   t.EffectiveLeverage(),
			Amount:     t.Amount,
			Total:      t.Total,
			Fee:        t.Fee,
		}
		if d, ok := s.TradeBorrow(t.ID); ok {
			row.Borrowed = d.Amount
			row.BorrowCurrency = d.Currency
		}
		trades = append(trades, row)
	}

	summary := SummaryRow{
		PositionID:        p.ID,
		Pair:              p.Pair,
		Exchange:          string(p.Exchange),
		Market:            string(p.Market),
		Direction:         string(s.Direction),
		Closed:            s.Closed,
		PositionSize:      s.PositionSize,
		PositionValue:     s.AvgOpenPrice * s.PositionSize,
		AvgOpenPrice:      s.AvgOpenPrice,
		TotalBorrowed:     s.TotalBorrowed,
		RemainingBorrowed: s.RemainingBorrowed,
		BorrowedCurrency:  s.BorrowedCurrency,
		NetPnL:            s.NetPnL,
		NetROI:            s.NetROI,
		Notes:             p.Notes,
	}
	return trades, summary
}
