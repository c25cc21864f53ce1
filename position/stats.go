// position/stats.go
//
// Full recompute of every derived position figure. Nothing here is
// cached: the borrowing replay is order-dependent, so stats are rebuilt
// from the current trade list on every read. Irregular-but-legal input
// (no trades, zero investment, never-closed position) degrades to
// neutral values; this package never returns an error.
package position

import (
	"math"

	"github.com/rustyeddy/tradeledger/market"
)

// FlatEpsilon is the tolerance under which a remaining amount counts as
// zero for close/flat detection.
const FlatEpsilon = 1e-9

// Options selects between the accepted engine variants.
type Options struct {
	// SimulateBorrowing enables the chronological margin-loan replay.
	// When off the borrowing ledger stays empty.
	SimulateBorrowing bool
}

// BorrowDelta is one trade's effect on the outstanding margin loan:
// positive for new borrowing, negative for repayment.
type BorrowDelta struct {
	Amount   float64
	Currency string
}

// Stats is everything derived from a position's trade list.
type Stats struct {
	Direction     Direction
	BaseCurrency  string
	QuoteCurrency string

	TotalBuyAmount  float64
	TotalBuyCost    float64
	TotalSellAmount float64
	TotalSellValue  float64
	TotalFees       float64

	RemainingAmount float64
	Closed          bool
	PositionSize    float64 // opening-side cumulative volume

	AvgOpenPrice      float64
	EffectiveLeverage float64
	TotalInvestment   float64 // ROI denominator only

	RealizedPnL float64 // pre-fee
	NetPnL      float64
	NetROI      float64 // percent

	TotalBorrowed     float64
	RemainingBorrowed float64
	BorrowedCurrency  string
	TradeBorrows      map[string]BorrowDelta

	// LiquidationPrice is an estimate: it omits maintenance margin and
	// funding costs. Zero when the position is closed or unleveraged.
	LiquidationPrice float64
}

// Leveraged reports whether the position carries any real leverage.
// Spot and Options positions report false, so callers can render
// borrowing and liquidation as not applicable instead of zero.
func (s Stats) Leveraged() bool {
	return s.EffectiveLeverage > 1
}

// Compute aggregates a position's full derived state. The trade list is
// assumed sorted ascending by timestamp (Position.SortTrades maintains
// that); the borrowing replay depends on it.
func Compute(p *Position, opt Options) Stats {
	base, quote := market.SplitPair(p.Pair)

	s := Stats{
		Direction:         Flat,
		BaseCurrency:      base,
		QuoteCurrency:     quote,
		EffectiveLeverage: 1,
		TradeBorrows:      map[string]BorrowDelta{},
	}
	if len(p.Trades) == 0 {
		return s
	}

	s.Direction = p.Direction()

	s.BorrowedCurrency = quote
	if s.Direction == Short {
		s.BorrowedCurrency = base
	}

	var weightedLeverage, openingTotal float64

	for _, t := range p.Trades {
		s.TotalFees += t.Fee
		lev := t.EffectiveLeverage()

		opening := (s.Direction == Long && t.Action == market.Buy) ||
			(s.Direction == Short && t.Action == market.Sell)
		if opening {
			s.TotalInvestment += t.Total / lev
			weightedLeverage += t.Total * lev
			openingTotal += t.Total
		}

		if t.Action == market.Buy {
			s.TotalBuyAmount += t.Amount
			s.TotalBuyCost += t.Total
		} else {
			s.TotalSellAmount += t.Amount
			s.TotalSellValue += t.Total
		}

		if opt.SimulateBorrowing && lev > 1 {
			s.replayBorrow(t, lev)
		}
	}

	s.RemainingAmount = s.TotalBuyAmount - s.TotalSellAmount
	s.Closed = math.Abs(s.RemainingAmount) <= FlatEpsilon &&
		s.TotalBuyAmount > 0 && s.TotalSellAmount > 0

	if openingTotal > 0 {
		s.EffectiveLeverage = weightedLeverage / openingTotal
	}

	if s.Direction == Long {
		s.PositionSize = s.TotalBuyAmount
		if s.TotalBuyAmount > 0 {
			s.AvgOpenPrice = s.TotalBuyCost / s.TotalBuyAmount
		}
		s.RealizedPnL = s.TotalSellValue - s.AvgOpenPrice*s.TotalSellAmount
	} else {
		s.PositionSize = s.TotalSellAmount
		if s.TotalSellAmount > 0 {
			s.AvgOpenPrice = s.TotalSellValue / s.TotalSellAmount
		}
		s.RealizedPnL = s.AvgOpenPrice*s.TotalBuyAmount - s.TotalBuyCost
	}

	s.NetPnL = s.RealizedPnL - s.TotalFees
	if s.TotalInvestment > 0 {
		s.NetROI = s.NetPnL / s.TotalInvestment * 100
	}

	s.LiquidationPrice = s.liquidation()
	return s
}

// replayBorrow applies one leveraged trade to the running loan.
// Longs borrow quote currency against the trade's total; shorts borrow
// base currency against the trade's amount. Repayments are clamped so
// the outstanding loan never goes negative.
func (s *Stats) replayBorrow(t Trade, lev float64) {
	draw := func(x float64) {
		borrowed := x * (1 - 1/lev)
		s.RemainingBorrowed += borrowed
		s.TotalBorrowed += borrowed
		s.TradeBorrows[t.ID] = BorrowDelta{Amount: borrowed, Currency: s.BorrowedCurrency}
	}
	repay := func(x float64) {
		repayment := math.Min(x, s.RemainingBorrowed)
		if repayment > 0 {
			s.RemainingBorrowed -= repayment
			s.TradeBorrows[t.ID] = BorrowDelta{Amount: -repayment, Currency: s.BorrowedCurrency}
		}
	}

	if s.Direction == Long {
		if t.Action == market.Buy {
			draw(t.Total)
		} else {
			repay(t.Total)
		}
	} else {
		if t.Action == market.Sell {
			draw(t.Amount)
		} else {
			repay(t.Amount)
		}
	}
}

func (s *Stats) liquidation() float64 {
	if s.Closed || s.EffectiveLeverage <= 1 {
		return 0
	}

	// Direction by the sign of what is still open, not the original
	// direction: realized profit on the closed part shifts the level.
	base := s.AvgOpenPrice * (1 - 1/s.EffectiveLeverage)
	if s.RemainingAmount < 0 {
		base = s.AvgOpenPrice * (1 + 1/s.EffectiveLeverage)
	}

	var adj float64
	if s.RemainingAmount != 0 {
		adj = s.RealizedPnL / s.RemainingAmount
	}
	return base - adj
}

// TradeBorrow returns the signed borrowing delta one trade contributed,
// if the replay recorded one for it.
func (s Stats) TradeBorrow(tradeID string) (BorrowDelta, bool) {
	d, ok := s.TradeBorrows[tradeID]
	return d, ok
}
