// position/position.go
package position

import (
	"sort"

	"github.com/rustyeddy/tradeledger/market"
)

// Direction of a position, fixed by its earliest trade.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
	Flat  Direction = "flat"
)

// Position is an accumulating exposure in one (pair, exchange, market)
// combination. Trades are kept sorted ascending by timestamp; ties keep
// insertion order (the sort is stable).
//
// A position with zero trades cannot exist: creation requires the first
// trade, and deleting the last trade deletes the position.
type Position struct {
	ID        string
	Pair      string // "BASE/QUOTE"
	Exchange  market.Exchange
	Market    market.Type
	IsFutures bool
	Trades    []Trade

	// AccountBalance is captured for Cross Margin positions only.
	// Nothing derived depends on it.
	AccountBalance float64

	Notes         string
	SavedToLedger bool
}

// SortTrades restores ascending-timestamp order after an insert or
// edit. New trades are not assumed to arrive in order.
func (p *Position) SortTrades() {
	sort.SliceStable(p.Trades, func(i, j int) bool {
		return p.Trades[i].Timestamp.Before(p.Trades[j].Timestamp)
	})
}

// Direction is derived from the earliest trade's action and never from
// later trades. Note an edit that changes which trade is earliest can
// flip this for the whole position; that is observed upstream behavior
// and deliberately not corrected here.
func (p *Position) Direction() Direction {
	if len(p.Trades) == 0 {
		return Flat
	}
	if p.Trades[0].Action == market.Buy {
		return Long
	}
	return Short
}

// TradeByID returns the trade with the given ID, if present.
func (p *Position) TradeByID(id string) (Trade, bool) {
	for _, t := range p.Trades {
		if t.ID == id {
			return t, true
		}
	}
	return Trade{}, false
}

// Clone deep-copies the position so a ledger entry cannot alias the
// active position's trade slice.
func (p *Position) Clone() *Position {
	cp := *p
	cp.Trades = make([]Trade, len(p.Trades))
	copy(cp.Trades, p.Trades)
	return &cp
}
