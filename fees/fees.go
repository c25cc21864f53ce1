// fees/fees.go
package fees

import "github.com/rustyeddy/tradeledger/market"

// Schedule holds the maker/taker rates for one exchange+market cell.
// Rates are fractions, not percentages (0.001 == 0.1%).
type Schedule struct {
	Maker float64
	Taker float64
}

var tables = map[market.Exchange]map[market.Type]Schedule{
	market.Binance: {
		market.Spot:           {Maker: 0.001, Taker: 0.001},
		market.Futures:        {Maker: 0.0002, Taker: 0.0005},
		market.CrossMargin:    {Maker: 0.001, Taker: 0.001},
		market.IsolatedMargin: {Maker: 0.001, Taker: 0.001},
		market.Options:        {Maker: 0.0002, Taker: 0.0002},
	},
	market.Bybit: {
		market.Spot:    {Maker: 0.001, Taker: 0.001},
		market.Futures: {Maker: 0.0001, Taker: 0.0006},
		market.Options: {Maker: 0.0002, Taker: 0.0005},
	},
	market.Other: {},
}

// Lookup returns the fee schedule for an exchange+market cell.
// Missing cells report ok=false and a zero schedule.
func Lookup(ex market.Exchange, mt market.Type) (Schedule, bool) {
	s, ok := tables[ex][mt]
	return s, ok
}

// Resolution is the outcome of a fee lookup: the rate applied to a
// trade's total, and how that rate was chosen.
type Resolution struct {
	Rate float64
	Kind market.FeeKind
}

// Resolver resolves a trade's fee rate from its venue context.
//
// FuturesRedirect switches leveraged-market lookups to the Futures fee
// row when the position is flagged as futures/derivatives. One accepted
// engine variant omits this substitution, so it is an option rather
// than hardwired.
type Resolver struct {
	FuturesRedirect bool
}

// Resolve never fails: unknown table cells resolve to a zero rate.
// manualRatePercent is a percentage (0.1 == 0.1%) and applies only on
// the manual exchange.
func (r Resolver) Resolve(ex market.Exchange, mt market.Type, ot market.OrderType, isFutures bool, manualRatePercent float64) Resolution {
	if ex == market.Other {
		return Resolution{Rate: manualRatePercent / 100, Kind: market.Manual}
	}

	effective := mt
	if r.FuturesRedirect && isFutures && market.Leveraged(mt) {
		effective = market.Futures
	}

	s, _ := Lookup(ex, effective)

	if ot.Maker() {
		return Resolution{Rate: s.Maker, Kind: market.Maker}
	}
	return Resolution{Rate: s.Taker, Kind: market.Taker}
}
