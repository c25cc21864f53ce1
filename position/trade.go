// position/trade.go
package position

import (
	"time"

	"github.com/rustyeddy/tradeledger/market"
)

// Trade is one execution inside a position. Trades are immutable once
// appended; an edit replaces the whole record by ID.
type Trade struct {
	ID        string
	Action    market.Action
	Price     float64
	Amount    float64 // base currency quantity
	Total     float64 // quote currency notional
	Fee       float64 // quote currency
	FeeRate   float64
	FeeKind   market.FeeKind
	Timestamp time.Time
	Leverage  float64 // 0 = not leveraged
	OrderType market.OrderType
}

// EffectiveLeverage treats absent or sub-1x leverage as 1x.
func (t Trade) EffectiveLeverage() float64 {
	if t.Leverage > 1 {
		return t.Leverage
	}
	return 1
}

// Margin is the principal the trader actually committed: the notional
// divided by leverage.
func (t Trade) Margin() float64 {
	return t.Total / t.EffectiveLeverage()
}
