// market/market.go
package market

// Exchange is a supported venue. "Other" accepts a manual fee rate
// instead of a fee-table lookup.
type Exchange string

const (
	Binance Exchange = "Binance"
	Bybit   Exchange = "Bybit"
	Other   Exchange = "Other"
)

var Exchanges = []Exchange{Binance, Bybit, Other}

// Type is the market a position trades on.
type Type string

const (
	Spot           Type = "Spot"
	Futures        Type = "Futures"
	CrossMargin    Type = "Cross Margin"
	IsolatedMargin Type = "Isolated Margin"
	Options        Type = "Options"
)

var Types = []Type{Spot, Futures, CrossMargin, IsolatedMargin, Options}

// Leveraged reports whether t supports a leverage multiplier and the
// simulated margin loan that comes with it.
func Leveraged(t Type) bool {
	return t == CrossMargin || t == IsolatedMargin
}

type OrderType string

const (
	Limit      OrderType = "Limit"
	MarketOrd  OrderType = "Market"
	StopLimit  OrderType = "Stop-Limit"
	StopMarket OrderType = "Stop Market"
)

var OrderTypes = []OrderType{Limit, MarketOrd, StopLimit, StopMarket}

// Maker reports whether o rests on the book (maker fee schedule).
// Market and Stop Market orders cross the spread and pay taker.
func (o OrderType) Maker() bool {
	return o == Limit || o == StopLimit
}

type Action string

const (
	Buy  Action = "Buy"
	Sell Action = "Sell"
)

// FeeKind labels how a trade's fee rate was determined.
type FeeKind string

const (
	Maker  FeeKind = "Maker"
	Taker  FeeKind = "Taker"
	Manual FeeKind = "Manual"
)
