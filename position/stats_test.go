package position

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradeledger/market"
)

var borrowOn = Options{SimulateBorrowing: true}

func at(minute int) time.Time {
	return time.Date(2024, 3, 1, 10, minute, 0, 0, time.UTC)
}

func trade(id string, action market.Action, price, amount, fee, leverage float64, minute int) Trade {
	return Trade{
		ID:        id,
		Action:    action,
		Price:     price,
		Amount:    amount,
		Total:     price * amount,
		Fee:       fee,
		Timestamp: at(minute),
		Leverage:  leverage,
		OrderType: market.Limit,
	}
}

func pos(trades ...Trade) *Position {
	p := &Position{
		ID:       "P1",
		Pair:     "BTC/USDT",
		Exchange: market.Binance,
		Market:   market.IsolatedMargin,
		Trades:   trades,
	}
	p.SortTrades()
	return p
}

func TestCompute_EmptyPosition(t *testing.T) {
	t.Parallel()

	s := Compute(&Position{Pair: "BTC/USDT"}, borrowOn)

	assert.Equal(t, Flat, s.Direction)
	assert.Zero(t, s.RemainingAmount)
	assert.False(t, s.Closed)
	assert.Zero(t, s.AvgOpenPrice)
	assert.Zero(t, s.NetPnL)
	assert.Zero(t, s.TotalBorrowed)
	assert.Zero(t, s.LiquidationPrice)
	assert.InDelta(t, 1.0, s.EffectiveLeverage, 1e-12)
	assert.False(t, s.Leveraged())
}

// Buy 1 BTC @ 100 at 2x, sell 1 BTC @ 120. Closed round trip on half
// the capital: 20 profit on 50 committed is a 40% return.
func TestCompute_ClosedLeveragedLong(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 1, 0, 2, 0),
		trade("t2", market.Sell, 120, 1, 0, 0, 1),
	)
	s := Compute(p, borrowOn)

	assert.Equal(t, Long, s.Direction)
	assert.InDelta(t, 100.0, s.AvgOpenPrice, 1e-9)
	assert.InDelta(t, 20.0, s.NetPnL, 1e-9)
	assert.InDelta(t, 0.0, s.RemainingAmount, 1e-12)
	assert.True(t, s.Closed)
	assert.InDelta(t, 50.0, s.TotalInvestment, 1e-9)
	assert.InDelta(t, 40.0, s.NetROI, 1e-9)
	assert.Zero(t, s.LiquidationPrice)

	// Borrow replay: the buy draws 50 USDT, the sell repays all of it.
	assert.InDelta(t, 50.0, s.TotalBorrowed, 1e-9)
	assert.InDelta(t, 0.0, s.RemainingBorrowed, 1e-12)

	d, ok := s.TradeBorrow("t1")
	require.True(t, ok)
	assert.InDelta(t, 50.0, d.Amount, 1e-9)
	assert.Equal(t, "USDT", d.Currency)

	d, ok = s.TradeBorrow("t2")
	require.True(t, ok)
	assert.InDelta(t, -50.0, d.Amount, 1e-9)
}

// Two unleveraged buys: always open, zero realized PnL, no borrowing.
func TestCompute_AccumulatingLong(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 1, 0, 0, 0),
		trade("t2", market.Buy, 200, 1, 0, 0, 1),
	)
	s := Compute(p, borrowOn)

	assert.InDelta(t, 150.0, s.AvgOpenPrice, 1e-9)
	assert.InDelta(t, 2.0, s.PositionSize, 1e-12)
	assert.InDelta(t, 2.0, s.RemainingAmount, 1e-12)
	assert.False(t, s.Closed)
	assert.Zero(t, s.RealizedPnL)
	assert.Zero(t, s.TotalBorrowed)
	assert.Empty(t, s.TradeBorrows)
	assert.False(t, s.Leveraged())
}

func TestCompute_ShortPosition(t *testing.T) {
	t.Parallel()

	p := &Position{
		Pair: "ETH/USDC",
		Trades: []Trade{
			trade("s1", market.Sell, 100, 2, 0, 5, 0),
			trade("s2", market.Buy, 80, 1, 0, 0, 1),
		},
	}
	p.SortTrades()
	s := Compute(p, borrowOn)

	assert.Equal(t, Short, s.Direction)
	assert.InDelta(t, 100.0, s.AvgOpenPrice, 1e-9)
	assert.InDelta(t, -1.0, s.RemainingAmount, 1e-12)
	assert.InDelta(t, 2.0, s.PositionSize, 1e-12)

	// Covered 1 ETH sold at avg 100 for 80: 20 profit.
	assert.InDelta(t, 20.0, s.RealizedPnL, 1e-9)

	// Shorts borrow base currency: 2 * (1 - 1/5) = 1.6 ETH drawn,
	// the cover repays 1 ETH of it.
	assert.Equal(t, "ETH", s.BorrowedCurrency)
	assert.InDelta(t, 1.6, s.TotalBorrowed, 1e-9)
	assert.InDelta(t, 0.6, s.RemainingBorrowed, 1e-9)

	// Liquidation above entry for a short, pushed further out by the
	// realized profit: 100*(1+1/5) - 20/(-1) = 140.
	assert.InDelta(t, 140.0, s.LiquidationPrice, 1e-9)
}

// Repayment clamps at the outstanding loan; remaining borrowed can
// never go negative and total borrowed never decreases.
func TestCompute_BorrowLedgerInvariants(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		trade("t1", market.Buy, 100, 1, 0, 4, 0),
		trade("t2", market.Sell, 100, 0.2, 0, 2, 1), // repays 20 of 75
		trade("t3", market.Buy, 90, 0.5, 0, 2, 2),
		trade("t4", market.Sell, 110, 1.3, 0, 3, 3), // repays far more than owed
	}

	var prevTotal float64
	for n := 1; n <= len(trades); n++ {
		p := pos(trades[:n]...)
		s := Compute(p, borrowOn)

		assert.GreaterOrEqual(t, s.RemainingBorrowed, 0.0, "prefix %d", n)
		assert.GreaterOrEqual(t, s.TotalBorrowed, prevTotal, "prefix %d", n)
		prevTotal = s.TotalBorrowed
	}

	s := Compute(pos(trades...), borrowOn)
	assert.InDelta(t, 0.0, s.RemainingBorrowed, 1e-9)
}

func TestCompute_BorrowingDisabled(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 1, 0, 2, 0),
		trade("t2", market.Sell, 120, 1, 0, 0, 1),
	)
	s := Compute(p, Options{})

	assert.Zero(t, s.TotalBorrowed)
	assert.Zero(t, s.RemainingBorrowed)
	assert.Empty(t, s.TradeBorrows)

	// Everything else is unaffected by the variant.
	assert.InDelta(t, 20.0, s.NetPnL, 1e-9)
	assert.True(t, s.Closed)
}

// Mixed-leverage opens weight leverage by notional, counting absent
// leverage as 1x.
func TestCompute_EffectiveLeverageWeighting(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 1, 0, 10, 0), // total 100 at 10x
		trade("t2", market.Buy, 100, 3, 0, 0, 1),  // total 300 at 1x
	)
	s := Compute(p, borrowOn)

	// (100*10 + 300*1) / 400 = 3.25
	assert.InDelta(t, 3.25, s.EffectiveLeverage, 1e-9)
	assert.True(t, s.Leveraged())

	// Investment: 100/10 + 300/1 = 310.
	assert.InDelta(t, 310.0, s.TotalInvestment, 1e-9)
}

func TestCompute_FeesReduceNetPnL(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 1, 0.1, 0, 0),
		trade("t2", market.Sell, 120, 1, 0.12, 0, 1),
	)
	s := Compute(p, borrowOn)

	assert.InDelta(t, 20.0, s.RealizedPnL, 1e-9)
	assert.InDelta(t, 0.22, s.TotalFees, 1e-12)
	assert.InDelta(t, 19.78, s.NetPnL, 1e-9)
}

// Direction is fixed by the earliest trade even if the position later
// flips net-negative on a closing overshoot.
func TestCompute_DirectionFromEarliestTrade(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 1, 0, 0, 0),
		trade("t2", market.Sell, 100, 1.4, 0, 0, 1),
	)
	s := Compute(p, borrowOn)

	assert.Equal(t, Long, s.Direction)
	assert.InDelta(t, -0.4, s.RemainingAmount, 1e-12)
	assert.False(t, s.Closed)
	assert.InDelta(t, 1.0, s.PositionSize, 1e-12)
}

func TestCompute_RemainingAmountIdentity(t *testing.T) {
	t.Parallel()

	p := pos(
		trade("t1", market.Buy, 100, 0.7, 0, 0, 0),
		trade("t2", market.Sell, 105, 0.2, 0, 0, 1),
		trade("t3", market.Buy, 95, 0.05, 0, 0, 2),
		trade("t4", market.Sell, 110, 0.33, 0, 0, 3),
	)
	s := Compute(p, borrowOn)

	assert.InDelta(t, s.TotalBuyAmount-s.TotalSellAmount, s.RemainingAmount, 1e-12)
	assert.Equal(t, s.Closed,
		s.RemainingAmount <= FlatEpsilon && s.RemainingAmount >= -FlatEpsilon &&
			s.TotalBuyAmount > 0 && s.TotalSellAmount > 0)
}

func TestCompute_LiquidationOpenLong(t *testing.T) {
	t.Parallel()

	p := pos(trade("t1", market.Buy, 100, 1, 0, 4, 0))
	s := Compute(p, borrowOn)

	// No realized PnL yet: 100 * (1 - 1/4) = 75.
	assert.InDelta(t, 75.0, s.LiquidationPrice, 1e-9)

	// A profitable partial close lowers the level further.
	p = pos(
		trade("t1", market.Buy, 100, 1, 0, 4, 0),
		trade("t2", market.Sell, 120, 0.5, 0, 0, 1),
	)
	s = Compute(p, borrowOn)
	// adj = 10 / 0.5 = 20 -> 75 - 20 = 55.
	assert.InDelta(t, 55.0, s.LiquidationPrice, 1e-9)
}

func TestTradeMargin(t *testing.T) {
	t.Parallel()

	tr := trade("t1", market.Buy, 100, 2, 0, 4, 0)
	assert.InDelta(t, 50.0, tr.Margin(), 1e-9)

	tr = trade("t2", market.Buy, 100, 2, 0, 0, 0)
	assert.InDelta(t, 200.0, tr.Margin(), 1e-9)
}
