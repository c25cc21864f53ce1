// entry/forceclose.go
package entry

import "math"

// ForceCloseEpsilon bounds the residual a force-close may absorb.
// Anything larger is a genuine partial close, not float dust.
const ForceCloseEpsilon = 1e-6

// ForceCloseEligible reports whether a closing submission differs from
// the remaining exposure by a floating-point residual small enough to
// snap to zero.
func ForceCloseEligible(submitted, remaining float64) bool {
	submitted = math.Abs(submitted)
	remaining = math.Abs(remaining)
	if submitted == 0 || remaining == 0 {
		return false
	}
	diff := math.Abs(submitted - remaining)
	return diff > 0 && diff < ForceCloseEpsilon
}

// ForceCloseFigures overrides a closing trade so the position lands on
// exactly zero: amount snaps to |remaining|, total and fee are
// recomputed from that exact amount.
func ForceCloseFigures(remaining, price, feeRate float64) (amount, total, fee float64) {
	amount = math.Abs(remaining)
	total = amount * price
	fee = total * feeRate
	return amount, total, fee
}

// BorrowPreview estimates what an opening leveraged trade borrows, for
// display before submission. Buys borrow quote currency (total beyond
// principal); sells borrow base currency (amount beyond the principal's
// worth at the entry price).
func BorrowPreview(buy bool, f Figures, price float64) float64 {
	if buy {
		return f.Total - f.Principal
	}
	if price <= 0 {
		return 0
	}
	marginInBase := f.Principal / price
	return math.Max(0, f.Amount-marginInBase)
}
