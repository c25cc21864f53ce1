// entry/entry.go
//
// Reversible arithmetic for the trade-entry form. One field of
// {principal, amount, total} is authoritative at a time; the other two
// are derived from it plus price and leverage. None of this validates;
// the submission boundary does that.
package entry

import "math"

// Mode tags which field the user is typing into.
type Mode string

const (
	ModePrincipal Mode = "principal"
	ModeAmount    Mode = "amount"
	ModeTotal     Mode = "total"
)

// Figures is the complete quantity triple for an opening trade.
type Figures struct {
	Principal float64
	Amount    float64
	Total     float64
}

// Field returns the figure the given mode governs.
func (f Figures) Field(m Mode) float64 {
	switch m {
	case ModePrincipal:
		return f.Principal
	case ModeAmount:
		return f.Amount
	case ModeTotal:
		return f.Total
	}
	return 0
}

// Compute derives the full triple from the active field's value.
// leverage should be 1 for non-leveraged markets. A non-positive price
// or value yields zero figures, matching an incomplete form.
func Compute(m Mode, value, price, leverage float64) Figures {
	if value == 0 || price <= 0 {
		return Figures{}
	}
	if leverage < 1 {
		leverage = 1
	}

	var f Figures
	switch m {
	case ModePrincipal:
		f.Principal = value
		f.Total = f.Principal * leverage
		f.Amount = f.Total / price
	case ModeAmount:
		f.Amount = value
		f.Total = f.Amount * price
		f.Principal = f.Total / leverage
	case ModeTotal:
		f.Total = value
		f.Amount = f.Total / price
		f.Principal = f.Total / leverage
	}
	return f
}

// Switch moves the active field to next, carrying the previously
// computed value of that field forward as the new input. Nothing is
// lost by toggling modes.
func Switch(f Figures, next Mode) (Mode, float64) {
	return next, f.Field(next)
}

// TotalForAmount and AmountForTotal cover the closing-trade form,
// where amount and total are independently editable.
func TotalForAmount(amount, price float64) float64 { return amount * price }
func AmountForTotal(total, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return total / price
}

// PercentOfRemaining sets the close amount from the percentage slider
// (1-100), rounded to 8 decimals like exchange quantity fields.
func PercentOfRemaining(remaining float64, pct int) float64 {
	if pct < 1 {
		pct = 1
	}
	if pct > 100 {
		pct = 100
	}
	return round8(math.Abs(remaining) * float64(pct) / 100)
}

func round8(x float64) float64 {
	return math.Round(x*1e8) / 1e8
}
