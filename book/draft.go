// book/draft.go
package book

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rustyeddy/tradeledger/market"
	"github.com/rustyeddy/tradeledger/position"
)

var validate = validator.New()

// Draft is a trade submission as produced by the entry form. It is
// validated at this boundary; the aggregation core below it never
// rejects anything.
type Draft struct {
	Action    market.Action    `validate:"required,oneof=Buy Sell"`
	Price     float64          `validate:"gt=0"`
	Amount    float64          `validate:"gt=0"`
	Total     float64          `validate:"gte=0"`
	Fee       float64          `validate:"gte=0"`
	FeeRate   float64          `validate:"gte=0"`
	FeeKind   market.FeeKind   `validate:"required,oneof=Maker Taker Manual"`
	Timestamp time.Time        `validate:"required"`
	Leverage  float64          `validate:"omitempty,gte=1"`
	OrderType market.OrderType `validate:"required"`

	// Principal is checked for opening trades only; it does not travel
	// onto the stored trade (margin is rederived from total/leverage).
	Principal float64
}

// Key identifies which position a draft belongs to, and carries the
// position attributes needed if a new one must be created.
type Key struct {
	Pair      string `validate:"required"`
	Exchange  market.Exchange
	Market    market.Type
	IsFutures bool

	// AccountBalance is recorded on Cross Margin positions only.
	AccountBalance float64
}

// checkDraft applies the submission rules: empty pair, non-positive
// price or amount, negative total, and for opening trades a
// non-positive principal all reject the draft before any mutation.
func checkDraft(key Key, d Draft, opening bool) error {
	if err := validate.Struct(key); err != nil {
		return fmt.Errorf("invalid position key: %w", err)
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}
	if opening && d.Principal <= 0 {
		return fmt.Errorf("invalid trade: opening trade requires positive principal")
	}
	return nil
}

func (d Draft) trade(id string) position.Trade {
	return position.Trade{
		ID:        id,
		Action:    d.Action,
		Price:     d.Price,
		Amount:    d.Amount,
		Total:     d.Total,
		Fee:       d.Fee,
		FeeRate:   d.FeeRate,
		FeeKind:   d.FeeKind,
		Timestamp: d.Timestamp,
		Leverage:  d.Leverage,
		OrderType: d.OrderType,
	}
}
