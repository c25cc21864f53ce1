// book/book.go
//
// The book owns the active position set and the ledger of saved
// positions. Mutations are applied by a single logical owner; there is
// no concurrent writer and no cached derived state, so no locking is
// needed. Every read recomputes stats from the current trade list.
package book

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/tradeledger/entry"
	"github.com/rustyeddy/tradeledger/journal"
	"github.com/rustyeddy/tradeledger/market"
	"github.com/rustyeddy/tradeledger/pkg/id"
	"github.com/rustyeddy/tradeledger/position"
)

type Book struct {
	active []*position.Position
	ledger []*position.Position

	opt position.Options
	jnl journal.Journal // optional write-through for saved positions

	// editing tracks the trade a caller is currently revising, so a
	// delete that removes its target can cancel the edit. Operations
	// themselves always take explicit IDs.
	editing *EditRef
}

// EditRef identifies an in-progress edit.
type EditRef struct {
	PositionID string
	TradeID    string
}

func New(opt position.Options) *Book {
	return &Book{opt: opt}
}

// WithJournal attaches a journal that SaveToLedger writes through to.
// A nil journal keeps the book memory-only.
func (b *Book) WithJournal(j journal.Journal) *Book {
	b.jnl = j
	return b
}

// Active returns the active positions, most recently opened first.
func (b *Book) Active() []*position.Position { return b.active }

// Ledger returns saved positions, ordered by first-trade timestamp
// descending.
func (b *Book) Ledger() []*position.Position { return b.ledger }

// Stats recomputes a position's derived state under the book's engine
// options.
func (b *Book) Stats(p *position.Position) position.Stats {
	return position.Compute(p, b.opt)
}

// Find returns the active position with the given ID.
func (b *Book) Find(positionID string) (*position.Position, bool) {
	for _, p := range b.active {
		if p.ID == positionID {
			return p, true
		}
	}
	return nil, false
}

// match finds an active position by the (pair, market, isFutures)
// combination a draft targets when no explicit position ID was given.
func (b *Book) match(key Key) (*position.Position, bool) {
	for _, p := range b.active {
		if p.Pair == key.Pair && p.Market == key.Market && p.IsFutures == key.IsFutures {
			return p, true
		}
	}
	return nil, false
}

// StartEdit marks a trade as being revised. CancelEdit or any mutation
// that removes the target clears it.
func (b *Book) StartEdit(positionID, tradeID string) { b.editing = &EditRef{positionID, tradeID} }
func (b *Book) CancelEdit()                          { b.editing = nil }
func (b *Book) Editing() (EditRef, bool) {
	if b.editing == nil {
		return EditRef{}, false
	}
	return *b.editing, true
}

func (b *Book) cancelEditFor(positionID string) {
	if b.editing != nil && b.editing.PositionID == positionID {
		b.editing = nil
	}
}

// AddTrade appends a draft to an existing position, or creates a new
// position when neither positionID nor the key matches one. With
// forceClose the draft's amount is overridden to exactly the remaining
// exposure, and total and fee rederived, before the trade is appended.
func (b *Book) AddTrade(positionID string, key Key, d Draft, forceClose bool) (*position.Position, error) {
	target, found := b.Find(positionID)
	if positionID != "" && !found {
		return nil, fmt.Errorf("add trade: position %q not found", positionID)
	}
	if !found {
		target, found = b.match(key)
	}

	opening := !found || d.Action == actionFor(target.Direction())
	if err := checkDraft(key, d, opening); err != nil {
		return nil, fmt.Errorf("add trade: %w", err)
	}

	if !found {
		p := &position.Position{
			ID:        id.New(),
			Pair:      key.Pair,
			Exchange:  key.Exchange,
			Market:    key.Market,
			IsFutures: key.IsFutures,
			Trades:    []position.Trade{d.trade(id.New())},
		}
		if key.Market == market.CrossMargin {
			p.AccountBalance = key.AccountBalance
		}
		b.active = append([]*position.Position{p}, b.active...)
		return p, nil
	}

	if forceClose {
		s := position.Compute(target, b.opt)
		d.Amount, d.Total, d.Fee = entry.ForceCloseFigures(s.RemainingAmount, d.Price, d.FeeRate)
	}

	target.Trades = append(target.Trades, d.trade(id.New()))
	target.SortTrades()
	return target, nil
}

// EditTrade replaces a trade in place by ID and re-sorts. An edit that
// changes the timestamp can make a different trade the earliest, which
// flips the position's direction and everything derived from it.
func (b *Book) EditTrade(positionID, tradeID string, key Key, d Draft) error {
	p, ok := b.Find(positionID)
	if !ok {
		return fmt.Errorf("edit trade: position %q not found", positionID)
	}

	opening := d.Action == actionFor(p.Direction())
	if err := checkDraft(key, d, opening); err != nil {
		return fmt.Errorf("edit trade: %w", err)
	}

	for i, t := range p.Trades {
		if t.ID == tradeID {
			p.Trades[i] = d.trade(tradeID)
			p.SortTrades()
			b.editing = nil
			return nil
		}
	}
	return fmt.Errorf("edit trade: trade %q not found in position %q", tradeID, positionID)
}

// DeleteTrade removes a trade; removing the last trade removes the
// whole position, since a position with zero trades cannot exist.
func (b *Book) DeleteTrade(positionID, tradeID string) error {
	p, ok := b.Find(positionID)
	if !ok {
		return fmt.Errorf("delete trade: position %q not found", positionID)
	}

	idx := -1
	for i, t := range p.Trades {
		if t.ID == tradeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("delete trade: trade %q not found in position %q", tradeID, positionID)
	}

	p.Trades = append(p.Trades[:idx], p.Trades[idx+1:]...)
	if len(p.Trades) == 0 {
		return b.DeletePosition(positionID)
	}
	return nil
}

// DeletePosition removes an active position and cancels any edit in
// progress against it.
func (b *Book) DeletePosition(positionID string) error {
	for i, p := range b.active {
		if p.ID == positionID {
			b.active = append(b.active[:i], b.active[i+1:]...)
			b.cancelEditFor(positionID)
			return nil
		}
	}
	return fmt.Errorf("delete position: position %q not found", positionID)
}

// DeleteLedgerPosition removes a saved ledger entry. The source
// position, if still active, is untouched.
func (b *Book) DeleteLedgerPosition(positionID string) error {
	for i, p := range b.ledger {
		if p.ID == positionID {
			b.ledger = append(b.ledger[:i], b.ledger[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete ledger position: position %q not found", positionID)
}

// SaveToLedger copies a position into the ledger with review notes
// attached, marking the source as saved but keeping it active. Saving
// an already-saved position is rejected so the ledger cannot take
// duplicates.
func (b *Book) SaveToLedger(positionID, notes string) (*position.Position, error) {
	p, ok := b.Find(positionID)
	if !ok {
		return nil, fmt.Errorf("save to ledger: position %q not found", positionID)
	}
	if p.SavedToLedger {
		return nil, fmt.Errorf("save to ledger: position %q already saved", positionID)
	}

	cp := p.Clone()
	cp.Notes = notes
	b.ledger = append(b.ledger, cp)
	sort.SliceStable(b.ledger, func(i, j int) bool {
		return firstTradeTime(b.ledger[i]).After(firstTradeTime(b.ledger[j]))
	})

	p.SavedToLedger = true

	if b.jnl != nil {
		if err := b.recordSaved(cp); err != nil {
			return nil, fmt.Errorf("save to ledger: %w", err)
		}
	}
	return cp, nil
}

func (b *Book) recordSaved(p *position.Position) error {
	s := position.Compute(p, b.opt)

	if err := b.jnl.RecordPosition(journal.PositionRecord{
		PositionID:        p.ID,
		Pair:              p.Pair,
		Exchange:          string(p.Exchange),
		Market:            string(p.Market),
		IsFutures:         p.IsFutures,
		Direction:         string(s.Direction),
		Notes:             p.Notes,
		PositionSize:      s.PositionSize,
		PositionValue:     s.AvgOpenPrice * s.PositionSize,
		AvgOpenPrice:      s.AvgOpenPrice,
		TotalBorrowed:     s.TotalBorrowed,
		RemainingBorrowed: s.RemainingBorrowed,
		NetPnL:            s.NetPnL,
		NetROI:            s.NetROI,
	}); err != nil {
		return err
	}

	for _, t := range p.Trades {
		var borrow float64
		if d, ok := s.TradeBorrow(t.ID); ok {
			borrow = d.Amount
		}
		if err := b.jnl.RecordTrade(journal.TradeRecord{
			PositionID: p.ID,
			TradeID:    t.ID,
			Time:       t.Timestamp,
			Action:     string(t.Action),
			OrderType:  string(t.OrderType),
			Price:      t.Price,
			Margin:     t.Margin(),
			Borrowed:   borrow,
			Leverage:   t.EffectiveLeverage(),
			Amount:     t.Amount,
			Total:      t.Total,
			Fee:        t.Fee,
		}); err != nil {
			return err
		}
	}
	return nil
}

// actionFor maps a position direction to its opening-side action.
func actionFor(d position.Direction) market.Action {
	if d == position.Short {
		return market.Sell
	}
	return market.Buy
}

func firstTradeTime(p *position.Position) time.Time {
	if len(p.Trades) == 0 {
		return time.Time{}
	}
	return p.Trades[0].Timestamp
}
