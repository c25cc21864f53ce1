// journal/sqlite.go
package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordPosition(p PositionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO positions
		(position_id, pair, exchange, market, is_futures, direction, notes,
		 position_size, position_value, avg_open_price, total_borrowed,
		 remaining_borrowed, net_pnl, net_roi)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PositionID, p.Pair, p.Exchange, p.Market, p.IsFutures, p.Direction,
		p.Notes, p.PositionSize, p.PositionValue, p.AvgOpenPrice,
		p.TotalBorrowed, p.RemainingBorrowed, p.NetPnL, p.NetROI,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, position_id, time, action, order_type, price, margin,
		 borrowed, leverage, amount, total, fee)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.PositionID, t.Time, t.Action, t.OrderType, t.Price,
		t.Margin, t.Borrowed, t.Leverage, t.Amount, t.Total, t.Fee,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
