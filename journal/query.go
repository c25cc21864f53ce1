// journal/query.go
package journal

import (
	"database/sql"
	"fmt"
)

// GetPosition returns a saved position record by ID.
func (j *SQLiteJournal) GetPosition(positionID string) (PositionRecord, error) {
	var rec PositionRecord

	row := j.db.QueryRow(`
		SELECT position_id, pair, exchange, market, is_futures, direction, notes,
		       position_size, position_value, avg_open_price, total_borrowed,
		       remaining_borrowed, net_pnl, net_roi
		FROM positions
		WHERE position_id = ?`, positionID)

	err := row.Scan(
		&rec.PositionID,
		&rec.Pair,
		&rec.Exchange,
		&rec.Market,
		&rec.IsFutures,
		&rec.Direction,
		&rec.Notes,
		&rec.PositionSize,
		&rec.PositionValue,
		&rec.AvgOpenPrice,
		&rec.TotalBorrowed,
		&rec.RemainingBorrowed,
		&rec.NetPnL,
		&rec.NetROI,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return PositionRecord{}, fmt.Errorf("position %q not found", positionID)
		}
		return PositionRecord{}, err
	}
	return rec, nil
}

// ListPositions returns every saved position record.
func (j *SQLiteJournal) ListPositions() ([]PositionRecord, error) {
	rows, err := j.db.Query(`
		SELECT position_id, pair, exchange, market, is_futures, direction, notes,
		       position_size, position_value, avg_open_price, total_borrowed,
		       remaining_borrowed, net_pnl, net_roi
		FROM positions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PositionRecord
	for rows.Next() {
		var rec PositionRecord
		if err := rows.Scan(
			&rec.PositionID,
			&rec.Pair,
			&rec.Exchange,
			&rec.Market,
			&rec.IsFutures,
			&rec.Direction,
			&rec.Notes,
			&rec.PositionSize,
			&rec.PositionValue,
			&rec.AvgOpenPrice,
			&rec.TotalBorrowed,
			&rec.RemainingBorrowed,
			&rec.NetPnL,
			&rec.NetROI,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListTradesByPosition returns a saved position's trades in ascending
// time order.
func (j *SQLiteJournal) ListTradesByPosition(positionID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, position_id, time, action, order_type, price, margin,
		       borrowed, leverage, amount, total, fee
		FROM trades
		WHERE position_id = ?
		ORDER BY time ASC`, positionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.PositionID,
			&rec.Time,
			&rec.Action,
			&rec.OrderType,
			&rec.Price,
			&rec.Margin,
			&rec.Borrowed,
			&rec.Leverage,
			&rec.Amount,
			&rec.Total,
			&rec.Fee,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
