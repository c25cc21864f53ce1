// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	positions *csv.Writer
	trades    *csv.Writer
	pf, tf    *os.File
}

func NewCSV(positionsPath, tradesPath string) (*CSVJournal, error) {
	pf, err := os.Create(positionsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}

	pw := csv.NewWriter(pf)
	tw := csv.NewWriter(tf)

	if err := pw.Write([]string{"position_id", "pair", "exchange", "market", "is_futures", "direction", "notes", "position_size", "position_value", "avg_open_price", "total_borrowed", "remaining_borrowed", "net_pnl", "net_roi"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"trade_id", "position_id", "time", "action", "order_type", "price", "margin", "borrowed", "leverage", "amount", "total", "fee"}); err != nil {
		return nil, err
	}

	pw.Flush()
	if err := pw.Error(); err != nil {
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{pw, tw, pf, tf}, nil
}

func (j *CSVJournal) RecordPosition(p PositionRecord) error {
	err := j.positions.Write([]string{
		p.PositionID,
		p.Pair,
		p.Exchange,
		p.Market,
		strconv.FormatBool(p.IsFutures),
		p.Direction,
		p.Notes,
		f(p.PositionSize),
		f(p.PositionValue),
		f(p.AvgOpenPrice),
		f(p.TotalBorrowed),
		f(p.RemainingBorrowed),
		f(p.NetPnL),
		f(p.NetROI),
	})
	if err != nil {
		return err
	}

	j.positions.Flush()
	return j.positions.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.PositionID,
		t.Time.Format(time.RFC3339),
		t.Action,
		t.OrderType,
		f(t.Price),
		f(t.Margin),
		f(t.Borrowed),
		f(t.Leverage),
		f(t.Amount),
		f(t.Total),
		f(t.Fee),
	})
	if err != nil {
		return err
	}

	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) Close() error {
	j.positions.Flush()
	if err := j.positions.Error(); err != nil {
		return err
	}
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}

	if err := j.pf.Close(); err != nil {
		return err
	}
	return j.tf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}
