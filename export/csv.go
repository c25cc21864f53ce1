// export/csv.go
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/tradeledger/position"
)

var tradeHeader = []string{
	"position_id", "time", "pair", "action", "order_type", "price",
	"margin", "borrowed", "leverage", "amount", "total", "fee",
}

var summaryHeader = []string{
	"position_id", "pair", "exchange", "market", "direction", "closed",
	"final_position_size", "final_position_value", "avg_open_price",
	"total_borrowed", "remaining_borrowed", "net_pnl", "net_roi", "notes",
}

// WriteCSV serializes positions as a detailed ledger: for each position
// its trade rows followed by a summary row block at the end.
func WriteCSV(w io.Writer, positions []*position.Position, opt position.Options) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(tradeHeader); err != nil {
		return err
	}

	summaries := make([]SummaryRow, 0, len(positions))
	for _, p := range positions {
		trades, summary := Rows(p, opt)
		summaries = append(summaries, summary)

		for _, t := range trades {
			if err := cw.Write([]string{
				t.PositionID,
				t.Time.Format(time.RFC3339),
				t.Pair,
				t.Action,
				t.OrderType,
				f(t.Price),
				f(t.Margin),
				f(t.Borrowed),
				f(t.Leverage),
				f(t.Amount),
				f(t.Total),
				f(t.Fee),
			}); err != nil {
				return err
			}
		}
	}

	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, s := range summaries {
		if err := cw.Write([]string{
			s.PositionID,
			s.Pair,
			s.Exchange,
			s.Market,
			s.Direction,
			strconv.FormatBool(s.Closed),
			f(s.PositionSize),
			f(s.PositionValue),
			f(s.AvgOpenPrice),
			f(s.TotalBorrowed),
			f(s.RemainingBorrowed),
			f(s.NetPnL),
			f(s.NetROI),
			s.Notes,
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}
