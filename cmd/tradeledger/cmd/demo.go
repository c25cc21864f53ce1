package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradeledger/book"
	"github.com/rustyeddy/tradeledger/entry"
	"github.com/rustyeddy/tradeledger/export"
	"github.com/rustyeddy/tradeledger/journal"
	"github.com/rustyeddy/tradeledger/market"
	"github.com/rustyeddy/tradeledger/position"
)

var demoExportPath string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted leveraged round trip through the engine",
	Long: `Open a 2x leveraged long, scale out in two sells and save the closed
position to the ledger, logging every derived figure along the way.

Shows the full workflow:
  1. Fee resolution from the static schedule
  2. Entry arithmetic from a principal figure
  3. The chronological borrowing replay
  4. Force-closing the float residual left by a partial close
  5. Saving the result to the ledger (and journal, if configured)`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoExportPath, "export", "", "write the resulting ledger as CSV to this path")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	b := book.New(position.Options{SimulateBorrowing: cfg.Engine.SimulateBorrowing})

	var jnl journal.Journal
	switch cfg.Journal.Type {
	case "sqlite":
		jnl, err = journal.NewSQLite(cfg.Journal.DBPath)
	case "csv":
		jnl, err = journal.NewCSV(cfg.Journal.PositionsFile, cfg.Journal.TradesFile)
	}
	if err != nil {
		return err
	}
	if jnl != nil {
		defer jnl.Close()
		b = b.WithJournal(jnl)
	}

	resolver := cfg.FeeResolver()
	key := book.Key{
		Pair:      "BTC/USDT",
		Exchange:  cfg.Defaults.Exchange,
		Market:    cfg.Defaults.Market,
		IsFutures: true,
	}
	now := time.Now().UTC()

	// Open: 500 USDT principal at 2x.
	fig := entry.Compute(entry.ModePrincipal, 500, 50_000, 2)
	res := resolver.Resolve(key.Exchange, key.Market, market.Limit, key.IsFutures, cfg.Defaults.ManualFeePercent)

	p, err := b.AddTrade("", key, book.Draft{
		Action:    market.Buy,
		Price:     50_000,
		Amount:    fig.Amount,
		Total:     fig.Total,
		Fee:       fig.Total * res.Rate,
		FeeRate:   res.Rate,
		FeeKind:   res.Kind,
		Timestamp: now,
		Leverage:  2,
		OrderType: market.Limit,
		Principal: fig.Principal,
	}, false)
	if err != nil {
		return err
	}

	s := b.Stats(p)
	log.Info("opened position",
		zap.String("pair", p.Pair),
		zap.String("direction", string(s.Direction)),
		zap.Float64("avg_open", s.AvgOpenPrice),
		zap.Float64("borrowed", s.RemainingBorrowed),
		zap.Float64("liquidation", s.LiquidationPrice),
	)

	// Scale out 40% at a profit.
	closeAmt := entry.PercentOfRemaining(s.RemainingAmount, 40)
	res = resolver.Resolve(key.Exchange, key.Market, market.MarketOrd, key.IsFutures, cfg.Defaults.ManualFeePercent)
	total := entry.TotalForAmount(closeAmt, 52_000)

	if _, err = b.AddTrade(p.ID, key, book.Draft{
		Action:    market.Sell,
		Price:     52_000,
		Amount:    closeAmt,
		Total:     total,
		Fee:       total * res.Rate,
		FeeRate:   res.Rate,
		FeeKind:   res.Kind,
		Timestamp: now.Add(time.Hour),
		OrderType: market.MarketOrd,
	}, false); err != nil {
		return err
	}

	s = b.Stats(p)
	log.Info("partial close",
		zap.Float64("remaining", s.RemainingAmount),
		zap.Float64("net_pnl", s.NetPnL),
		zap.Float64("remaining_borrowed", s.RemainingBorrowed),
	)

	// Close the rest. The 8-decimal rounding above can leave a dust
	// remainder, so submit with forceClose to land on exactly zero.
	closeAmt = entry.PercentOfRemaining(s.RemainingAmount, 100)
	total = entry.TotalForAmount(closeAmt, 53_000)

	if _, err = b.AddTrade(p.ID, key, book.Draft{
		Action:    market.Sell,
		Price:     53_000,
		Amount:    closeAmt,
		Total:     total,
		Fee:       total * res.Rate,
		FeeRate:   res.Rate,
		FeeKind:   res.Kind,
		Timestamp: now.Add(2 * time.Hour),
		OrderType: market.MarketOrd,
	}, entry.ForceCloseEligible(closeAmt, s.RemainingAmount)); err != nil {
		return err
	}

	s = b.Stats(p)
	log.Info("closed position",
		zap.Bool("closed", s.Closed),
		zap.Float64("net_pnl", s.NetPnL),
		zap.Float64("net_roi_pct", s.NetROI),
		zap.Float64("total_borrowed", s.TotalBorrowed),
		zap.Float64("fees", s.TotalFees),
	)

	saved, err := b.SaveToLedger(p.ID, "scripted demo round trip")
	if err != nil {
		return err
	}
	log.Info("saved to ledger", zap.String("position_id", saved.ID))

	if demoExportPath != "" {
		f, err := os.Create(demoExportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteCSV(f, b.Ledger(), position.Options{SimulateBorrowing: cfg.Engine.SimulateBorrowing}); err != nil {
			return err
		}
		log.Info("wrote ledger export", zap.String("path", demoExportPath))
	}

	return nil
}
