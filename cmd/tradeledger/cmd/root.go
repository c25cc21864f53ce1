package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradeledger/config"
)

var rootCmd = &cobra.Command{
	Use:   "tradeledger",
	Short: "A position-accounting engine for simulated leveraged trading",
	Long: `Tradeledger keeps an append-only log of trade executions per position
and derives everything else on every read: direction, remaining
exposure, average entry, realized PnL, simulated margin borrowing,
liquidation estimates and return on investment.

It provides tools for:
  - Logging buy/sell executions into positions
  - Fee resolution per exchange, market and order type
  - A chronological margin-loan replay for leveraged trades
  - Saving closed positions to a reviewed ledger
  - Exporting ledger entries as raw CSV`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

func newLogger() (*zap.Logger, error) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	return c.Build()
}
