package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradeledger/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a SQLite ledger journal to CSV files",
	Long: `Read saved positions and their trades from a SQLite journal and write
them out as raw-numeric CSV files.

Example:
  tradeledger export -d ledger.db -p positions.csv -t trades.csv`,
	RunE: runExport,
}

var (
	exportDBPath        string
	exportPositionsPath string
	exportTradesPath    string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDBPath, "db", "d", "", "path to the SQLite journal (required)")
	exportCmd.Flags().StringVarP(&exportPositionsPath, "positions", "p", "positions.csv", "output CSV for position summaries")
	exportCmd.Flags().StringVarP(&exportTradesPath, "trades", "t", "trades.csv", "output CSV for trades")
	exportCmd.MarkFlagRequired("db")
}

func runExport(cmd *cobra.Command, args []string) error {
	src, err := journal.NewSQLite(exportDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer src.Close()

	dst, err := journal.NewCSV(exportPositionsPath, exportTradesPath)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer dst.Close()

	positions, err := src.ListPositions()
	if err != nil {
		return err
	}

	var trades int
	for _, p := range positions {
		if err := dst.RecordPosition(p); err != nil {
			return err
		}
		ts, err := src.ListTradesByPosition(p.PositionID)
		if err != nil {
			return err
		}
		for _, t := range ts {
			if err := dst.RecordTrade(t); err != nil {
				return err
			}
		}
		trades += len(ts)
	}

	fmt.Printf("exported %d positions and %d trades\n", len(positions), trades)
	return nil
}
