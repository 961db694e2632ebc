package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-ledger",
	Short: "A CLI for the stock ledger services",
	Long: `Stock ledger records buys and sells with average-cost accounting,
values open positions at cached market prices and reports realized performance.

Binaries:
  ledger-service serve -c configs/config-ledger.yaml
  migrate up|down -c configs/config-ledger.yaml`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
