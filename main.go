package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "resale-radar",
	Short: "Estimate resale profitability through marketplace fulfillment programs",
	Long: `resale-radar computes every fee a marketplace charges on a resold
product (referral commission, fulfillment pick/pack, inbound shipping,
storage, prep) and the resulting profit, margin, and ROI.

Examples:
  resale-radar serve --port 13380
  resale-radar calc --price 29.99 --cost 10 --weight 2 --dims 10x8x2
  resale-radar calc --price 29.99 --target-margin 25`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
