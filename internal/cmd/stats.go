package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillforge/quill/internal/ux"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show your sales statistics",
	Long: `Show aggregated sales statistics: book count, total sales, revenue
and average rating.

Examples:
  quill stats
  quill stats --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newShell()
		if err != nil {
			return err
		}

		if _, err := s.requireApproved(cmd.Context()); err != nil {
			return err
		}

		stats, err := s.client.MyStats(cmd.Context())
		if err != nil {
			return err
		}

		if !textOutput(cmd) {
			formatter, err := formatterFor(cmd)
			if err != nil {
				return err
			}
			return formatter.Format(stats)
		}

		fmt.Printf("%s %s\n", ux.Label("Books:        "), ux.FormatNumber(int64(stats.TotalBooks)))
		fmt.Printf("%s %s\n", ux.Label("Sales:        "), ux.FormatNumber(int64(stats.TotalSales)))
		fmt.Printf("%s %s\n", ux.Label("Revenue:      "), ux.FormatMoney(stats.TotalRevenue))
		fmt.Printf("%s %s\n", ux.Label("This month:   "), ux.FormatMoney(stats.MonthlyRevenue))
		fmt.Printf("%s %.1f/5\n", ux.Label("Avg rating:   "), stats.AverageRating)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
