package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/velodata/cycling.report/internal/analytics"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print headline figures for the cleaned dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			return err
		}

		s := snap.Summary(analytics.FilterSpec{})
		trend := snap.Trend(analytics.FilterSpec{})

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "total victims: %d\n", s.TotalVictims)
		fmt.Fprintf(out, "fatal:         %d (%s)\n", s.FatalCount, rateString(s.FatalRate))
		fmt.Fprintf(out, "severe:        %d (%s)\n", s.SevereCount, rateString(s.SevereRate))
		if s.AverageAge.Defined() {
			fmt.Fprintf(out, "average age:   %.0f years\n", float64(s.AverageAge))
		}
		if s.PeakPeriod != "" {
			fmt.Fprintf(out, "peak period:   %s\n", s.PeakPeriod)
		}
		if !isNaN(trend.Slope) {
			fmt.Fprintf(out, "yearly trend:  %+.1f victims/year (R²=%.2f)\n", trend.Slope, trend.RSquared)
		}
		return nil
	},
}

func rateString(r analytics.Rate) string {
	if !r.Defined() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", float64(r))
}

func isNaN(v float64) bool { return v != v }

func init() {
	rootCmd.AddCommand(summaryCmd)
}
