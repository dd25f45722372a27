package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/velodata/cycling.report/internal/accident"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Run the cleaning pipeline and print the cleaning report",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		printReport(cmd, snap.Report())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func printReport(cmd *cobra.Command, report *accident.CleaningReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run:              %s\n", report.RunID)
	fmt.Fprintf(out, "original rows:    %d\n", report.OriginalRows)
	fmt.Fprintf(out, "original columns: %d\n", report.OriginalColumns)
	fmt.Fprintf(out, "cleaned rows:     %d\n", report.CleanedRows)
	fmt.Fprintf(out, "cleaned columns:  %d\n", report.CleanedColumns)
	fmt.Fprintf(out, "rows removed:     %d\n", report.RowsRemoved)
	if len(report.ColumnsDropped) > 0 {
		fmt.Fprintf(out, "columns dropped:  %v\n", report.ColumnsDropped)
	}

	if report.Rejections.Total > 0 {
		fmt.Fprintf(out, "\nrejections by rule:\n")
		for _, reason := range accident.RejectReasons {
			if n := report.Rejections.ByReason[reason]; n > 0 {
				fmt.Fprintf(out, "  %-20s %d\n", reason, n)
			}
		}
	}

	if len(report.MissingValues) > 0 {
		fmt.Fprintf(out, "\ncolumns with missing values:\n")
		for _, mv := range report.MissingValues {
			fmt.Fprintf(out, "  %-24s %8d  (%.1f%%)\n", mv.Column, mv.Count, mv.Percent)
		}
	}
}
