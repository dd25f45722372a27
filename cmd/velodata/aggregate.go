package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/velodata/cycling.report/internal/analytics"
	"github.com/velodata/cycling.report/internal/security"
)

var aggregateOut string

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <name>",
	Short: "Export a pre-computed aggregate table as CSV",
	Long: "Export one of the pre-computed aggregate tables as CSV. Valid names: " +
		strings.Join(analytics.AggregateNames, ", ") + ".",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot()
		if err != nil {
			return err
		}
		table, err := snap.Aggregate(args[0])
		if err != nil {
			return fmt.Errorf("%w: %q (valid: %s)", err, args[0], strings.Join(analytics.AggregateNames, ", "))
		}

		out := cmd.OutOrStdout()
		if aggregateOut != "" {
			if err := security.ValidateExportPath(aggregateOut); err != nil {
				return err
			}
			f, err := os.Create(aggregateOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return writeAggregateCSV(out, table)
	},
}

func init() {
	aggregateCmd.Flags().StringVar(&aggregateOut, "out", "", "output file (default stdout)")
	rootCmd.AddCommand(aggregateCmd)
}

func writeAggregateCSV(w io.Writer, table interface{}) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	write := func(fields ...string) error { return cw.Write(fields) }

	switch rows := table.(type) {
	case []analytics.YearSeverityCount:
		if err := write("year", "severity", "count"); err != nil {
			return err
		}
		for _, r := range rows {
			if err := write(strconv.Itoa(r.Year), r.Severity, strconv.Itoa(r.Count)); err != nil {
				return err
			}
		}
	case []analytics.DepartmentCount:
		if err := write("department", "total_accidents", "fatal", "severe", "lat", "long"); err != nil {
			return err
		}
		for _, r := range rows {
			if err := write(r.Department, strconv.Itoa(r.Total), strconv.Itoa(r.Fatal),
				strconv.Itoa(r.Severe), floatField(r.Latitude), floatField(r.Longitude)); err != nil {
				return err
			}
		}
	case []analytics.LabelSeverityCount:
		if err := write("label", "severity", "count"); err != nil {
			return err
		}
		for _, r := range rows {
			if err := write(r.Label, r.Severity, strconv.Itoa(r.Count)); err != nil {
				return err
			}
		}
	case []analytics.HourSeverityCount:
		if err := write("hour", "severity", "count"); err != nil {
			return err
		}
		for _, r := range rows {
			if err := write(strconv.Itoa(r.Hour), r.Severity, strconv.Itoa(r.Count)); err != nil {
				return err
			}
		}
	case []analytics.MonthPurposeCount:
		if err := write("month_num", "month_name", "trip_purpose", "count"); err != nil {
			return err
		}
		for _, r := range rows {
			if err := write(strconv.Itoa(r.MonthNum), r.MonthName, r.TripPurpose, strconv.Itoa(r.Count)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("no CSV layout for aggregate type %T", table)
	}
	cw.Flush()
	return cw.Error()
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
