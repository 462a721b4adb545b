//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/salesmart-io/salesmart/internal/db"
	"github.com/salesmart-io/salesmart/internal/logging"
	"github.com/salesmart-io/salesmart/internal/report"
)

var (
	reportFormat          string
	reportOutputDir       string
	reportReferenceDate   string
	reportIncludeInactive bool
)

var reportCmd = &cobra.Command{
	Use:   "report [customers|products]",
	Short: "Compute and output a customer or product report",
	Long: `Compute the customer or product report with the in-process engine and
print it as a table, or export it as JSON or CSV.

The engine reads the dimension and fact tables, aggregates per customer or
product, classifies each into a segment and derives KPIs. Recency and
customer age are measured against --reference-date (default: today).

Examples:
  salesmart report customers
  salesmart report products --format json --output-dir ./reports
  salesmart report customers --reference-date 2024-06-01 --format csv`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"customers", "products"},
	RunE:      runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"output format (table, json, csv)")
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "",
		"directory for exported report files")
	reportCmd.Flags().StringVar(&reportReferenceDate, "reference-date", "",
		"reference date for recency and age (YYYY-MM-DD, default: today)")
	reportCmd.Flags().BoolVar(&reportIncludeInactive, "include-inactive", false,
		"include products without recorded sales in the product report")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportOutputDir != "" {
		cfg.Report.OutputDir = reportOutputDir
	}
	if reportReferenceDate != "" {
		cfg.Report.ReferenceDate = reportReferenceDate
	}
	if reportIncludeInactive {
		cfg.Report.IncludeInactive = true
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}
	reference, err := cfg.ReferenceTime()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	ds, err := report.LoadDataset(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to load mart data: %w", err)
	}
	engine := report.NewEngine(engineConfig(cfg))

	switch args[0] {
	case "customers":
		return outputCustomerReport(cmd, engine.CustomerReports(ds, reference))
	case "products":
		return outputProductReport(cmd, engine.ProductReports(ds, reference))
	default:
		return fmt.Errorf("unknown report: %s (expected customers or products)", args[0])
	}
}

func outputCustomerReport(cmd *cobra.Command, reports []report.CustomerReport) error {
	switch cfg.Report.Format {
	case "json":
		filename := report.TimestampedFilename(cfg.Report.OutputDir, "report_customers", "json")
		if err := report.ExportJSON(filename, reports); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		logging.Info().Str("file", filename).Int("rows", len(reports)).Msg("Customer report exported")
		cmd.Println(filename)
	case "csv":
		filename := report.TimestampedFilename(cfg.Report.OutputDir, "report_customers", "csv")
		if err := report.ExportCustomerCSV(filename, reports); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		logging.Info().Str("file", filename).Int("rows", len(reports)).Msg("Customer report exported")
		cmd.Println(filename)
	default:
		printCustomerTable(cmd.OutOrStdout(), reports)
	}
	return nil
}

func outputProductReport(cmd *cobra.Command, reports []report.ProductReport) error {
	switch cfg.Report.Format {
	case "json":
		filename := report.TimestampedFilename(cfg.Report.OutputDir, "report_products", "json")
		if err := report.ExportJSON(filename, reports); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		logging.Info().Str("file", filename).Int("rows", len(reports)).Msg("Product report exported")
		cmd.Println(filename)
	case "csv":
		filename := report.TimestampedFilename(cfg.Report.OutputDir, "report_products", "csv")
		if err := report.ExportProductCSV(filename, reports); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
		logging.Info().Str("file", filename).Int("rows", len(reports)).Msg("Product report exported")
		cmd.Println(filename)
	default:
		printProductTable(cmd.OutOrStdout(), reports)
	}
	return nil
}

func printCustomerTable(w io.Writer, reports []report.CustomerReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tAGE GROUP\tSEGMENT\tORDERS\tTOTAL SALES\tLIFESPAN\tRECENCY\tAVG ORDER\tAVG MONTHLY")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%d\t%d\t%.2f\t%.2f\n",
			r.CustomerKey, r.Name, r.AgeGroup, r.Segment,
			r.TotalOrders, r.TotalSales, r.LifespanMonths, r.RecencyMonths,
			r.AvgOrderValue, r.AvgMonthlySpend)
	}
	tw.Flush()
}

func printProductTable(w io.Writer, reports []report.ProductReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tCATEGORY\tSEGMENT\tORDERS\tTOTAL SALES\tCUSTOMERS\tRECENCY\tAVG PRICE\tAVG REVENUE")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%d\t%d\t%.2f\t%.2f\n",
			r.ProductKey, r.Name, r.Category, r.Segment,
			r.TotalOrders, r.TotalSales, r.TotalCustomers, r.RecencyMonths,
			r.AvgSellingPrice, r.AvgOrderRevenue)
	}
	tw.Flush()
}
