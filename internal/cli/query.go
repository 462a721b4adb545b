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
	"github.com/salesmart-io/salesmart/internal/mart"
)

var queryLimit int

var queryCmd = &cobra.Command{
	Use:   "query <name>",
	Short: "Run a canned analytical query against the mart",
	Long: `Run one of the built-in analytical queries and print the result.

Available queries:
  top-products        - highest-revenue products (use --limit)
  bottom-products     - lowest-revenue products (use --limit)
  monthly-sales       - sales, customers and units per month
  running-total       - cumulative monthly sales with moving average price
  category-share      - each category's contribution to overall sales
  customer-segments   - customer counts per segment (needs report views)
  product-segments    - product counts per segment (needs report views)`,
	Args: cobra.ExactArgs(1),
	ValidArgs: []string{
		"top-products", "bottom-products", "monthly-sales", "running-total",
		"category-share", "customer-segments", "product-segments",
	},
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&queryLimit, "limit", 10,
		"row limit for ranking queries")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	w := cmd.OutOrStdout()
	switch args[0] {
	case "top-products":
		rows, err := mart.TopProductsByRevenue(ctx, pool, queryLimit)
		if err != nil {
			return err
		}
		printProductRanking(w, rows)
	case "bottom-products":
		rows, err := mart.BottomProductsByRevenue(ctx, pool, queryLimit)
		if err != nil {
			return err
		}
		printProductRanking(w, rows)
	case "monthly-sales":
		rows, err := mart.MonthlySales(ctx, pool)
		if err != nil {
			return err
		}
		tw := newTable(w, "MONTH\tTOTAL SALES\tCUSTOMERS\tQUANTITY")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%.2f\t%d\t%d\n",
				r.Month.Format("2006-01"), r.TotalSales, r.TotalCustomers, r.TotalQuantity)
		}
		tw.Flush()
	case "running-total":
		rows, err := mart.RunningTotalSales(ctx, pool)
		if err != nil {
			return err
		}
		tw := newTable(w, "MONTH\tTOTAL SALES\tRUNNING TOTAL\tMOVING AVG PRICE")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n",
				r.Month.Format("2006-01"), r.TotalSales, r.RunningTotal, r.MovingAvgPrice)
		}
		tw.Flush()
	case "category-share":
		rows, err := mart.CategoryContribution(ctx, pool)
		if err != nil {
			return err
		}
		tw := newTable(w, "CATEGORY\tTOTAL SALES\tOVERALL\tSHARE %")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n",
				r.Category, r.TotalSales, r.OverallSales, r.PercentOfTotal)
		}
		tw.Flush()
	case "customer-segments":
		rows, err := mart.CustomerSegmentCounts(ctx, pool)
		if err != nil {
			return err
		}
		printSegmentCounts(w, rows)
	case "product-segments":
		rows, err := mart.ProductSegmentCounts(ctx, pool)
		if err != nil {
			return err
		}
		printSegmentCounts(w, rows)
	default:
		return fmt.Errorf("unknown query: %s", args[0])
	}
	return nil
}

func newTable(w io.Writer, header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

func printProductRanking(w io.Writer, rows []mart.ProductRevenueRow) {
	tw := newTable(w, "RANK\tKEY\tNAME\tCATEGORY\tTOTAL SALES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%.2f\n",
			r.Rank, r.ProductKey, r.Name, r.Category, r.TotalSales)
	}
	tw.Flush()
}

func printSegmentCounts(w io.Writer, rows []mart.SegmentCountRow) {
	tw := newTable(w, "SEGMENT\tCOUNT\tTOTAL SALES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", r.Segment, r.Entities, r.TotalSales)
	}
	tw.Flush()
}
