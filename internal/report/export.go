//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ExportJSON writes data as indented JSON, creating parent directories
// as needed.
func ExportJSON(filename string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// TimestampedFilename builds an output path like dir/name_20060102_150405.ext.
func TimestampedFilename(dir, name, ext string) string {
	t := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, t, ext))
}

// WriteCustomerCSV writes the customer report as CSV with a header row.
func WriteCustomerCSV(w io.Writer, reports []CustomerReport) error {
	cw := csv.NewWriter(w)
	header := []string{
		"customer_key", "customer_id", "name", "age", "age_group", "segment",
		"first_order_date", "last_order_date", "total_orders", "total_sales",
		"total_quantity", "total_products", "lifespan_months", "recency_months",
		"avg_order_value", "avg_monthly_spend",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range reports {
		rec := []string{
			strconv.Itoa(r.CustomerKey),
			r.CustomerID,
			r.Name,
			formatOptionalInt(r.Age),
			r.AgeGroup,
			string(r.Segment),
			formatOptionalDate(r.FirstOrderDate),
			formatOptionalDate(r.LastOrderDate),
			strconv.Itoa(r.TotalOrders),
			formatAmount(r.TotalSales),
			strconv.Itoa(r.TotalQuantity),
			strconv.Itoa(r.TotalProducts),
			strconv.Itoa(r.LifespanMonths),
			strconv.Itoa(r.RecencyMonths),
			formatAmount(r.AvgOrderValue),
			formatAmount(r.AvgMonthlySpend),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProductCSV writes the product report as CSV with a header row.
func WriteProductCSV(w io.Writer, reports []ProductReport) error {
	cw := csv.NewWriter(w)
	header := []string{
		"product_key", "product_id", "name", "category", "subcategory",
		"product_line", "cost",
		"segment", "first_order_date", "last_order_date", "total_orders",
		"total_sales", "total_quantity", "total_customers", "lifespan_months",
		"recency_months", "avg_selling_price", "avg_order_revenue", "avg_monthly_revenue",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range reports {
		rec := []string{
			strconv.Itoa(r.ProductKey),
			r.ProductID,
			r.Name,
			r.Category,
			r.Subcategory,
			r.ProductLine,
			formatAmount(r.Cost),
			string(r.Segment),
			formatOptionalDate(r.FirstOrderDate),
			formatOptionalDate(r.LastOrderDate),
			strconv.Itoa(r.TotalOrders),
			formatAmount(r.TotalSales),
			strconv.Itoa(r.TotalQuantity),
			strconv.Itoa(r.TotalCustomers),
			strconv.Itoa(r.LifespanMonths),
			strconv.Itoa(r.RecencyMonths),
			formatAmount(r.AvgSellingPrice),
			formatAmount(r.AvgOrderRevenue),
			formatAmount(r.AvgMonthlyRevenue),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCustomerCSV writes the customer report to a file.
func ExportCustomerCSV(filename string, reports []CustomerReport) error {
	return exportCSV(filename, func(w io.Writer) error {
		return WriteCustomerCSV(w, reports)
	})
}

// ExportProductCSV writes the product report to a file.
func ExportProductCSV(filename string, reports []ProductReport) error {
	return exportCSV(filename, func(w io.Writer) error {
		return WriteProductCSV(w, reports)
	})
}

func exportCSV(filename string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()
	return write(file)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
