//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mart

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesmart-io/salesmart/internal/logging"
)

// CSV file names expected inside the load directory.
const (
	customersCSV = "customers.csv"
	productsCSV  = "products.csv"
	salesCSV     = "sales.csv"
)

var (
	customerColumns = []string{"customer_key", "customer_id", "name", "birth_date", "create_date"}
	productColumns  = []string{"product_key", "product_id", "name", "category", "subcategory", "product_line", "cost", "start_date"}
	salesColumns    = []string{"order_number", "product_key", "customer_key", "order_date", "shipping_date", "due_date", "sales_amount", "quantity", "price"}
)

// LoadCSV bulk-loads the three mart tables from CSV files in dir using
// COPY. It returns per-table row counts. Files must carry a header row
// matching the table columns; empty fields in nullable date columns load
// as NULL.
func LoadCSV(ctx context.Context, pool *pgxpool.Pool, dir string) (map[string]int64, error) {
	counts := make(map[string]int64)

	loads := []struct {
		file    string
		table   string
		columns []string
		parse   func(io.Reader) ([][]any, error)
	}{
		{customersCSV, "dim_customers", customerColumns, ParseCustomersCSV},
		{productsCSV, "dim_products", productColumns, ParseProductsCSV},
		{salesCSV, "fact_sales", salesColumns, ParseSalesCSV},
	}

	for _, l := range loads {
		path := filepath.Join(dir, l.file)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}

		rows, err := l.parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		n, err := pool.CopyFrom(ctx, pgx.Identifier{l.table},
			l.columns, pgx.CopyFromRows(rows))
		if err != nil {
			return nil, fmt.Errorf("failed to copy into %s: %w", l.table, err)
		}

		logging.Info().
			Str("table", l.table).
			Int64("rows", n).
			Msg("Loaded CSV data")
		counts[l.table] = n
	}

	return counts, nil
}

// ParseCustomersCSV parses customer dimension rows.
// Columns: customer_key, customer_id, name, birth_date (nullable),
// create_date.
func ParseCustomersCSV(r io.Reader) ([][]any, error) {
	return parseCSV(r, customerColumns, func(rec []string) ([]any, error) {
		key, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid customer_key %q: %w", rec[0], err)
		}
		birth, err := parseOptionalDate(rec[3])
		if err != nil {
			return nil, fmt.Errorf("invalid birth_date: %w", err)
		}
		create, err := parseDate(rec[4])
		if err != nil {
			return nil, fmt.Errorf("invalid create_date: %w", err)
		}
		return []any{key, rec[1], rec[2], birth, create}, nil
	})
}

// ParseProductsCSV parses product dimension rows.
// Columns: product_key, product_id, name, category, subcategory,
// product_line, cost, start_date (nullable).
func ParseProductsCSV(r io.Reader) ([][]any, error) {
	return parseCSV(r, productColumns, func(rec []string) ([]any, error) {
		key, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("invalid product_key %q: %w", rec[0], err)
		}
		cost, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid cost %q: %w", rec[6], err)
		}
		if cost < 0 {
			return nil, fmt.Errorf("cost must be non-negative, got %s", rec[6])
		}
		start, err := parseOptionalDate(rec[7])
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		return []any{key, rec[1], rec[2], rec[3], rec[4], rec[5], cost, start}, nil
	})
}

// ParseSalesCSV parses fact rows.
// Columns: order_number, product_key, customer_key, order_date (nullable),
// shipping_date (nullable), due_date (nullable), sales_amount, quantity,
// price.
func ParseSalesCSV(r io.Reader) ([][]any, error) {
	return parseCSV(r, salesColumns, func(rec []string) ([]any, error) {
		productKey, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("invalid product_key %q: %w", rec[1], err)
		}
		customerKey, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("invalid customer_key %q: %w", rec[2], err)
		}
		orderDate, err := parseOptionalDate(rec[3])
		if err != nil {
			return nil, fmt.Errorf("invalid order_date: %w", err)
		}
		shippingDate, err := parseOptionalDate(rec[4])
		if err != nil {
			return nil, fmt.Errorf("invalid shipping_date: %w", err)
		}
		dueDate, err := parseOptionalDate(rec[5])
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %w", err)
		}
		amount, err := strconv.ParseFloat(rec[6], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sales_amount %q: %w", rec[6], err)
		}
		if amount < 0 {
			return nil, fmt.Errorf("sales_amount must be non-negative, got %s", rec[6])
		}
		quantity, err := strconv.Atoi(rec[7])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", rec[7], err)
		}
		if quantity < 1 {
			return nil, fmt.Errorf("quantity must be positive, got %s", rec[7])
		}
		price, err := strconv.ParseFloat(rec[8], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: %w", rec[8], err)
		}
		return []any{rec[0], productKey, customerKey, orderDate, shippingDate,
			dueDate, amount, quantity, price}, nil
	})
}

func parseCSV(r io.Reader, columns []string, parseRecord func([]string) ([]any, error)) ([][]any, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := validateHeader(header, columns); err != nil {
		return nil, err
	}

	var rows [][]any
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateHeader(header, expected []string) error {
	if len(header) != len(expected) {
		return fmt.Errorf("expected %d columns %v, got %d",
			len(expected), expected, len(header))
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i+1, col, header[i])
		}
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// parseOptionalDate returns nil for empty fields so they load as NULL.
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
