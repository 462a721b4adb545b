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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the read-only database surface the dataset loader needs.
// Both *pgxpool.Pool and *pgx.Conn satisfy it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Dataset is the engine's in-memory input: the fact table and both
// dimensions. The engine never mutates it.
type Dataset struct {
	Customers []Customer
	Products  []Product
	Facts     []SalesFact
}

// LoadDataset reads the fact and dimension tables from the mart. The
// engine itself stays database-free; this is the only bridge.
func LoadDataset(ctx context.Context, db Querier) (*Dataset, error) {
	ds := &Dataset{}

	rows, err := db.Query(ctx, `
        SELECT customer_key, customer_id, name, birth_date, create_date
        FROM dim_customers
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to read dim_customers: %w", err)
	}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.CustomerKey, &c.CustomerID, &c.Name, &c.BirthDate, &c.CreateDate); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		ds.Customers = append(ds.Customers, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `
        SELECT product_key, product_id, name, category, subcategory, product_line, cost, start_date
        FROM dim_products
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to read dim_products: %w", err)
	}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ProductKey, &p.ProductID, &p.Name, &p.Category,
			&p.Subcategory, &p.ProductLine, &p.Cost, &p.StartDate); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		ds.Products = append(ds.Products, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `
        SELECT order_number, product_key, customer_key, order_date,
               shipping_date, due_date, sales_amount, quantity, price
        FROM fact_sales
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to read fact_sales: %w", err)
	}
	for rows.Next() {
		var f SalesFact
		if err := rows.Scan(&f.OrderNumber, &f.ProductKey, &f.CustomerKey, &f.OrderDate,
			&f.ShippingDate, &f.DueDate, &f.SalesAmount, &f.Quantity, &f.Price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan sales fact: %w", err)
		}
		ds.Facts = append(ds.Facts, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ds, nil
}
