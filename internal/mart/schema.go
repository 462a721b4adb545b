// Package mart manages the star-schema sales mart: DDL, data loading and
// the canned analytical queries that run against it.
package mart

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the sales mart. Fact rows reference dimensions by key but
// are joined rather than FK-enforced: rows with unmatched keys simply fall
// out of the report views instead of failing the load.
const createSchemaSQL = `
-- Customer dimension
CREATE TABLE IF NOT EXISTS dim_customers (
    customer_key INTEGER PRIMARY KEY,
    customer_id  VARCHAR(50) NOT NULL,
    name         VARCHAR(100) NOT NULL,
    birth_date   DATE,
    create_date  DATE NOT NULL
);

-- Product dimension
CREATE TABLE IF NOT EXISTS dim_products (
    product_key  INTEGER PRIMARY KEY,
    product_id   VARCHAR(50) NOT NULL,
    name         VARCHAR(100) NOT NULL,
    category     VARCHAR(50) NOT NULL,
    subcategory  VARCHAR(50) NOT NULL DEFAULT '',
    product_line VARCHAR(50) NOT NULL DEFAULT '',
    cost         NUMERIC(12,2) NOT NULL,
    start_date   DATE
);

-- Sales fact: one row per order line
CREATE TABLE IF NOT EXISTS fact_sales (
    order_number  VARCHAR(20) NOT NULL,
    product_key   INTEGER NOT NULL,
    customer_key  INTEGER NOT NULL,
    order_date    DATE,
    shipping_date DATE,
    due_date      DATE,
    sales_amount  NUMERIC(12,2) NOT NULL,
    quantity      INTEGER NOT NULL,
    price         NUMERIC(12,2) NOT NULL
);

-- Indexes for the report views and canned queries
CREATE INDEX IF NOT EXISTS idx_fact_sales_order_date ON fact_sales(order_date);
CREATE INDEX IF NOT EXISTS idx_fact_sales_customer_key ON fact_sales(customer_key);
CREATE INDEX IF NOT EXISTS idx_fact_sales_product_key ON fact_sales(product_key);
CREATE INDEX IF NOT EXISTS idx_dim_products_category ON dim_products(category);
`

// Drop schema SQL
const dropSchemaSQL = `
DROP VIEW IF EXISTS report_customers;
DROP VIEW IF EXISTS report_products;
DROP TABLE IF EXISTS fact_sales CASCADE;
DROP TABLE IF EXISTS dim_customers CASCADE;
DROP TABLE IF EXISTS dim_products CASCADE;
`

// Truncate SQL clears the data while keeping the schema.
const truncateSQL = `
TRUNCATE fact_sales, dim_customers, dim_products;
`

// CreateSchema creates the mart tables and indexes.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the mart tables and report views.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}

// TruncateData removes all rows from the mart tables.
func TruncateData(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, truncateSQL)
	return err
}
