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
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesmart-io/salesmart/internal/report"
)

// The report views mirror the in-process engine stage by stage
// (aggregation, KPI derivation, classification) so downstream tools can
// consume the same reports with plain SELECTs. Views are re-derived on
// every access; recency inside the views is anchored to CURRENT_DATE,
// while the engine takes an injectable reference date.

// monthsBetween emits the calendar-month difference between two date
// expressions, matching report.MonthsBetween.
func monthsBetween(from, to string) string {
	return fmt.Sprintf(
		"((DATE_PART('year', %[2]s) - DATE_PART('year', %[1]s)) * 12"+
			" + DATE_PART('month', %[2]s) - DATE_PART('month', %[1]s))::int",
		from, to)
}

// ageGroupCase emits the age bucket CASE for the configured bounds.
// Without bounds every age reports 'unknown', matching the engine.
func ageGroupCase(buckets []int) string {
	if len(buckets) == 0 {
		return "'unknown'"
	}
	var b strings.Builder
	b.WriteString("CASE\n        WHEN age IS NULL THEN 'unknown'\n")
	fmt.Fprintf(&b, "        WHEN age < %d THEN 'under-%d'\n", buckets[0], buckets[0])
	for i := 1; i < len(buckets); i++ {
		fmt.Fprintf(&b, "        WHEN age < %d THEN '%d-%d'\n", buckets[i], buckets[i-1], buckets[i]-1)
	}
	fmt.Fprintf(&b, "        ELSE '%d and above'\n    END", buckets[len(buckets)-1])
	return b.String()
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// CustomerReportViewSQL builds the report_customers view DDL.
func CustomerReportViewSQL(cfg report.Config) string {
	return fmt.Sprintf(`
CREATE OR REPLACE VIEW report_customers AS
WITH order_facts AS (
    SELECT f.order_number, f.customer_key, f.product_key, f.order_date,
           f.sales_amount, f.quantity
    FROM fact_sales f
    JOIN dim_customers c ON c.customer_key = f.customer_key
),
customer_aggregation AS (
    -- MIN/MAX skip NULL order dates; dateless facts still count in totals
    SELECT customer_key,
           COUNT(DISTINCT order_number) AS total_orders,
           SUM(sales_amount)            AS total_sales,
           SUM(quantity)                AS total_quantity,
           COUNT(DISTINCT product_key)  AS total_products,
           MIN(order_date)              AS first_order_date,
           MAX(order_date)              AS last_order_date
    FROM order_facts
    GROUP BY customer_key
),
customer_kpis AS (
    SELECT c.customer_key,
           c.customer_id,
           c.name,
           CASE WHEN c.birth_date IS NULL THEN NULL
                ELSE DATE_PART('year', AGE(CURRENT_DATE, c.birth_date))::int
           END AS age,
           COALESCE(a.total_orders, 0)   AS total_orders,
           COALESCE(a.total_sales, 0)    AS total_sales,
           COALESCE(a.total_quantity, 0) AS total_quantity,
           COALESCE(a.total_products, 0) AS total_products,
           a.first_order_date,
           a.last_order_date,
           CASE WHEN a.first_order_date IS NULL THEN 0
                ELSE %s
           END AS lifespan_months,
           CASE WHEN a.last_order_date IS NULL THEN 0
                ELSE GREATEST(0, %s)
           END AS recency_months
    FROM dim_customers c
    LEFT JOIN customer_aggregation a ON a.customer_key = c.customer_key
)
SELECT
    customer_key,
    customer_id,
    name,
    age,
    %s AS age_group,
    CASE
        WHEN lifespan_months >= %d AND total_sales > %s THEN 'VIP'
        WHEN lifespan_months >= %d THEN 'Regular'
        ELSE 'New'
    END AS segment,
    first_order_date,
    last_order_date,
    total_orders,
    total_sales,
    total_quantity,
    total_products,
    lifespan_months,
    recency_months,
    CASE WHEN total_orders = 0 THEN 0
         ELSE ROUND(total_sales / total_orders, 2)
    END AS avg_order_value,
    CASE WHEN total_orders = 0 THEN 0
         WHEN lifespan_months = 0 THEN total_sales
         ELSE ROUND(total_sales / lifespan_months, 2)
    END AS avg_monthly_spend
FROM customer_kpis
`,
		monthsBetween("a.first_order_date", "a.last_order_date"),
		monthsBetween("a.last_order_date", "CURRENT_DATE"),
		ageGroupCase(cfg.AgeBuckets),
		cfg.VIPMinLifespanMonths, amount(cfg.VIPMinSpend),
		cfg.VIPMinLifespanMonths,
	)
}

// ProductReportViewSQL builds the report_products view DDL. The join to
/// the aggregation follows the inclusion policy: inner by default so
// products without sales stay out of the performance tiers, left when
// IncludeInactive is set.
func ProductReportViewSQL(cfg report.Config) string {
	join := "JOIN"
	if cfg.IncludeInactive {
		join = "LEFT JOIN"
	}

	return fmt.Sprintf(`
CREATE OR REPLACE VIEW report_products AS
WITH order_facts AS (
    SELECT f.order_number, f.customer_key, f.product_key, f.order_date,
           f.sales_amount, f.quantity
    FROM fact_sales f
    JOIN dim_products p ON p.product_key = f.product_key
),
product_aggregation AS (
    SELECT product_key,
           COUNT(DISTINCT order_number) AS total_orders,
           SUM(sales_amount)            AS total_sales,
           SUM(quantity)                AS total_quantity,
           COUNT(DISTINCT customer_key) AS total_customers,
           MIN(order_date)              AS first_order_date,
           MAX(order_date)              AS last_order_date
    FROM order_facts
    GROUP BY product_key
),
product_kpis AS (
    SELECT p.product_key,
           p.product_id,
           p.name,
           p.category,
           p.subcategory,
           p.product_line,
           p.cost,
           COALESCE(a.total_orders, 0)    AS total_orders,
           COALESCE(a.total_sales, 0)     AS total_sales,
           COALESCE(a.total_quantity, 0)  AS total_quantity,
           COALESCE(a.total_customers, 0) AS total_customers,
           a.first_order_date,
           a.last_order_date,
           CASE WHEN a.first_order_date IS NULL THEN 0
                ELSE %s
           END AS lifespan_months,
           CASE WHEN a.last_order_date IS NULL THEN 0
                ELSE GREATEST(0, %s)
           END AS recency_months
    FROM dim_products p
    %s product_aggregation a ON a.product_key = p.product_key
)
SELECT
    product_key,
    product_id,
    name,
    category,
    subcategory,
    product_line,
    cost,
    CASE
        WHEN total_sales > %s THEN 'High-Performer'
        WHEN total_sales >= %s THEN 'Mid-Range'
        ELSE 'Low-Performer'
    END AS segment,
    first_order_date,
    last_order_date,
    total_orders,
    total_sales,
    total_quantity,
    total_customers,
    lifespan_months,
    recency_months,
    CASE WHEN total_quantity = 0 THEN 0
         ELSE ROUND(total_sales / total_quantity, 2)
    END AS avg_selling_price,
    CASE WHEN total_orders = 0 THEN 0
         ELSE ROUND(total_sales / total_orders, 2)
    END AS avg_order_revenue,
    CASE WHEN total_orders = 0 THEN 0
         WHEN lifespan_months = 0 THEN total_sales
         ELSE ROUND(total_sales / lifespan_months, 2)
    END AS avg_monthly_revenue
FROM product_kpis
`,
		monthsBetween("a.first_order_date", "a.last_order_date"),
		monthsBetween("a.last_order_date", "CURRENT_DATE"),
		join,
		amount(cfg.ProductHighThreshold),
		amount(cfg.ProductMidThreshold),
	)
}

// InstallReportViews creates or replaces both report views.
func InstallReportViews(ctx context.Context, pool *pgxpool.Pool, cfg report.Config) error {
	if _, err := pool.Exec(ctx, CustomerReportViewSQL(cfg)); err != nil {
		return fmt.Errorf("failed to create report_customers view: %w", err)
	}
	if _, err := pool.Exec(ctx, ProductReportViewSQL(cfg)); err != nil {
		return fmt.Errorf("failed to create report_products view: %w", err)
	}
	return nil
}
