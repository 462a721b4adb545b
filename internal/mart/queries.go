package mart

import (
	"context"
	"time"

	"github.com/salesmart-io/salesmart/internal/report"
)

// Canned analytical queries over the mart: ranking, time-series,
// cumulative and part-to-whole analyses, plus segment summaries over the
// installed report views. All are read-only.

// ProductRevenueRow is one row of a product revenue ranking.
type ProductRevenueRow struct {
	ProductKey int     `json:"product_key"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	TotalSales float64 `json:"total_sales"`
	Rank       int64   `json:"rank"`
}

// MonthlySalesRow is one month of sales activity.
type MonthlySalesRow struct {
	Month          time.Time `json:"month"`
	TotalSales     float64   `json:"total_sales"`
	TotalCustomers int64     `json:"total_customers"`
	TotalQuantity  int64     `json:"total_quantity"`
}

// RunningTotalRow is one month of the cumulative sales series.
type RunningTotalRow struct {
	Month          time.Time `json:"month"`
	TotalSales     float64   `json:"total_sales"`
	RunningTotal   float64   `json:"running_total"`
	MovingAvgPrice float64   `json:"moving_avg_price"`
}

// CategoryShareRow is one category's contribution to overall sales.
type CategoryShareRow struct {
	Category       string  `json:"category"`
	TotalSales     float64 `json:"total_sales"`
	OverallSales   float64 `json:"overall_sales"`
	PercentOfTotal float64 `json:"percent_of_total"`
}

// SegmentCountRow summarizes one segment of a report view.
type SegmentCountRow struct {
	Segment    string  `json:"segment"`
	Entities   int64   `json:"entities"`
	TotalSales float64 `json:"total_sales"`
}

// TopProductsByRevenue ranks the limit highest-revenue products.
func TopProductsByRevenue(ctx context.Context, db report.Querier, limit int) ([]ProductRevenueRow, error) {
	return queryProductRanking(ctx, db, `
        SELECT p.product_key, p.name, p.category,
               SUM(f.sales_amount) AS total_sales,
               RANK() OVER (ORDER BY SUM(f.sales_amount) DESC) AS revenue_rank
        FROM fact_sales f
        JOIN dim_products p ON p.product_key = f.product_key
        GROUP BY p.product_key, p.name, p.category
        ORDER BY total_sales DESC
        LIMIT $1
    `, limit)
}

// BottomProductsByRevenue ranks the limit lowest-revenue products.
func BottomProductsByRevenue(ctx context.Context, db report.Querier, limit int) ([]ProductRevenueRow, error) {
	return queryProductRanking(ctx, db, `
        SELECT p.product_key, p.name, p.category,
               SUM(f.sales_amount) AS total_sales,
               RANK() OVER (ORDER BY SUM(f.sales_amount) ASC) AS revenue_rank
        FROM fact_sales f
        JOIN dim_products p ON p.product_key = f.product_key
        GROUP BY p.product_key, p.name, p.category
        ORDER BY total_sales ASC
        LIMIT $1
    `, limit)
}

func queryProductRanking(ctx context.Context, db report.Querier, sql string, limit int) ([]ProductRevenueRow, error) {
	rows, err := db.Query(ctx, sql, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProductRevenueRow
	for rows.Next() {
		var r ProductRevenueRow
		if err := rows.Scan(&r.ProductKey, &r.Name, &r.Category, &r.TotalSales, &r.Rank); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// MonthlySales returns sales, distinct customers and units per month.
func MonthlySales(ctx context.Context, db report.Querier) ([]MonthlySalesRow, error) {
	rows, err := db.Query(ctx, `
        SELECT DATE_TRUNC('month', order_date)::date AS month,
               SUM(sales_amount)            AS total_sales,
               COUNT(DISTINCT customer_key) AS total_customers,
               SUM(quantity)                AS total_quantity
        FROM fact_sales
        WHERE order_date IS NOT NULL
        GROUP BY 1
        ORDER BY 1
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthlySalesRow
	for rows.Next() {
		var r MonthlySalesRow
		if err := rows.Scan(&r.Month, &r.TotalSales, &r.TotalCustomers, &r.TotalQuantity); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RunningTotalSales returns the month-by-month cumulative sales series
// with a moving average of unit price.
func RunningTotalSales(ctx context.Context, db report.Querier) ([]RunningTotalRow, error) {
	rows, err := db.Query(ctx, `
        SELECT month,
               total_sales,
               SUM(total_sales) OVER (ORDER BY month)           AS running_total,
               ROUND(AVG(avg_price) OVER (ORDER BY month), 2)   AS moving_avg_price
        FROM (
            SELECT DATE_TRUNC('month', order_date)::date AS month,
                   SUM(sales_amount) AS total_sales,
                   AVG(price)        AS avg_price
            FROM fact_sales
            WHERE order_date IS NOT NULL
            GROUP BY 1
        ) monthly
        ORDER BY month
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunningTotalRow
	for rows.Next() {
		var r RunningTotalRow
		if err := rows.Scan(&r.Month, &r.TotalSales, &r.RunningTotal, &r.MovingAvgPrice); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CategoryContribution returns each category's share of overall sales.
// The percentages sum to 100 within rounding.
func CategoryContribution(ctx context.Context, db report.Querier) ([]CategoryShareRow, error) {
	rows, err := db.Query(ctx, `
        WITH category_sales AS (
            SELECT p.category, SUM(f.sales_amount) AS total_sales
            FROM fact_sales f
            JOIN dim_products p ON p.product_key = f.product_key
            GROUP BY p.category
        )
        SELECT category,
               total_sales,
               SUM(total_sales) OVER () AS overall_sales,
               ROUND(total_sales / NULLIF(SUM(total_sales) OVER (), 0) * 100, 2) AS percent_of_total
        FROM category_sales
        ORDER BY total_sales DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryShareRow
	for rows.Next() {
		var r CategoryShareRow
		if err := rows.Scan(&r.Category, &r.TotalSales, &r.OverallSales, &r.PercentOfTotal); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CustomerSegmentCounts summarizes the report_customers view by segment.
func CustomerSegmentCounts(ctx context.Context, db report.Querier) ([]SegmentCountRow, error) {
	return querySegmentCounts(ctx, db, `
        SELECT segment, COUNT(*) AS entities, SUM(total_sales) AS total_sales
        FROM report_customers
        GROUP BY segment
        ORDER BY entities DESC
    `)
}

// ProductSegmentCounts summarizes the report_products view by segment.
func ProductSegmentCounts(ctx context.Context, db report.Querier) ([]SegmentCountRow, error) {
	return querySegmentCounts(ctx, db, `
        SELECT segment, COUNT(*) AS entities, SUM(total_sales) AS total_sales
        FROM report_products
        GROUP BY segment
        ORDER BY entities DESC
    `)
}

func querySegmentCounts(ctx context.Context, db report.Querier, sql string) ([]SegmentCountRow, error) {
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SegmentCountRow
	for rows.Next() {
		var r SegmentCountRow
		if err := rows.Scan(&r.Segment, &r.Entities, &r.TotalSales); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
