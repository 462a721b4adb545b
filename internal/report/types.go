//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report implements the customer and product reporting engine:
// a deterministic aggregation, classification and KPI pipeline over the
// sales fact table and its two dimensions.
package report

import "time"

// SalesFact is one order line from the fact table. Read-only input.
type SalesFact struct {
	OrderNumber  string
	ProductKey   int
	CustomerKey  int
	OrderDate    *time.Time
	ShippingDate *time.Time
	DueDate      *time.Time
	SalesAmount  float64
	Quantity     int
	Price        float64
}

// Customer is one row of the customer dimension.
type Customer struct {
	CustomerKey int
	CustomerID  string
	Name        string
	BirthDate   *time.Time
	CreateDate  time.Time
}

// Product is one row of the product dimension.
type Product struct {
	ProductKey  int
	ProductID   string
	Name        string
	Category    string
	Subcategory string
	ProductLine string
	Cost        float64
	StartDate   *time.Time
}

// CustomerSegment is a mutually exclusive customer classification.
type CustomerSegment string

// Customer segments, assigned by ordered rule evaluation.
const (
	SegmentVIP     CustomerSegment = "VIP"
	SegmentRegular CustomerSegment = "Regular"
	SegmentNew     CustomerSegment = "New"
)

// ProductSegment is a revenue-based product performance tier.
type ProductSegment string

// Product performance tiers.
const (
	SegmentHighPerformer ProductSegment = "High-Performer"
	SegmentMidRange      ProductSegment = "Mid-Range"
	SegmentLowPerformer  ProductSegment = "Low-Performer"
)

// AgeGroupUnknown is reported for customers without a birth date.
const AgeGroupUnknown = "unknown"

// Config holds the business thresholds driving classification and KPI
// derivation. Thresholds are never inlined in the pipeline itself so tests
// can probe boundary values precisely.
type Config struct {
	// VIPMinLifespanMonths is the minimum lifespan for the VIP and
	// Regular rules to apply.
	VIPMinLifespanMonths int

	// VIPMinSpend is the total spend a customer must exceed to be VIP.
	VIPMinSpend float64

	// ProductHighThreshold is the revenue a product must exceed to be a
	// High-Performer.
	ProductHighThreshold float64

	// ProductMidThreshold is the minimum revenue for Mid-Range.
	ProductMidThreshold float64

	// AgeBuckets are ascending exclusive upper bounds for age groups.
	AgeBuckets []int

	// IncludeInactive includes products without any recorded sales in
	// the product report, labeled Low-Performer with zeroed KPIs.
	// Customers without orders are always included (segment New).
	IncludeInactive bool
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		VIPMinLifespanMonths: 12,
		VIPMinSpend:          5000,
		ProductHighThreshold: 50000,
		ProductMidThreshold:  10000,
		AgeBuckets:           []int{20, 30, 40, 50},
	}
}

// CustomerReport is one denormalized row of the customer report.
type CustomerReport struct {
	CustomerKey     int             `json:"customer_key"`
	CustomerID      string          `json:"customer_id"`
	Name            string          `json:"name"`
	Age             *int            `json:"age"`
	AgeGroup        string          `json:"age_group"`
	Segment         CustomerSegment `json:"segment"`
	FirstOrderDate  *time.Time      `json:"first_order_date"`
	LastOrderDate   *time.Time      `json:"last_order_date"`
	TotalOrders     int             `json:"total_orders"`
	TotalSales      float64         `json:"total_sales"`
	TotalQuantity   int             `json:"total_quantity"`
	TotalProducts   int             `json:"total_products"`
	LifespanMonths  int             `json:"lifespan_months"`
	RecencyMonths   int             `json:"recency_months"`
	AvgOrderValue   float64         `json:"avg_order_value"`
	AvgMonthlySpend float64         `json:"avg_monthly_spend"`
}

// ProductReport is one denormalized row of the product report.
type ProductReport struct {
	ProductKey        int            `json:"product_key"`
	ProductID         string         `json:"product_id"`
	Name              string         `json:"name"`
	Category          string         `json:"category"`
	Subcategory       string         `json:"subcategory"`
	ProductLine       string         `json:"product_line"`
	Cost              float64        `json:"cost"`
	Segment           ProductSegment `json:"segment"`
	FirstOrderDate    *time.Time     `json:"first_order_date"`
	LastOrderDate     *time.Time     `json:"last_order_date"`
	TotalOrders       int            `json:"total_orders"`
	TotalSales        float64        `json:"total_sales"`
	TotalQuantity     int            `json:"total_quantity"`
	TotalCustomers    int            `json:"total_customers"`
	LifespanMonths    int            `json:"lifespan_months"`
	RecencyMonths     int            `json:"recency_months"`
	AvgSellingPrice   float64        `json:"avg_selling_price"`
	AvgOrderRevenue   float64        `json:"avg_order_revenue"`
	AvgMonthlyRevenue float64        `json:"avg_monthly_revenue"`
}
