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
	"math"
	"sort"
	"testing"
)

func testDataset() *Dataset {
	return &Dataset{
		Customers: []Customer{
			{CustomerKey: 3, CustomerID: "CU003", Name: "Carol Mills",
				BirthDate: datePtr(1985, 4, 12), CreateDate: date(2022, 11, 1)},
			{CustomerKey: 1, CustomerID: "CU001", Name: "Alice Hart",
				BirthDate: datePtr(1990, 2, 1), CreateDate: date(2022, 12, 15)},
			{CustomerKey: 2, CustomerID: "CU002", Name: "Bob Stone",
				CreateDate: date(2023, 5, 20)},
		},
		Products: []Product{
			{ProductKey: 10, ProductID: "PR010", Name: "Road Frame", Category: "Components"},
			{ProductKey: 11, ProductID: "PR011", Name: "Water Bottle", Category: "Accessories",
				ProductLine: "Standard"},
			{ProductKey: 12, ProductID: "PR012", Name: "Touring Bike", Category: "Bikes"},
		},
		Facts: []SalesFact{
			// Customer 1: first order 2023-01-01, last 2024-03-01 (14 months),
			// total spend 6200 -> VIP
			{OrderNumber: "SO001", CustomerKey: 1, ProductKey: 10,
				OrderDate: datePtr(2023, 1, 1), SalesAmount: 3000, Quantity: 2, Price: 1500},
			{OrderNumber: "SO002", CustomerKey: 1, ProductKey: 12,
				OrderDate: datePtr(2024, 3, 1), SalesAmount: 3200, Quantity: 1, Price: 3200},
			// Customer 3: 12-month lifespan, 1200 spend -> Regular,
			// avg monthly spend 100
			{OrderNumber: "SO003", CustomerKey: 3, ProductKey: 11,
				OrderDate: datePtr(2023, 2, 1), SalesAmount: 700, Quantity: 7, Price: 100},
			{OrderNumber: "SO004", CustomerKey: 3, ProductKey: 11,
				OrderDate: datePtr(2024, 2, 1), SalesAmount: 500, Quantity: 5, Price: 100},
		},
	}
}

func TestCustomerReports(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	reference := date(2024, 6, 1)

	reports := engine.CustomerReports(testDataset(), reference)
	if len(reports) != 3 {
		t.Fatalf("Expected 3 customer reports, got %d", len(reports))
	}

	// Ordered by customer key
	if !sort.SliceIsSorted(reports, func(i, j int) bool {
		return reports[i].CustomerKey < reports[j].CustomerKey
	}) {
		t.Error("Customer reports not ordered by customer key")
	}

	alice := reports[0]
	if alice.CustomerKey != 1 {
		t.Fatalf("Expected customer key 1 first, got %d", alice.CustomerKey)
	}
	if alice.LifespanMonths != 14 {
		t.Errorf("Expected lifespan 14 months, got %d", alice.LifespanMonths)
	}
	if alice.Segment != SegmentVIP {
		t.Errorf("Expected segment VIP, got %q", alice.Segment)
	}
	if alice.TotalSales != 6200 {
		t.Errorf("Expected total sales 6200, got %v", alice.TotalSales)
	}
	if alice.TotalOrders != 2 {
		t.Errorf("Expected 2 orders, got %d", alice.TotalOrders)
	}
	if alice.TotalProducts != 2 {
		t.Errorf("Expected 2 distinct products, got %d", alice.TotalProducts)
	}
	if alice.RecencyMonths != 3 {
		t.Errorf("Expected recency 3 months, got %d", alice.RecencyMonths)
	}
	if alice.Age == nil || *alice.Age != 34 {
		t.Errorf("Expected age 34, got %v", alice.Age)
	}
	if alice.AgeGroup != "30-39" {
		t.Errorf("Expected age group 30-39, got %q", alice.AgeGroup)
	}
	if alice.AvgOrderValue != 3100 {
		t.Errorf("Expected avg order value 3100, got %v", alice.AvgOrderValue)
	}

	carol := reports[2]
	if carol.Segment != SegmentRegular {
		t.Errorf("Expected segment Regular, got %q", carol.Segment)
	}
	if carol.LifespanMonths != 12 {
		t.Errorf("Expected lifespan 12 months, got %d", carol.LifespanMonths)
	}
	if carol.AvgMonthlySpend != 100 {
		t.Errorf("Expected avg monthly spend 100, got %v", carol.AvgMonthlySpend)
	}
}

func TestCustomerReportsZeroOrders(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	reports := engine.CustomerReports(testDataset(), date(2024, 6, 1))

	bob := reports[1]
	if bob.CustomerKey != 2 {
		t.Fatalf("Expected customer key 2, got %d", bob.CustomerKey)
	}
	if bob.Segment != SegmentNew {
		t.Errorf("Expected segment New for customer without orders, got %q", bob.Segment)
	}
	if bob.TotalOrders != 0 || bob.TotalSales != 0 || bob.TotalQuantity != 0 {
		t.Errorf("Expected zeroed totals, got %+v", bob)
	}
	if bob.FirstOrderDate != nil || bob.LastOrderDate != nil {
		t.Error("Expected nil order dates for customer without orders")
	}
	if bob.AvgOrderValue != 0 || bob.AvgMonthlySpend != 0 {
		t.Errorf("Expected zeroed KPIs, got avg order %v, avg monthly %v",
			bob.AvgOrderValue, bob.AvgMonthlySpend)
	}
	// No birth date recorded
	if bob.Age != nil || bob.AgeGroup != AgeGroupUnknown {
		t.Errorf("Expected unknown age group, got %v / %q", bob.Age, bob.AgeGroup)
	}
}

func TestCustomerReportsSingleOrder(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	ds := &Dataset{
		Customers: []Customer{
			{CustomerKey: 1, CustomerID: "CU001", Name: "Dana Reed",
				CreateDate: date(2024, 1, 1)},
		},
		Products: []Product{
			{ProductKey: 10, ProductID: "PR010", Name: "Cap", Category: "Clothing"},
		},
		Facts: []SalesFact{
			{OrderNumber: "SO001", CustomerKey: 1, ProductKey: 10,
				OrderDate: datePtr(2024, 2, 10), SalesAmount: 100, Quantity: 1, Price: 100},
		},
	}

	reports := engine.CustomerReports(ds, date(2024, 6, 1))
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}

	r := reports[0]
	if r.LifespanMonths != 0 {
		t.Errorf("Expected lifespan 0 for single order, got %d", r.LifespanMonths)
	}
	if r.Segment != SegmentNew {
		t.Errorf("Expected segment New, got %q", r.Segment)
	}
	// Single-month activity reports the full spend as the monthly average
	if r.AvgMonthlySpend != 100 {
		t.Errorf("Expected avg monthly spend 100, got %v", r.AvgMonthlySpend)
	}
	if r.AvgOrderValue != 100 {
		t.Errorf("Expected avg order value 100, got %v", r.AvgOrderValue)
	}
}

func TestProductReportsExcludesInactive(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	reports := engine.ProductReports(testDataset(), date(2024, 6, 1))

	// Product 12 sold, 10 sold, 11 sold: all three have sales in testDataset
	if len(reports) != 3 {
		t.Fatalf("Expected 3 product reports, got %d", len(reports))
	}

	ds := testDataset()
	ds.Products = append(ds.Products, Product{
		ProductKey: 13, ProductID: "PR013", Name: "Unsold Helmet", Category: "Accessories",
	})
	reports = engine.ProductReports(ds, date(2024, 6, 1))
	for _, r := range reports {
		if r.ProductKey == 13 {
			t.Error("Product without sales should be excluded by default")
		}
	}
}

func TestProductReportsIncludeInactive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncludeInactive = true
	engine := NewEngine(cfg)

	ds := testDataset()
	ds.Products = append(ds.Products, Product{
		ProductKey: 13, ProductID: "PR013", Name: "Unsold Helmet", Category: "Accessories",
	})

	reports := engine.ProductReports(ds, date(2024, 6, 1))
	var found *ProductReport
	for i := range reports {
		if reports[i].ProductKey == 13 {
			found = &reports[i]
		}
	}
	if found == nil {
		t.Fatal("Expected inactive product in report with IncludeInactive")
	}
	if found.Segment != SegmentLowPerformer {
		t.Errorf("Expected Low-Performer for inactive product, got %q", found.Segment)
	}
	if found.TotalSales != 0 || found.TotalOrders != 0 {
		t.Errorf("Expected zeroed totals for inactive product, got %+v", found)
	}
}

func TestProductReportsKPIs(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	reports := engine.ProductReports(testDataset(), date(2024, 6, 1))

	var bottle *ProductReport
	for i := range reports {
		if reports[i].ProductKey == 11 {
			bottle = &reports[i]
		}
	}
	if bottle == nil {
		t.Fatal("Product 11 missing from report")
	}
	if bottle.TotalSales != 1200 {
		t.Errorf("Expected total sales 1200, got %v", bottle.TotalSales)
	}
	if bottle.TotalCustomers != 1 {
		t.Errorf("Expected 1 distinct customer, got %d", bottle.TotalCustomers)
	}
	if bottle.ProductLine != "Standard" {
		t.Errorf("Expected product line Standard, got %q", bottle.ProductLine)
	}
	if bottle.AvgSellingPrice != 100 {
		t.Errorf("Expected avg selling price 100, got %v", bottle.AvgSellingPrice)
	}
	if bottle.Segment != SegmentLowPerformer {
		t.Errorf("Expected Low-Performer at 1200 revenue, got %q", bottle.Segment)
	}
}

// avg_order_value * total_orders reproduces total_sales for every
// customer with at least one order.
func TestAvgOrderValueConsistency(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	reports := engine.CustomerReports(testDataset(), date(2024, 6, 1))

	for _, r := range reports {
		if r.TotalOrders == 0 {
			continue
		}
		got := r.AvgOrderValue * float64(r.TotalOrders)
		if math.Abs(got-r.TotalSales) > 1e-9 {
			t.Errorf("Customer %d: avg order value %v x %d orders = %v, want %v",
				r.CustomerKey, r.AvgOrderValue, r.TotalOrders, got, r.TotalSales)
		}
	}
}

func TestReportsDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	reference := date(2024, 6, 1)

	a := engine.CustomerReports(testDataset(), reference)
	b := engine.CustomerReports(testDataset(), reference)
	if len(a) != len(b) {
		t.Fatalf("Runs produced different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CustomerKey != b[i].CustomerKey || a[i].Segment != b[i].Segment ||
			a[i].TotalSales != b[i].TotalSales {
			t.Errorf("Row %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRecencyAgainstReferenceDate(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	near := engine.CustomerReports(testDataset(), date(2024, 3, 15))
	far := engine.CustomerReports(testDataset(), date(2025, 3, 15))

	if near[0].RecencyMonths != 0 {
		t.Errorf("Expected recency 0 at 2024-03-15, got %d", near[0].RecencyMonths)
	}
	if far[0].RecencyMonths != 12 {
		t.Errorf("Expected recency 12 at 2025-03-15, got %d", far[0].RecencyMonths)
	}
}
