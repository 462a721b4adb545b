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
	"sort"
	"time"
)

// Engine computes the customer and product reports. It holds only the
// configured thresholds; every computation is a pure function of its
// inputs and the reference date, so an Engine is safe for concurrent use
// and the two reports may be built in parallel.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the given thresholds.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's thresholds.
func (e *Engine) Config() Config {
	return e.cfg
}

// CustomerReports builds the customer report from the dataset, ordered by
// customer key. Customers without any matched order appear with segment
// New and zeroed KPIs. Recency and age are computed against reference.
func (e *Engine) CustomerReports(ds *Dataset, reference time.Time) []CustomerReport {
	valid := make(map[int]bool, len(ds.Customers))
	for _, c := range ds.Customers {
		valid[c.CustomerKey] = true
	}
	aggs := AggregateByCustomer(ds.Facts, valid)

	customers := make([]Customer, len(ds.Customers))
	copy(customers, ds.Customers)
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].CustomerKey < customers[j].CustomerKey
	})

	reports := make([]CustomerReport, 0, len(customers))
	for _, c := range customers {
		agg := aggs[c.CustomerKey]

		var lifespan, recency int
		if agg.FirstOrderDate != nil {
			lifespan = MonthsBetween(*agg.FirstOrderDate, *agg.LastOrderDate)
			recency = MonthsBetween(*agg.LastOrderDate, reference)
		}

		var age *int
		if c.BirthDate != nil {
			a := AgeYears(*c.BirthDate, reference)
			age = &a
		}

		reports = append(reports, CustomerReport{
			CustomerKey:     c.CustomerKey,
			CustomerID:      c.CustomerID,
			Name:            c.Name,
			Age:             age,
			AgeGroup:        e.cfg.AgeGroup(age),
			Segment:         e.cfg.ClassifyCustomer(lifespan, agg.TotalSales),
			FirstOrderDate:  agg.FirstOrderDate,
			LastOrderDate:   agg.LastOrderDate,
			TotalOrders:     agg.TotalOrders,
			TotalSales:      agg.TotalSales,
			TotalQuantity:   agg.TotalQuantity,
			TotalProducts:   agg.DistinctCounterparts,
			LifespanMonths:  lifespan,
			RecencyMonths:   recency,
			AvgOrderValue:   AvgOrderValue(agg.TotalSales, agg.TotalOrders),
			AvgMonthlySpend: AvgMonthlySpend(agg.TotalSales, lifespan, agg.TotalOrders),
		})
	}
	return reports
}

// ProductReports builds the product report from the dataset, ordered by
// product key. Products without any matched sale are excluded unless
// IncludeInactive is set, in which case they appear as Low-Performer with
// zeroed KPIs.
func (e *Engine) ProductReports(ds *Dataset, reference time.Time) []ProductReport {
	valid := make(map[int]bool, len(ds.Products))
	for _, p := range ds.Products {
		valid[p.ProductKey] = true
	}
	aggs := AggregateByProduct(ds.Facts, valid)

	products := make([]Product, len(ds.Products))
	copy(products, ds.Products)
	sort.Slice(products, func(i, j int) bool {
		return products[i].ProductKey < products[j].ProductKey
	})

	reports := make([]ProductReport, 0, len(products))
	for _, p := range products {
		agg, active := aggs[p.ProductKey]
		if !active && !e.cfg.IncludeInactive {
			continue
		}

		var lifespan, recency int
		if agg.FirstOrderDate != nil {
			lifespan = MonthsBetween(*agg.FirstOrderDate, *agg.LastOrderDate)
			recency = MonthsBetween(*agg.LastOrderDate, reference)
		}

		reports = append(reports, ProductReport{
			ProductKey:        p.ProductKey,
			ProductID:         p.ProductID,
			Name:              p.Name,
			Category:          p.Category,
			Subcategory:       p.Subcategory,
			ProductLine:       p.ProductLine,
			Cost:              p.Cost,
			Segment:           e.cfg.ClassifyProduct(agg.TotalSales),
			FirstOrderDate:    agg.FirstOrderDate,
			LastOrderDate:     agg.LastOrderDate,
			TotalOrders:       agg.TotalOrders,
			TotalSales:        agg.TotalSales,
			TotalQuantity:     agg.TotalQuantity,
			TotalCustomers:    agg.DistinctCounterparts,
			LifespanMonths:    lifespan,
			RecencyMonths:     recency,
			AvgSellingPrice:   AvgSellingPrice(agg.TotalSales, agg.TotalQuantity),
			AvgOrderRevenue:   AvgOrderValue(agg.TotalSales, agg.TotalOrders),
			AvgMonthlyRevenue: AvgMonthlySpend(agg.TotalSales, lifespan, agg.TotalOrders),
		})
	}
	return reports
}
