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
	"time"

	"github.com/salesmart-io/salesmart/internal/logging"
)

// Aggregate holds the per-entity totals produced by the aggregation stage.
// DistinctCounterparts is distinct products for a customer aggregate and
// distinct customers for a product aggregate.
type Aggregate struct {
	Key                  int
	TotalSales           float64
	TotalQuantity        int
	TotalOrders          int
	DistinctCounterparts int
	FirstOrderDate       *time.Time
	LastOrderDate        *time.Time
}

type accumulator struct {
	agg          Aggregate
	orders       map[string]struct{}
	counterparts map[int]struct{}
}

// AggregateByCustomer folds the fact rows into one Aggregate per customer
// key. Facts referencing a key absent from validKeys are skipped; facts
// without an order date contribute to totals but not to first/last dates.
func AggregateByCustomer(facts []SalesFact, validKeys map[int]bool) map[int]Aggregate {
	return aggregate(facts, validKeys,
		func(f SalesFact) int { return f.CustomerKey },
		func(f SalesFact) int { return f.ProductKey },
	)
}

// AggregateByProduct folds the fact rows into one Aggregate per product key.
func AggregateByProduct(facts []SalesFact, validKeys map[int]bool) map[int]Aggregate {
	return aggregate(facts, validKeys,
		func(f SalesFact) int { return f.ProductKey },
		func(f SalesFact) int { return f.CustomerKey },
	)
}

func aggregate(facts []SalesFact, validKeys map[int]bool, keyOf, counterpartOf func(SalesFact) int) map[int]Aggregate {
	accs := make(map[int]*accumulator)
	var skipped int

	for _, f := range facts {
		key := keyOf(f)
		if !validKeys[key] {
			skipped++
			continue
		}

		acc, ok := accs[key]
		if !ok {
			acc = &accumulator{
				agg:          Aggregate{Key: key},
				orders:       make(map[string]struct{}),
				counterparts: make(map[int]struct{}),
			}
			accs[key] = acc
		}

		acc.agg.TotalSales += f.SalesAmount
		acc.agg.TotalQuantity += f.Quantity
		acc.orders[f.OrderNumber] = struct{}{}
		acc.counterparts[counterpartOf(f)] = struct{}{}

		if f.OrderDate != nil {
			d := *f.OrderDate
			if acc.agg.FirstOrderDate == nil || d.Before(*acc.agg.FirstOrderDate) {
				acc.agg.FirstOrderDate = &d
			}
			if acc.agg.LastOrderDate == nil || d.After(*acc.agg.LastOrderDate) {
				acc.agg.LastOrderDate = &d
			}
		}
	}

	if skipped > 0 {
		logging.Debug().
			Int("skipped", skipped).
			Msg("Excluded fact rows with unmatched dimension keys")
	}

	out := make(map[int]Aggregate, len(accs))
	for key, acc := range accs {
		acc.agg.TotalOrders = len(acc.orders)
		acc.agg.DistinctCounterparts = len(acc.counterparts)
		out[key] = acc.agg
	}
	return out
}
