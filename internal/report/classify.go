//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

// ClassifyCustomer maps a customer's lifespan and total spend to exactly
// one segment. Rules are evaluated top-down; the first match wins:
//
//  1. lifespan >= VIPMinLifespanMonths and spend > VIPMinSpend -> VIP
//  2. lifespan >= VIPMinLifespanMonths                         -> Regular
//  3. otherwise                                                -> New
//
// A spend exactly at VIPMinSpend is Regular, not VIP.
func (c Config) ClassifyCustomer(lifespanMonths int, totalSpend float64) CustomerSegment {
	switch {
	case lifespanMonths >= c.VIPMinLifespanMonths && totalSpend > c.VIPMinSpend:
		return SegmentVIP
	case lifespanMonths >= c.VIPMinLifespanMonths:
		return SegmentRegular
	default:
		return SegmentNew
	}
}

// ClassifyProduct maps a product's total revenue to exactly one performance
// tier. Revenue exactly at ProductHighThreshold is Mid-Range; revenue
// exactly at ProductMidThreshold is Mid-Range.
func (c Config) ClassifyProduct(totalSales float64) ProductSegment {
	switch {
	case totalSales > c.ProductHighThreshold:
		return SegmentHighPerformer
	case totalSales >= c.ProductMidThreshold:
		return SegmentMidRange
	default:
		return SegmentLowPerformer
	}
}
