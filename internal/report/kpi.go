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
	"fmt"
	"time"
)

// MonthsBetween returns the number of calendar month boundaries between
// from and to, clamped at zero. Days within the month are ignored, so
// 2023-01-31 to 2023-02-01 is one month.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if months < 0 {
		return 0
	}
	return months
}

// AvgOrderValue is total sales divided by order count, 0 for no orders.
func AvgOrderValue(totalSales float64, totalOrders int) float64 {
	if totalOrders == 0 {
		return 0
	}
	return totalSales / float64(totalOrders)
}

// AvgMonthlySpend is total sales divided by lifespan in months. An entity
// whose activity fits inside a single month reports its total sales; an
// entity with no orders reports 0.
func AvgMonthlySpend(totalSales float64, lifespanMonths, totalOrders int) float64 {
	if totalOrders == 0 {
		return 0
	}
	if lifespanMonths == 0 {
		return totalSales
	}
	return totalSales / float64(lifespanMonths)
}

// AvgSellingPrice is total sales divided by units sold, 0 for no units.
func AvgSellingPrice(totalSales float64, totalQuantity int) float64 {
	if totalQuantity == 0 {
		return 0
	}
	return totalSales / float64(totalQuantity)
}

// AgeYears returns completed years between birth and the reference date.
func AgeYears(birth, reference time.Time) int {
	years := reference.Year() - birth.Year()
	// Subtract one if the birthday hasn't occurred yet this year
	if reference.Month() < birth.Month() ||
		(reference.Month() == birth.Month() && reference.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// AgeGroup buckets an age using the configured ascending upper bounds.
// A nil age (unknown birth date) reports AgeGroupUnknown. With bounds
// 20,30,40,50 the groups are under-20, 20-29, 30-39, 40-49, 50 and above.
func (c Config) AgeGroup(age *int) string {
	if age == nil {
		return AgeGroupUnknown
	}
	if len(c.AgeBuckets) == 0 {
		return AgeGroupUnknown
	}
	if *age < c.AgeBuckets[0] {
		return fmt.Sprintf("under-%d", c.AgeBuckets[0])
	}
	for i := 1; i < len(c.AgeBuckets); i++ {
		if *age < c.AgeBuckets[i] {
			return fmt.Sprintf("%d-%d", c.AgeBuckets[i-1], c.AgeBuckets[i]-1)
		}
	}
	return fmt.Sprintf("%d and above", c.AgeBuckets[len(c.AgeBuckets)-1])
}
