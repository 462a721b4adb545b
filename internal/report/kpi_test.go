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
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", date(2023, 6, 15), date(2023, 6, 15), 0},
		{"same month different days", date(2023, 6, 1), date(2023, 6, 30), 0},
		{"adjacent days across month boundary", date(2023, 1, 31), date(2023, 2, 1), 1},
		{"fourteen months across a year", date(2023, 1, 1), date(2024, 3, 1), 14},
		{"exactly one year", date(2022, 5, 10), date(2023, 5, 10), 12},
		{"days ignored within month", date(2023, 1, 1), date(2023, 2, 28), 1},
		{"reversed dates clamp to zero", date(2024, 3, 1), date(2023, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthsBetween(tt.from, tt.to)
			if got != tt.want {
				t.Errorf("MonthsBetween(%v, %v) = %d, want %d",
					tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestAvgOrderValue(t *testing.T) {
	if got := AvgOrderValue(1000, 4); got != 250 {
		t.Errorf("Expected 250, got %v", got)
	}
	if got := AvgOrderValue(0, 0); got != 0 {
		t.Errorf("Expected 0 for no orders, got %v", got)
	}
	if got := AvgOrderValue(500, 0); got != 0 {
		t.Errorf("Expected 0 for no orders regardless of sales, got %v", got)
	}
}

func TestAvgMonthlySpend(t *testing.T) {
	tests := []struct {
		name           string
		totalSales     float64
		lifespanMonths int
		totalOrders    int
		want           float64
	}{
		{"normal case", 1200, 12, 5, 100},
		{"single month lifespan reports total", 800, 0, 3, 800},
		{"no orders reports zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AvgMonthlySpend(tt.totalSales, tt.lifespanMonths, tt.totalOrders)
			if got != tt.want {
				t.Errorf("AvgMonthlySpend(%v, %d, %d) = %v, want %v",
					tt.totalSales, tt.lifespanMonths, tt.totalOrders, got, tt.want)
			}
		})
	}
}

func TestAvgSellingPrice(t *testing.T) {
	if got := AvgSellingPrice(900, 3); got != 300 {
		t.Errorf("Expected 300, got %v", got)
	}
	if got := AvgSellingPrice(0, 0); got != 0 {
		t.Errorf("Expected 0 for no units, got %v", got)
	}
}

func TestAgeYears(t *testing.T) {
	ref := date(2024, 6, 15)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday already passed", date(1990, 3, 1), 34},
		{"birthday today", date(1990, 6, 15), 34},
		{"birthday later this year", date(1990, 11, 1), 33},
		{"birthday tomorrow", date(1990, 6, 16), 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AgeYears(tt.birth, ref)
			if got != tt.want {
				t.Errorf("AgeYears(%v, %v) = %d, want %d", tt.birth, ref, got, tt.want)
			}
		})
	}
}

func TestAgeGroup(t *testing.T) {
	cfg := DefaultConfig()

	intPtr := func(v int) *int { return &v }

	tests := []struct {
		name string
		age  *int
		want string
	}{
		{"nil age", nil, "unknown"},
		{"under first bound", intPtr(19), "under-20"},
		{"at first bound", intPtr(20), "20-29"},
		{"middle bucket", intPtr(35), "30-39"},
		{"just under last bound", intPtr(49), "40-49"},
		{"at last bound", intPtr(50), "50 and above"},
		{"above last bound", intPtr(73), "50 and above"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.AgeGroup(tt.age)
			if got != tt.want {
				t.Errorf("AgeGroup(%v) = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

func TestAgeGroupNoBuckets(t *testing.T) {
	cfg := Config{}
	age := 30
	if got := cfg.AgeGroup(&age); got != AgeGroupUnknown {
		t.Errorf("Expected %q without configured buckets, got %q", AgeGroupUnknown, got)
	}
}
