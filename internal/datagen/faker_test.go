//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerName(t *testing.T) {
	f := NewFaker()
	if f.FirstName() == "" {
		t.Error("FirstName returned empty string")
	}
	if f.LastName() == "" {
		t.Error("LastName returned empty string")
	}
	if f.Name() == "" {
		t.Error("Name returned empty string")
	}
}

func TestFakerProduct(t *testing.T) {
	f := NewFaker()
	if f.ProductName() == "" {
		t.Error("ProductName returned empty string")
	}
	if f.ProductCategory() == "" {
		t.Error("ProductCategory returned empty string")
	}
}

func TestFakerPrice(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		p := f.Price(10, 100)
		if p < 10 || p > 100 {
			t.Errorf("Price %v out of range [10, 100]", p)
		}
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFaker()
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Errorf("Date %v out of range [%v, %v]", d, start, end)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int %d out of range [5, 10]", v)
		}
	}
}

func TestFakerDigits(t *testing.T) {
	f := NewFaker()
	d := f.Digits(8)
	if len(d) != 8 {
		t.Errorf("Expected 8 digits, got %d", len(d))
	}
	for _, c := range d {
		if c < '0' || c > '9' {
			t.Errorf("Non-digit character %q in %q", c, d)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(42)
	items := []string{"a", "b", "c"}

	for i := 0; i < 50; i++ {
		got := Choose(f, items)
		if got != "a" && got != "b" && got != "c" {
			t.Errorf("Choose returned unexpected value %q", got)
		}
	}

	if got := Choose(f, []string{}); got != "" {
		t.Errorf("Choose on empty slice should return zero value, got %q", got)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(42)
	items := []string{"common", "rare"}
	weights := []int{99, 1}

	counts := make(map[string]int)
	for i := 0; i < 1000; i++ {
		counts[ChooseWeighted(f, items, weights)]++
	}

	if counts["common"] < counts["rare"] {
		t.Errorf("Weighted choice ignored weights: %v", counts)
	}
	for k := range counts {
		if k != "common" && k != "rare" {
			t.Errorf("Unexpected value %q", k)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Expected 'hel', got %q", got)
	}
	if got := Truncate("hi", 10); got != "hi" {
		t.Errorf("Expected 'hi', got %q", got)
	}
}

func TestEscapeSingleQuote(t *testing.T) {
	if got := EscapeSingleQuote("O'Brien"); got != "O''Brien" {
		t.Errorf("Expected O''Brien, got %q", got)
	}
	if got := EscapeSingleQuote("plain"); got != "plain" {
		t.Errorf("Expected plain, got %q", got)
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("dim_customers", 100, 10)
	// Updates below and across the interval should not panic
	p.Update(5)
	p.Update(10)
	p.Update(85)
	p.Done()

	if p.currentRow != 100 {
		t.Errorf("Expected currentRow 100, got %d", p.currentRow)
	}
}

func TestDefaultBatchConfig(t *testing.T) {
	cfg := DefaultBatchConfig()
	if cfg.BatchSize != 1000 {
		t.Errorf("Expected BatchSize 1000, got %d", cfg.BatchSize)
	}
	if cfg.ProgressInterval != 10000 {
		t.Errorf("Expected ProgressInterval 10000, got %d", cfg.ProgressInterval)
	}
}
