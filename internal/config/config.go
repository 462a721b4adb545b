//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesmart.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesmart.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Report holds configuration for the reporting engine.
	Report ReportConfig `mapstructure:"report"`
}

// InitConfig holds configuration for mart initialization.
type InitConfig struct {
	// CSVDir is a directory containing customers.csv, products.csv and
	// sales.csv. When empty, sample data is generated instead.
	CSVDir string `mapstructure:"csv_dir"`

	// Customers is the number of sample customers to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of sample products to generate.
	Products int `mapstructure:"products"`

	// Orders is the number of sample orders to generate.
	Orders int `mapstructure:"orders"`

	// Seed makes sample data generation reproducible (0 = random).
	Seed uint64 `mapstructure:"seed"`

	// DropExisting drops the existing schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`

	// Truncate keeps the schema but clears all mart rows before loading.
	Truncate bool `mapstructure:"truncate"`
}

// ReportConfig holds the segmentation thresholds and KPI settings for
// both the in-process engine and the installed report views.
type ReportConfig struct {
	// VIPMinLifespanMonths is the minimum lifespan for VIP/Regular customers.
	VIPMinLifespanMonths int `mapstructure:"vip_min_lifespan_months"`

	// VIPMinSpend is the spend a customer must exceed to be VIP.
	VIPMinSpend float64 `mapstructure:"vip_min_spend"`

	// ProductHighThreshold is the revenue a product must exceed to be
	// a High-Performer.
	ProductHighThreshold float64 `mapstructure:"product_high_threshold"`

	// ProductMidThreshold is the minimum revenue for Mid-Range products.
	ProductMidThreshold float64 `mapstructure:"product_mid_threshold"`

	// AgeBuckets are ascending exclusive upper bounds for customer age
	// groups (e.g., 20,30,40,50 yields under-20 ... 50 and above).
	AgeBuckets []int `mapstructure:"age_buckets"`

	// ReferenceDate anchors recency and age calculations (YYYY-MM-DD).
	// Empty means the current date.
	ReferenceDate string `mapstructure:"reference_date"`

	// IncludeInactive includes products with no recorded sales in the
	// product report. Customers with no orders are always included.
	IncludeInactive bool `mapstructure:"include_inactive"`

	// OutputDir is where exported report files are written.
	OutputDir string `mapstructure:"output_dir"`

	// Format is the report output format (table, json, csv).
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Init: InitConfig{
			Customers: 5000,
			Products:  300,
			Orders:    25000,
		},
		Report: ReportConfig{
			VIPMinLifespanMonths: 12,
			VIPMinSpend:          5000,
			ProductHighThreshold: 50000,
			ProductMidThreshold:  10000,
			AgeBuckets:           []int{20, 30, 40, 50},
			OutputDir:            "reports",
			Format:               "table",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesmart.yaml
// 3. ~/.config/salesmart/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("salesmart")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesmart"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateInit checks configuration required for the init command.
func (c *Config) ValidateInit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Init.DropExisting && c.Init.Truncate {
		return fmt.Errorf("drop-existing and truncate are mutually exclusive")
	}
	if c.Init.CSVDir == "" {
		if c.Init.Customers < 1 {
			return fmt.Errorf("sample customer count must be at least 1")
		}
		if c.Init.Products < 1 {
			return fmt.Errorf("sample product count must be at least 1")
		}
		if c.Init.Orders < 1 {
			return fmt.Errorf("sample order count must be at least 1")
		}
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	r := c.Report
	if r.VIPMinLifespanMonths < 0 {
		return fmt.Errorf("vip_min_lifespan_months must be non-negative")
	}
	if r.VIPMinSpend < 0 {
		return fmt.Errorf("vip_min_spend must be non-negative")
	}
	if r.ProductMidThreshold > r.ProductHighThreshold {
		return fmt.Errorf("product_mid_threshold must not exceed product_high_threshold")
	}
	if len(r.AgeBuckets) == 0 {
		return fmt.Errorf("at least one age bucket is required")
	}
	if !sort.IntsAreSorted(r.AgeBuckets) {
		return fmt.Errorf("age_buckets must be in ascending order")
	}
	if r.Format != "table" && r.Format != "json" && r.Format != "csv" {
		return fmt.Errorf("format must be 'table', 'json' or 'csv'")
	}
	if _, err := c.ReferenceTime(); err != nil {
		return err
	}
	return nil
}

// ReferenceTime parses the configured reference date, defaulting to the
// current date when unset.
func (c *Config) ReferenceTime() (time.Time, error) {
	if c.Report.ReferenceDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", c.Report.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference_date %q: %w", c.Report.ReferenceDate, err)
	}
	return t, nil
}
