//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesmart-io/salesmart/internal/db"
	"github.com/salesmart-io/salesmart/internal/logging"
	"github.com/salesmart-io/salesmart/internal/mart"
)

var (
	initCSVDir       string
	initCustomers    int
	initProducts     int
	initOrders       int
	initSeed         uint64
	initDropExisting bool
	initTruncate     bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the mart schema and load data",
	Long: `Initialize the star schema (dim_customers, dim_products, fact_sales),
load it from CSV files or generated sample data, and install the
report_customers and report_products views.

Examples:
  salesmart init --csv-dir ./data --connection "postgres://..."
  salesmart init --customers 10000 --orders 50000 --seed 42`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initCSVDir, "csv-dir", "",
		"directory with customers.csv, products.csv and sales.csv (default: generate sample data)")
	initCmd.Flags().IntVar(&initCustomers, "customers", 0,
		"number of sample customers to generate")
	initCmd.Flags().IntVar(&initProducts, "products", 0,
		"number of sample products to generate")
	initCmd.Flags().IntVar(&initOrders, "orders", 0,
		"number of sample orders to generate")
	initCmd.Flags().Uint64Var(&initSeed, "seed", 0,
		"random seed for sample data (0 = random)")
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
	initCmd.Flags().BoolVar(&initTruncate, "truncate", false,
		"keep the schema but clear existing rows before loading")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initCSVDir != "" {
		cfg.Init.CSVDir = initCSVDir
	}
	if initCustomers > 0 {
		cfg.Init.Customers = initCustomers
	}
	if initProducts > 0 {
		cfg.Init.Products = initProducts
	}
	if initOrders > 0 {
		cfg.Init.Orders = initOrders
	}
	if initSeed != 0 {
		cfg.Init.Seed = initSeed
	}
	if initDropExisting {
		cfg.Init.DropExisting = true
	}
	if initTruncate {
		cfg.Init.Truncate = true
	}

	// Validate configuration, including the report thresholds the views
	// are generated from
	if err := cfg.ValidateInit(); err != nil {
		return err
	}
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to clobber an initialized mart unless asked to
	exists, err := db.MetadataExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to inspect database: %w", err)
	}
	if exists && !cfg.Init.DropExisting && !cfg.Init.Truncate {
		return fmt.Errorf("database is already initialized; use --drop-existing or --truncate to reinitialize")
	}

	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := mart.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := mart.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if cfg.Init.Truncate {
		logging.Info().Msg("Truncating existing data")
		if err := mart.TruncateData(ctx, pool); err != nil {
			return fmt.Errorf("failed to truncate data: %w", err)
		}
	}

	var counts map[string]int64
	var source string
	if cfg.Init.CSVDir != "" {
		source = "csv"
		logging.Info().
			Str("csv_dir", cfg.Init.CSVDir).
			Msg("Loading CSV data")
		counts, err = mart.LoadCSV(ctx, pool, cfg.Init.CSVDir)
		if err != nil {
			return fmt.Errorf("failed to load CSV data: %w", err)
		}
	} else {
		source = "sample"
		logging.Info().
			Int("customers", cfg.Init.Customers).
			Int("products", cfg.Init.Products).
			Int("orders", cfg.Init.Orders).
			Uint64("seed", cfg.Init.Seed).
			Msg("Generating sample data")
		gen := mart.NewGenerator(cfg.Init.Seed)
		counts, err = gen.GenerateData(ctx, pool,
			cfg.Init.Customers, cfg.Init.Products, cfg.Init.Orders)
		if err != nil {
			return fmt.Errorf("failed to generate sample data: %w", err)
		}
	}

	logging.Info().Msg("Installing report views")
	if err := mart.InstallReportViews(ctx, pool, engineConfig(cfg)); err != nil {
		return fmt.Errorf("failed to install report views: %w", err)
	}

	if err := db.SaveMetadata(ctx, pool, source, counts); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("source", source).
		Int64("customers", counts["dim_customers"]).
		Int64("products", counts["dim_products"]).
		Int64("sales", counts["fact_sales"]).
		Msg("Mart initialization complete")

	return nil
}
