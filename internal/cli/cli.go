//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesmart.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesmart-io/salesmart/internal/config"
	"github.com/salesmart-io/salesmart/internal/logging"
	"github.com/salesmart-io/salesmart/internal/report"
	"github.com/salesmart-io/salesmart/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesmart",
		Short: "Sales data mart with customer and product reporting",
		Long: `salesmart builds a star-schema sales mart in PostgreSQL, loads it
from CSV files or generated sample data, and derives customer and product
reports from it.

Customers are segmented into VIP, Regular and New based on lifespan and
total spend; products are tiered into High-Performer, Mid-Range and
Low-Performer based on total revenue. Reports are computed either by the
in-process engine or by SQL views installed in the database, both driven
by the same configurable thresholds.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesmart.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(segmentsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// engineConfig maps the report section of the loaded config onto the
// engine's threshold set.
func engineConfig(c *config.Config) report.Config {
	return report.Config{
		VIPMinLifespanMonths: c.Report.VIPMinLifespanMonths,
		VIPMinSpend:          c.Report.VIPMinSpend,
		ProductHighThreshold: c.Report.ProductHighThreshold,
		ProductMidThreshold:  c.Report.ProductMidThreshold,
		AgeBuckets:           c.Report.AgeBuckets,
		IncludeInactive:      c.Report.IncludeInactive,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var segmentsCmd = &cobra.Command{
	Use:   "segments",
	Short: "Show the configured segmentation rules",
	Long: `Show the customer segmentation and product tiering rules that the
reporting engine and the installed report views currently use. Thresholds
come from the config file and can be changed under the 'report' section.`,
	Run: func(cmd *cobra.Command, args []string) {
		r := cfg.Report
		cmd.Println("Customer segments (rules evaluated in order):")
		cmd.Printf("  VIP     - lifespan >= %d months AND total spend > %.2f\n",
			r.VIPMinLifespanMonths, r.VIPMinSpend)
		cmd.Printf("  Regular - lifespan >= %d months\n", r.VIPMinLifespanMonths)
		cmd.Println("  New     - everyone else (including customers with no orders)")
		cmd.Println()
		cmd.Println("Product tiers (rules evaluated in order):")
		cmd.Printf("  High-Performer - total sales > %.2f\n", r.ProductHighThreshold)
		cmd.Printf("  Mid-Range      - total sales >= %.2f\n", r.ProductMidThreshold)
		cmd.Println("  Low-Performer  - everything else")
		cmd.Println()
		cmd.Printf("Age groups: %s\n", describeAgeBuckets(r.AgeBuckets))
	},
}

func describeAgeBuckets(buckets []int) string {
	if len(buckets) == 0 {
		return "(none configured)"
	}
	out := fmt.Sprintf("under-%d", buckets[0])
	for i := 1; i < len(buckets); i++ {
		out += fmt.Sprintf(", %d-%d", buckets[i-1], buckets[i]-1)
	}
	out += fmt.Sprintf(", %d and above", buckets[len(buckets)-1])
	return out
}
