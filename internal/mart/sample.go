//-------------------------------------------------------------------------
//
// salesmart
//
// Copyright (c) 2025 - 2026, the salesmart authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package mart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesmart-io/salesmart/internal/datagen"
	"github.com/salesmart-io/salesmart/internal/logging"
)

// Reference data for sample products
var productCategories = map[string][]string{
	"Bikes":       {"Road Bikes", "Mountain Bikes", "Touring Bikes"},
	"Components":  {"Wheels", "Brakes", "Drivetrain", "Forks", "Handlebars"},
	"Clothing":    {"Jerseys", "Shorts", "Gloves", "Caps", "Socks"},
	"Accessories": {"Helmets", "Lights", "Locks", "Pumps", "Bottles"},
}

var categoryNames = []string{"Bikes", "Components", "Clothing", "Accessories"}
var categoryWeights = []int{15, 30, 30, 25}

var productLines = []string{"Road", "Mountain", "Touring", "Standard"}

// Generator produces sample mart data in the absence of source CSVs.
type Generator struct {
	faker *datagen.Faker
	cfg   datagen.BatchInsertConfig
}

// NewGenerator creates a sample data generator. A non-zero seed makes the
// generated dataset reproducible.
func NewGenerator(seed uint64) *Generator {
	faker := datagen.NewFaker()
	if seed != 0 {
		faker = datagen.NewFakerWithSeed(seed)
	}
	return &Generator{
		faker: faker,
		cfg:   datagen.DefaultBatchConfig(),
	}
}

// GenerateData populates the mart with numCustomers, numProducts and
// numOrders rows of plausible sales history and returns per-table counts.
func (g *Generator) GenerateData(ctx context.Context, pool *pgxpool.Pool, numCustomers, numProducts, numOrders int) (map[string]int64, error) {
	logging.Info().
		Int("customers", numCustomers).
		Int("products", numProducts).
		Int("orders", numOrders).
		Msg("Generating sample data")

	if err := g.generateCustomers(ctx, pool, numCustomers); err != nil {
		return nil, fmt.Errorf("failed to generate customers: %w", err)
	}
	if err := g.generateProducts(ctx, pool, numProducts); err != nil {
		return nil, fmt.Errorf("failed to generate products: %w", err)
	}
	lines, err := g.generateSales(ctx, pool, numOrders, numCustomers, numProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sales: %w", err)
	}

	return map[string]int64{
		"dim_customers": int64(numCustomers),
		"dim_products":  int64(numProducts),
		"fact_sales":    lines,
	}, nil
}

func (g *Generator) generateCustomers(ctx context.Context, pool *pgxpool.Pool, count int) error {
	logging.Info().Int("count", count).Msg("Generating customers")
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("dim_customers", int64(count), g.cfg.ProgressInterval)

	for i := 1; i <= count; i++ {
		name := datagen.Truncate(g.faker.FirstName()+" "+g.faker.LastName(), 100)

		// Birth date unknown for a slice of customers
		birthDate := "NULL"
		if g.faker.Int(1, 100) <= 85 {
			birthDate = fmt.Sprintf("'%s'", g.faker.DateRange(
				time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2006, 12, 31, 0, 0, 0, 0, time.UTC),
			).Format("2006-01-02"))
		}

		createDate := g.faker.DateRange(
			time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		batch = append(batch, fmt.Sprintf("(%d, 'CU%08d', '%s', %s, '%s')",
			i, 10000+i,
			datagen.EscapeSingleQuote(name),
			birthDate,
			createDate.Format("2006-01-02"),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := g.executeBatchInsert(ctx, pool, "dim_customers",
				"(customer_key, customer_id, name, birth_date, create_date)", batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.executeBatchInsert(ctx, pool, "dim_customers",
			"(customer_key, customer_id, name, birth_date, create_date)", batch); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}
	progress.Done()
	return nil
}

func (g *Generator) generateProducts(ctx context.Context, pool *pgxpool.Pool, count int) error {
	logging.Info().Int("count", count).Msg("Generating products")
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("dim_products", int64(count), g.cfg.ProgressInterval)

	for i := 1; i <= count; i++ {
		category := datagen.ChooseWeighted(g.faker, categoryNames, categoryWeights)
		subcategory := datagen.Choose(g.faker, productCategories[category])

		batch = append(batch, fmt.Sprintf("(%d, 'PR%06d', '%s', '%s', '%s', '%s', %.2f, '%s')",
			i, 1000+i,
			datagen.EscapeSingleQuote(datagen.Truncate(g.faker.ProductName(), 100)),
			category,
			subcategory,
			datagen.Choose(g.faker, productLines),
			g.faker.Price(5, 1800),
			g.faker.DateRange(
				time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
			).Format("2006-01-02"),
		))

		if len(batch) >= g.cfg.BatchSize {
			if err := g.executeBatchInsert(ctx, pool, "dim_products",
				"(product_key, product_id, name, category, subcategory, product_line, cost, start_date)", batch); err != nil {
				return err
			}
			progress.Update(int64(len(batch)))
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := g.executeBatchInsert(ctx, pool, "dim_products",
			"(product_key, product_id, name, category, subcategory, product_line, cost, start_date)", batch); err != nil {
			return err
		}
		progress.Update(int64(len(batch)))
	}
	progress.Done()
	return nil
}

func (g *Generator) generateSales(ctx context.Context, pool *pgxpool.Pool, numOrders, numCustomers, numProducts int) (int64, error) {
	logging.Info().Int("count", numOrders).Msg("Generating sales orders")
	batch := make([]string, 0, g.cfg.BatchSize)
	progress := datagen.NewProgressReporter("fact_sales", int64(numOrders), g.cfg.ProgressInterval)

	rangeStart := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	var lines int64
	for o := 1; o <= numOrders; o++ {
		customerKey := g.faker.Int(1, numCustomers)
		orderDate := g.faker.DateRange(rangeStart, rangeEnd)

		// A trickle of facts with an unknown order date
		orderDateSQL := fmt.Sprintf("'%s'", orderDate.Format("2006-01-02"))
		shippingSQL := fmt.Sprintf("'%s'", orderDate.AddDate(0, 0, g.faker.Int(2, 10)).Format("2006-01-02"))
		dueSQL := fmt.Sprintf("'%s'", orderDate.AddDate(0, 0, g.faker.Int(10, 20)).Format("2006-01-02"))
		if g.faker.Int(1, 1000) <= 5 {
			orderDateSQL = "NULL"
		}

		lineCount := g.faker.Int(1, 3)
		for l := 1; l <= lineCount; l++ {
			productKey := g.faker.Int(1, numProducts)
			quantity := g.faker.Int(1, 4)
			price := g.faker.Price(10, 2500)
			amount := price * float64(quantity)

			batch = append(batch, fmt.Sprintf("('SO%06d', %d, %d, %s, %s, %s, %.2f, %d, %.2f)",
				o, productKey, customerKey,
				orderDateSQL, shippingSQL, dueSQL,
				amount, quantity, price,
			))
			lines++

			if len(batch) >= g.cfg.BatchSize {
				if err := g.executeBatchInsert(ctx, pool, "fact_sales",
					"(order_number, product_key, customer_key, order_date, shipping_date, due_date, sales_amount, quantity, price)", batch); err != nil {
					return lines, err
				}
				batch = batch[:0]
			}
		}
		progress.Update(1)
	}

	if len(batch) > 0 {
		if err := g.executeBatchInsert(ctx, pool, "fact_sales",
			"(order_number, product_key, customer_key, order_date, shipping_date, due_date, sales_amount, quantity, price)", batch); err != nil {
			return lines, err
		}
	}
	progress.Done()
	return lines, nil
}

func (g *Generator) executeBatchInsert(ctx context.Context, pool *pgxpool.Pool, table, columns string, values []string) error {
	if len(values) == 0 {
		return nil
	}
	sql := fmt.Sprintf("INSERT INTO %s %s VALUES %s", table, columns, strings.Join(values, ", "))
	_, err := pool.Exec(ctx, sql)
	return err
}
