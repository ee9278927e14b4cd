// cmd/forecast/seed.go
package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"
)

var seedStockItems = []struct {
	id       string
	name     string
	quantity float64
	minQty   float64
	unitCost float64
	supplier string
}{
	{"rice", "Beras", 25, 20, 2.00, "Syarikat Beras Jaya"},
	{"chicken", "Ayam", 8, 15, 6.50, "Ladang Ayam Segar"},
	{"oil", "Minyak Masak", 12, 10, 4.20, "Pemborong Dapur"},
	{"sugar", "Gula", 40, 10, 1.50, "Pemborong Dapur"},
	{"egg", "Telur", 60, 30, 0.35, ""},
}

func runSeed(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		return err
	}
	if err := seedInventory(db); err != nil {
		return err
	}
	return seedOrders(db, c.Int("days"))
}

func createTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			total NUMERIC(12,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT NOT NULL REFERENCES orders(id),
			item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity NUMERIC(12,2) NOT NULL,
			PRIMARY KEY (order_id, item_id)
		)`,
		`CREATE TABLE IF NOT EXISTS stock_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			current_quantity NUMERIC(12,2) NOT NULL,
			min_quantity NUMERIC(12,2) NOT NULL,
			unit_cost NUMERIC(12,2) NOT NULL,
			supplier_name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS inventory_logs (
			id BIGSERIAL PRIMARY KEY,
			stock_item_id TEXT NOT NULL REFERENCES stock_items(id),
			type TEXT NOT NULL,
			quantity NUMERIC(12,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}

func seedInventory(db *sql.DB) error {
	query := `
		INSERT INTO stock_items (id, name, current_quantity, min_quantity, unit_cost, supplier_name)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			current_quantity = EXCLUDED.current_quantity,
			min_quantity = EXCLUDED.min_quantity,
			unit_cost = EXCLUDED.unit_cost,
			supplier_name = EXCLUDED.supplier_name
	`
	for _, item := range seedStockItems {
		supplier := sql.NullString{}
		if item.supplier != "" {
			supplier = sql.NullString{String: item.supplier, Valid: true}
		}
		if _, err := db.Exec(query, item.id, item.name, item.quantity, item.minQty, item.unitCost, supplier); err != nil {
			return fmt.Errorf("failed to seed stock item %s: %w", item.id, err)
		}
	}
	return nil
}

func seedOrders(db *sql.DB, days int) error {
	if days <= 0 {
		days = 30
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	orderQuery := `
		INSERT INTO orders (id, status, created_at, total)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`
	itemQuery := `
		INSERT INTO order_items (order_id, item_id, name, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_id, item_id) DO NOTHING
	`
	logQuery := `
		INSERT INTO inventory_logs (stock_item_id, type, quantity, created_at)
		VALUES ($1, $2, $3, $4)
	`

	for d := days; d >= 1; d-- {
		day := now.AddDate(0, 0, -d)
		// Weekends run noticeably busier.
		orderCount := 8 + rng.Intn(5)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			orderCount += 6
		}

		for n := 0; n < orderCount; n++ {
			id := fmt.Sprintf("ord-%s-%03d", day.Format("20060102"), n)
			at := day.Add(time.Duration(10+rng.Intn(10)) * time.Hour)
			total := 8 + rng.Float64()*25

			if _, err := db.Exec(orderQuery, id, "completed", at, total); err != nil {
				return fmt.Errorf("failed to seed order %s: %w", id, err)
			}
			if _, err := db.Exec(itemQuery, id, "nasi-katok", "Nasi Katok", 1+rng.Intn(3)); err != nil {
				return fmt.Errorf("failed to seed order items for %s: %w", id, err)
			}
		}

		for _, item := range seedStockItems {
			usage := item.minQty * (0.3 + rng.Float64()*0.4)
			if _, err := db.Exec(logQuery, item.id, "out", usage, day.Add(20*time.Hour)); err != nil {
				return fmt.Errorf("failed to seed inventory log for %s: %w", item.id, err)
			}
		}
	}

	return nil
}
