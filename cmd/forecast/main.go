// cmd/forecast/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/forecast"
	"github.com/Toyz-Mini/abangbob-forecast/internal/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "forecast",
		Usage: "Run the demand forecast engine from the command line",
		Commands: []*cli.Command{
			{
				Name:  "summary",
				Usage: "Run the engine over CSV feeds and print the result as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "orders",
						Usage:    "Path to the orders CSV feed",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "inventory",
						Usage:    "Path to the stock items CSV feed",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "consumption",
						Usage: "Path to the consumption logs CSV feed",
					},
					&cli.StringFlag{
						Name:  "as-of",
						Usage: "Evaluation date (YYYY-MM-DD), defaults to today",
					},
					&cli.BoolFlag{
						Name:  "export",
						Usage: "Archive the result to the configured object storage bucket",
					},
				},
				Action: runSummary,
			},
			{
				Name:  "seed",
				Usage: "Seed the database with demo orders and inventory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db-url",
						Usage:    "Database connection string",
						Required: true,
						EnvVars:  []string{"DATABASE_URL"},
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Days of order history to generate",
						Value: 30,
					},
				},
				Action: runSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSummary(c *cli.Context) error {
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Engine.Timezone)
	if err != nil {
		loc = time.UTC
	}

	now := time.Now().In(loc)
	if raw := c.String("as-of"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q: %w", raw, err)
		}
		now = day
	}

	orders, err := loadOrdersCSV(c.String("orders"))
	if err != nil {
		return err
	}
	inventory, err := loadStockItemsCSV(c.String("inventory"))
	if err != nil {
		return err
	}
	input := forecast.Input{
		Orders:    orders,
		Inventory: inventory,
		Now:       now,
		Location:  loc,
	}
	if path := c.String("consumption"); path != "" {
		logs, err := loadConsumptionCSV(path)
		if err != nil {
			return err
		}
		input.Consumption = logs
	}

	engine := forecast.NewEngine(forecast.Config{
		ConsumptionWindowDays: cfg.Engine.ConsumptionWindowDays,
		LeadTimeDays:          cfg.Engine.LeadTimeDays,
		SafetyStockFactor:     cfg.Engine.SafetyStockFactor,
		CoverageDays:          cfg.Engine.CoverageDays,
		TrendUpThreshold:      cfg.Engine.TrendUpThreshold,
		TrendDownThreshold:    cfg.Engine.TrendDownThreshold,
	})
	result := engine.Summarize(input)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))

	if c.Bool("export") {
		exporter, err := storage.NewSnapshotExporter(cfg.Storage)
		if err != nil {
			return fmt.Errorf("storage not configured: %w", err)
		}
		if err := exporter.UploadSummary(c.Context, now, result); err != nil {
			return err
		}
		if err := exporter.UploadSuggestionsCSV(c.Context, now, result.Suggestions); err != nil {
			return err
		}
	}
	return nil
}
