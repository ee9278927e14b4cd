// cmd/forecast/feeds.go
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

// Feed layouts:
//   orders.csv:      id,status,created_at,total
//   inventory.csv:   id,name,current_quantity,min_quantity,unit_cost,supplier
//   consumption.csv: stock_item_id,type,quantity,created_at

func loadOrdersCSV(path string) ([]domain.Order, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(rows))
	for i, row := range rows {
		total, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad total %q", path, i+2, row[3])
		}
		orders = append(orders, domain.Order{
			ID:        row[0],
			Status:    row[1],
			CreatedAt: row[2],
			Total:     total,
		})
	}
	return orders, nil
}

func loadStockItemsCSV(path string) ([]domain.StockItem, error) {
	rows, err := readCSV(path, 6)
	if err != nil {
		return nil, err
	}

	items := make([]domain.StockItem, 0, len(rows))
	for i, row := range rows {
		qty, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad quantity %q", path, i+2, row[2])
		}
		minQty, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad min quantity %q", path, i+2, row[3])
		}
		cost, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad unit cost %q", path, i+2, row[4])
		}
		items = append(items, domain.StockItem{
			ID:              row[0],
			Name:            row[1],
			CurrentQuantity: qty,
			MinQuantity:     minQty,
			UnitCost:        cost,
			Supplier:        row[5],
		})
	}
	return items, nil
}

func loadConsumptionCSV(path string) ([]domain.ConsumptionLog, error) {
	rows, err := readCSV(path, 4)
	if err != nil {
		return nil, err
	}

	logs := make([]domain.ConsumptionLog, 0, len(rows))
	for i, row := range rows {
		qty, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad quantity %q", path, i+2, row[2])
		}
		at, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad timestamp %q", path, i+2, row[3])
		}
		logs = append(logs, domain.ConsumptionLog{
			StockItemID: row[0],
			Type:        row[1],
			Quantity:    qty,
			CreatedAt:   at,
		})
	}
	return logs, nil
}

// readCSV reads path, skips the header row, and enforces a minimum column
// count per record.
func readCSV(path string, minColumns int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if header {
			header = false
			continue
		}
		if len(record) < minColumns {
			return nil, fmt.Errorf("%s: expected at least %d columns, got %d", path, minColumns, len(record))
		}
		rows = append(rows, record)
	}
	return rows, nil
}
