// internal/repository/postgres/inventory_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) *inventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	query := `
		SELECT id, name, current_quantity, min_quantity, unit_cost,
		       COALESCE(supplier_name, '') AS supplier_name
		FROM stock_items
		ORDER BY name ASC
	`

	var items []domain.StockItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list stock items: %w", err)
	}

	return items, nil
}

func (r *inventoryRepository) ListConsumptionLogs(ctx context.Context, since time.Time) ([]domain.ConsumptionLog, error) {
	query := `
		SELECT stock_item_id, type, quantity, created_at
		FROM inventory_logs
		WHERE created_at >= $1
		ORDER BY created_at ASC
	`

	var logs []domain.ConsumptionLog
	if err := r.db.SelectContext(ctx, &logs, query, since); err != nil {
		return nil, fmt.Errorf("failed to list inventory logs: %w", err)
	}

	return logs, nil
}
