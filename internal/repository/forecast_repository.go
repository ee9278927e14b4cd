// internal/repository/forecast_repository.go
package repository

import (
	"context"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
)

// OrderRepository feeds the sales side of the engine.
type OrderRepository interface {
	ListCompletedOrders(ctx context.Context, since time.Time) ([]domain.Order, error)
}

// InventoryRepository feeds the stock side of the engine.
type InventoryRepository interface {
	ListStockItems(ctx context.Context) ([]domain.StockItem, error)
	ListConsumptionLogs(ctx context.Context, since time.Time) ([]domain.ConsumptionLog, error)
}
