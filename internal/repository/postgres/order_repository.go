// internal/repository/postgres/order_repository.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/lib/pq"
)

type orderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *orderRepository {
	return &orderRepository{db: db}
}

type orderRow struct {
	ID        string    `db:"id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	Total     float64   `db:"total"`
}

type orderItemRow struct {
	OrderID  string  `db:"order_id"`
	ItemID   string  `db:"item_id"`
	Name     string  `db:"name"`
	Quantity float64 `db:"quantity"`
}

func (r *orderRepository) ListCompletedOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	query := `
		SELECT id, status, created_at, total
		FROM orders
		WHERE status = 'completed' AND created_at >= $1
		ORDER BY created_at ASC
	`

	var rows []orderRow
	if err := r.db.SelectContext(ctx, &rows, query, since); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	orders := make([]domain.Order, 0, len(rows))
	index := make(map[string]int, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		index[row.ID] = len(orders)
		ids = append(ids, row.ID)
		orders = append(orders, domain.Order{
			ID:        row.ID,
			Status:    row.Status,
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
			Total:     row.Total,
		})
	}

	itemQuery := `
		SELECT order_id, item_id, name, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, item_id
	`

	var itemRows []orderItemRow
	if err := r.db.SelectContext(ctx, &itemRows, itemQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}

	for _, item := range itemRows {
		i, ok := index[item.OrderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, domain.OrderItem{
			ItemID:   item.ItemID,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	return orders, nil
}
