package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/Toyz-Mini/abangbob-forecast/internal/forecast"
	"github.com/Toyz-Mini/abangbob-forecast/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct{ orders []domain.Order }

func (s *stubOrderRepo) ListCompletedOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	return s.orders, nil
}

type stubInventoryRepo struct {
	items []domain.StockItem
	logs  []domain.ConsumptionLog
}

func (s *stubInventoryRepo) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	return s.items, nil
}

func (s *stubInventoryRepo) ListConsumptionLogs(ctx context.Context, since time.Time) ([]domain.ConsumptionLog, error) {
	return s.logs, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := time.Now().UTC()
	orders := make([]domain.Order, 0, 10)
	for i := 1; i <= 10; i++ {
		orders = append(orders, domain.Order{
			ID:        fmt.Sprintf("o%d", i),
			Status:    "completed",
			CreatedAt: now.AddDate(0, 0, -i).Format(time.RFC3339),
			Total:     100,
		})
	}

	svc := service.NewForecastService(
		&stubOrderRepo{orders: orders},
		&stubInventoryRepo{
			items: []domain.StockItem{
				{ID: "rice", Name: "Beras", CurrentQuantity: 5, UnitCost: 2.00, Supplier: "Syarikat Beras"},
			},
			logs: []domain.ConsumptionLog{
				{StockItemID: "rice", Type: "out", Quantity: 300, CreatedAt: now.AddDate(0, 0, -2)},
			},
		},
		forecast.NewEngine(forecast.DefaultConfig()),
		nil,
		config.EngineConfig{HistoryDays: 90, Timezone: "UTC"},
	)

	return NewRouter(&Services{ForecastService: svc}, []string{"*"})
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetSummaryEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/summary", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data domain.ForecastSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Data.NextDayForecast)
	assert.NotEmpty(t, body.Data.Insights)
	assert.NotEmpty(t, body.Data.CriticalItems)
}

func TestGetSuggestionsEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/suggestions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data  []domain.StockSuggestion `json:"data"`
		Count int                      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "rice", body.Data[0].StockID)
}

func TestGetPurchaseDraftsEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/purchase-drafts", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestGetPurchaseDraftsEndpoint_InvalidTaxRate(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/forecast/purchase-drafts?tax_rate=bogus", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidateEndpoint(t *testing.T) {
	router := testRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/forecast/invalidate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
