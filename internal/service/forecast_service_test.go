package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/Toyz-Mini/abangbob-forecast/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders []domain.Order
	err    error
	calls  int
}

func (f *fakeOrderRepo) ListCompletedOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	f.calls++
	return f.orders, f.err
}

type fakeInventoryRepo struct {
	items []domain.StockItem
	logs  []domain.ConsumptionLog
	err   error
}

func (f *fakeInventoryRepo) ListStockItems(ctx context.Context) ([]domain.StockItem, error) {
	return f.items, f.err
}

func (f *fakeInventoryRepo) ListConsumptionLogs(ctx context.Context, since time.Time) ([]domain.ConsumptionLog, error) {
	return f.logs, f.err
}

// memoryCache records calls so tests can observe hit/miss behaviour.
type memoryCache struct {
	entries     map[string]domain.ForecastResult
	sets        int
	invalidated bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]domain.ForecastResult{}}
}

func (m *memoryCache) Get(ctx context.Context, inputHash string) (*domain.ForecastResult, bool, error) {
	result, ok := m.entries[inputHash]
	if !ok {
		return nil, false, nil
	}
	return &result, true, nil
}

func (m *memoryCache) Set(ctx context.Context, inputHash string, result domain.ForecastResult) error {
	m.sets++
	m.entries[inputHash] = result
	return nil
}

func (m *memoryCache) InvalidateAll(ctx context.Context) error {
	m.invalidated = true
	m.entries = map[string]domain.ForecastResult{}
	return nil
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		ConsumptionWindowDays: 30,
		LeadTimeDays:          3,
		SafetyStockFactor:     0.2,
		CoverageDays:          7,
		TrendUpThreshold:      5,
		TrendDownThreshold:    -5,
		HistoryDays:           90,
		Timezone:              "UTC",
	}
}

func recentOrders(days int) []domain.Order {
	now := time.Now().UTC()
	orders := make([]domain.Order, 0, days)
	for i := 1; i <= days; i++ {
		orders = append(orders, domain.Order{
			ID:        fmt.Sprintf("o%d", i),
			Status:    "completed",
			CreatedAt: now.AddDate(0, 0, -i).Format(time.RFC3339),
			Total:     100,
		})
	}
	return orders
}

func TestForecastService_GetForecast(t *testing.T) {
	orderRepo := &fakeOrderRepo{orders: recentOrders(10)}
	invRepo := &fakeInventoryRepo{
		items: []domain.StockItem{
			{ID: "rice", Name: "Beras", CurrentQuantity: 5, UnitCost: 2.00},
		},
		logs: []domain.ConsumptionLog{
			{StockItemID: "rice", Type: "out", Quantity: 300, CreatedAt: time.Now().UTC().AddDate(0, 0, -2)},
		},
	}

	svc := NewForecastService(orderRepo, invRepo, forecast.NewEngine(forecast.DefaultConfig()), newMemoryCache(), testEngineConfig())

	result, err := svc.GetForecast(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result.Summary.NextDayForecast)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "rice", result.Suggestions[0].StockID)
}

func TestForecastService_MemoizesIdenticalSnapshots(t *testing.T) {
	orderRepo := &fakeOrderRepo{orders: recentOrders(5)}
	invRepo := &fakeInventoryRepo{}
	mem := newMemoryCache()

	svc := NewForecastService(orderRepo, invRepo, forecast.NewEngine(forecast.DefaultConfig()), mem, testEngineConfig())

	first, err := svc.GetForecast(context.Background())
	require.NoError(t, err)
	second, err := svc.GetForecast(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, mem.sets, "identical snapshots must compute once")
	assert.Equal(t, 2, orderRepo.calls, "feeds are always re-read; only the engine run is memoized")
}

func TestForecastService_FeedErrorPropagates(t *testing.T) {
	orderRepo := &fakeOrderRepo{err: errors.New("connection refused")}
	svc := NewForecastService(orderRepo, &fakeInventoryRepo{}, forecast.NewEngine(forecast.DefaultConfig()), nil, testEngineConfig())

	_, err := svc.GetForecast(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load orders")
}

func TestForecastService_GetSuggestionsNeverNil(t *testing.T) {
	svc := NewForecastService(&fakeOrderRepo{}, &fakeInventoryRepo{}, forecast.NewEngine(forecast.DefaultConfig()), nil, testEngineConfig())

	suggestions, err := svc.GetSuggestions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestForecastService_Invalidate(t *testing.T) {
	mem := newMemoryCache()
	svc := NewForecastService(&fakeOrderRepo{}, &fakeInventoryRepo{}, forecast.NewEngine(forecast.DefaultConfig()), mem, testEngineConfig())

	require.NoError(t, svc.Invalidate(context.Background()))
	assert.True(t, mem.invalidated)
}
