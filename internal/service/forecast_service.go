// internal/service/forecast_service.go
package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/cache"
	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/Toyz-Mini/abangbob-forecast/internal/forecast"
	"github.com/Toyz-Mini/abangbob-forecast/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultHistoryDays = 90

// ForecastService loads the order and inventory feeds, runs the engine over
// the combined snapshot, and memoizes the result by a content hash of the
// snapshot so repeated dashboard polls never recompute.
type ForecastService struct {
	orders      repository.OrderRepository
	inventory   repository.InventoryRepository
	engine      *forecast.Engine
	cache       cache.ForecastCache
	historyDays int
	location    *time.Location
}

func NewForecastService(
	orders repository.OrderRepository,
	inventory repository.InventoryRepository,
	engine *forecast.Engine,
	cacheImpl cache.ForecastCache,
	cfg config.EngineConfig,
) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}

	historyDays := cfg.HistoryDays
	if historyDays <= 0 {
		historyDays = defaultHistoryDays
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", cfg.Timezone).Msg("forecast: invalid timezone, using UTC")
		loc = time.UTC
	}

	return &ForecastService{
		orders:      orders,
		inventory:   inventory,
		engine:      engine,
		cache:       cacheImpl,
		historyDays: historyDays,
		location:    loc,
	}
}

// GetForecast returns the full engine output for the current snapshot.
func (s *ForecastService) GetForecast(ctx context.Context) (*domain.ForecastResult, error) {
	// Truncate to the local day so every poll within the same day builds the
	// same cache key for an unchanged snapshot.
	now := time.Now().In(s.location)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	input, err := s.loadInput(ctx, now, day)
	if err != nil {
		return nil, err
	}

	hash, err := snapshotHash(input, day)
	if err != nil {
		log.Warn().Err(err).Msg("forecast: snapshot hash failed, skipping cache")
		result := s.engine.Summarize(input)
		return &result, nil
	}

	if cached, ok, err := s.cache.Get(ctx, hash); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast: cache get failed")
	}

	result := s.engine.Summarize(input)

	if err := s.cache.Set(ctx, hash, result); err != nil {
		log.Warn().Err(err).Msg("forecast: cache set failed")
	}

	return &result, nil
}

// GetSummary returns only the dashboard summary facet.
func (s *ForecastService) GetSummary(ctx context.Context) (*domain.ForecastSummary, error) {
	result, err := s.GetForecast(ctx)
	if err != nil {
		return nil, err
	}
	return &result.Summary, nil
}

// GetSuggestions returns only the reorder suggestions facet.
func (s *ForecastService) GetSuggestions(ctx context.Context) ([]domain.StockSuggestion, error) {
	result, err := s.GetForecast(ctx)
	if err != nil {
		return nil, err
	}
	if result.Suggestions == nil {
		return []domain.StockSuggestion{}, nil
	}
	return result.Suggestions, nil
}

// Invalidate drops every memoized forecast, forcing the next poll to
// recompute from live feeds.
func (s *ForecastService) Invalidate(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

func (s *ForecastService) loadInput(ctx context.Context, now, day time.Time) (forecast.Input, error) {
	since := day.AddDate(0, 0, -s.historyDays)
	consumptionSince := day.AddDate(0, 0, -s.engine.Config().ConsumptionWindowDays)

	var (
		orders      []domain.Order
		items       []domain.StockItem
		consumption []domain.ConsumptionLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListCompletedOrders(gctx, since)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		items, err = s.inventory.ListStockItems(gctx)
		if err != nil {
			return fmt.Errorf("load stock items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		consumption, err = s.inventory.ListConsumptionLogs(gctx, consumptionSince)
		if err != nil {
			return fmt.Errorf("load consumption logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return forecast.Input{}, err
	}

	return forecast.Input{
		Orders:      orders,
		Inventory:   items,
		Consumption: consumption,
		Now:         now,
		Location:    s.location,
	}, nil
}

type snapshot struct {
	Day         string                  `json:"day"`
	Orders      []domain.Order          `json:"orders"`
	Inventory   []domain.StockItem      `json:"inventory"`
	Consumption []domain.ConsumptionLog `json:"consumption"`
}

func snapshotHash(in forecast.Input, day time.Time) (string, error) {
	raw, err := json.Marshal(snapshot{
		Day:         day.Format("2006-01-02"),
		Orders:      in.Orders,
		Inventory:   in.Inventory,
		Consumption: in.Consumption,
	})
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:]), nil
}
