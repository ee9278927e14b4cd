package forecast

import (
	"testing"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSalesHistory_GroupsByLocalDay(t *testing.T) {
	orders := []domain.Order{
		{ID: "o1", Status: "completed", CreatedAt: "2024-01-06T09:15:00Z", Total: 25.50, Items: []domain.OrderItem{
			{ItemID: "i1", Name: "Nasi Katok", Quantity: 2},
		}},
		{ID: "o2", Status: "completed", CreatedAt: "2024-01-06T19:40:00Z", Total: 14.50, Items: []domain.OrderItem{
			{ItemID: "i1", Name: "Nasi Katok", Quantity: 1},
			{ItemID: "i2", Name: "Teh Tarik", Quantity: 3},
		}},
		{ID: "o3", Status: "completed", CreatedAt: "2024-01-07T12:00:00Z", Total: 40},
	}

	points, diags := AggregateSalesHistory(orders, time.UTC)
	require.Empty(t, diags)
	require.Len(t, points, 2)

	sat := points[0]
	assert.Equal(t, "2024-01-06", sat.Date)
	assert.Equal(t, int(time.Saturday), sat.DayOfWeek)
	assert.Equal(t, 40.0, sat.Revenue)
	assert.Equal(t, 2, sat.OrderCount)
	require.Len(t, sat.LineItems, 2)
	assert.Equal(t, "i1", sat.LineItems[0].ItemID)
	assert.Equal(t, 3.0, sat.LineItems[0].Quantity)
	assert.Equal(t, "i2", sat.LineItems[1].ItemID)

	sun := points[1]
	assert.Equal(t, "2024-01-07", sun.Date)
	assert.Equal(t, int(time.Sunday), sun.DayOfWeek)
	assert.Equal(t, 1, sun.OrderCount)
}

func TestAggregateSalesHistory_MalformedTimestampIsDiagnosticNotFatal(t *testing.T) {
	orders := []domain.Order{
		{ID: "bad", Status: "completed", CreatedAt: "not-a-date", Total: 10},
		{ID: "good", Status: "completed", CreatedAt: "2024-01-06T09:00:00Z", Total: 20},
	}

	points, diags := AggregateSalesHistory(orders, time.UTC)
	require.Len(t, points, 1)
	assert.Equal(t, 20.0, points[0].Revenue)

	require.Len(t, diags, 1)
	assert.Equal(t, domain.DiagMalformedRecord, diags[0].Code)
	assert.Equal(t, "bad", diags[0].RecordID)
}

func TestAggregateSalesHistory_KeepsZeroAndNegativeTotals(t *testing.T) {
	orders := []domain.Order{
		{ID: "o1", Status: "completed", CreatedAt: "2024-01-06T09:00:00Z", Total: 0},
		{ID: "o2", Status: "completed", CreatedAt: "2024-01-06T10:00:00Z", Total: -5},
		{ID: "o3", Status: "completed", CreatedAt: "2024-01-06T11:00:00Z", Total: 30},
	}

	points, diags := AggregateSalesHistory(orders, time.UTC)
	require.Empty(t, diags)
	require.Len(t, points, 1)
	assert.Equal(t, 25.0, points[0].Revenue)
	assert.Equal(t, 3, points[0].OrderCount)
}

func TestAggregateSalesHistory_SkipsNonCompletedOrders(t *testing.T) {
	orders := []domain.Order{
		{ID: "o1", Status: "cancelled", CreatedAt: "2024-01-06T09:00:00Z", Total: 99},
		{ID: "o2", Status: "completed", CreatedAt: "2024-01-06T10:00:00Z", Total: 10},
	}

	points, _ := AggregateSalesHistory(orders, time.UTC)
	require.Len(t, points, 1)
	assert.Equal(t, 10.0, points[0].Revenue)
	assert.Equal(t, 1, points[0].OrderCount)
}

func TestAggregateSalesHistory_AcceptsPlainDateLayout(t *testing.T) {
	orders := []domain.Order{
		{ID: "o1", Status: "completed", CreatedAt: "2024-01-06", Total: 12},
	}

	points, diags := AggregateSalesHistory(orders, time.UTC)
	require.Empty(t, diags)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-06", points[0].Date)
}
