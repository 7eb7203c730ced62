package stats

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doctama-backoffice/internal/model"
)

func TestDashboardCountsAndRevenue(t *testing.T) {
	orders := []model.Order{
		{TotalAmount: decimal.NewFromInt(100), Status: "Delivered"},
		{TotalAmount: decimal.NewFromInt(50), Status: "PENDING"},
		{TotalAmount: decimal.NewFromInt(25), Status: "cancelled"},
		{TotalAmount: decimal.NewFromInt(10), Status: "shipped"},
	}
	users := []model.User{{ID: "u1"}, {ID: "u2"}}

	got := Dashboard(orders, []model.Product{{ID: "p1"}}, users)

	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(185)))
	assert.Equal(t, 4, got.TotalOrders)
	assert.Equal(t, 1, got.TotalProducts)
	assert.Equal(t, 2, got.TotalUsers)
	assert.Equal(t, 1, got.PendingOrders)
	assert.Equal(t, 1, got.DeliveredOrders)
	assert.Equal(t, 1, got.CancelledOrders)
	assert.InDelta(t, 200.0, got.ConversionRate, 0.0001)
}

func TestDashboardWithNoUsersHasDefinedConversionRate(t *testing.T) {
	orders := []model.Order{{UserID: "u1", TotalAmount: decimal.NewFromInt(20)}}

	got := Dashboard(orders, nil, nil)

	assert.Equal(t, 0, got.TotalUsers)
	assert.Equal(t, 1, got.TotalOrders)
	assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, float64(0), got.ConversionRate)
	assert.False(t, math.IsNaN(got.ConversionRate))
	assert.False(t, math.IsInf(got.ConversionRate, 0))
}

func TestDashboardAllEmpty(t *testing.T) {
	got := Dashboard(nil, nil, nil)

	assert.True(t, got.TotalRevenue.IsZero())
	assert.Zero(t, got.TotalOrders)
	assert.Zero(t, got.ConversionRate)
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name              string
		current, previous float64
		want              float64
	}{
		{name: "growth", current: 150, previous: 100, want: 50},
		{name: "decline", current: 50, previous: 100, want: -50},
		{name: "flat", current: 100, previous: 100, want: 0},
		{name: "no baseline", current: 100, previous: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Trend(tt.current, tt.previous)
			assert.InDelta(t, tt.want, got, 0.0001)
			assert.False(t, math.IsNaN(got))
			assert.False(t, math.IsInf(got, 0))
		})
	}
}

func TestFormatTrendHasExplicitSign(t *testing.T) {
	assert.Equal(t, "+12.5%", FormatTrend(12.5))
	assert.Equal(t, "-3.0%", FormatTrend(-3))
	assert.Equal(t, "+0.0%", FormatTrend(0))
}

func TestActivityFeed(t *testing.T) {
	now := time.Now()
	orders := []model.Order{
		{OrderNumber: "ORD-1", TotalAmount: decimal.NewFromInt(100), OrderDate: now.Add(-1 * time.Hour)},
		{OrderNumber: "ORD-2", TotalAmount: decimal.NewFromInt(200), OrderDate: now.Add(-2 * time.Hour)},
	}
	users := []model.User{
		{ID: "u1", FullName: "Maria Santos", CreatedAt: now.Add(-30 * time.Minute)},
	}
	products := []model.Product{
		{ID: "p1", Name: "Walker", StockQuantity: 2, CreatedAt: now.Add(-48 * time.Hour)},
	}

	feed := ActivityFeed(orders, users, products)

	require.Len(t, feed, 4)
	// newest first
	assert.Equal(t, model.ActivityNewUser, feed[0].Kind)
	assert.Contains(t, feed[0].Message, "Maria Santos")
	assert.Equal(t, model.ActivityOrder, feed[1].Kind)
	assert.Contains(t, feed[1].Message, "ORD-1")
	assert.Equal(t, model.ActivityLowStock, feed[3].Kind)

	for i := range feed {
		assert.NotEmpty(t, feed[i].ID)
	}
}

func TestActivityFeedIsCapped(t *testing.T) {
	now := time.Now()
	var orders []model.Order
	for i := 0; i < 10; i++ {
		orders = append(orders, model.Order{OrderNumber: "ORD", OrderDate: now})
	}
	var users []model.User
	for i := 0; i < 10; i++ {
		users = append(users, model.User{CreatedAt: now})
	}
	products := []model.Product{
		{Name: "Cane", StockQuantity: 1, CreatedAt: now},
		{Name: "Crutch", StockQuantity: 2, CreatedAt: now},
	}

	feed := ActivityFeed(orders, users, products)

	assert.Len(t, feed, 5)
}

func TestActivityFeedToleratesEmptyInputs(t *testing.T) {
	assert.Empty(t, ActivityFeed(nil, nil, nil))
}
