package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"doctama-backoffice/internal/model"
)

// Dashboard computes the site-wide KPIs from one snapshot. Status
// comparisons are case-insensitive because the remote API is not
// consistent about casing.
func Dashboard(orders []model.Order, products []model.Product, users []model.User) model.DashboardStats {
	result := model.DashboardStats{
		TotalRevenue:  decimal.Zero,
		TotalOrders:   len(orders),
		TotalProducts: len(products),
		TotalUsers:    len(users),
	}

	for _, order := range orders {
		result.TotalRevenue = result.TotalRevenue.Add(order.TotalAmount)
		switch {
		case order.Status.Is(model.OrderPending):
			result.PendingOrders++
		case order.Status.Is(model.OrderDelivered):
			result.DeliveredOrders++
		case order.Status.Is(model.OrderCancelled):
			result.CancelledOrders++
		}
	}

	// Defined as 0 when there are no users. The alternative of inventing a
	// placeholder rate was a display hack in the old admin UI, not a rule.
	if result.TotalUsers > 0 {
		result.ConversionRate = float64(result.TotalOrders) / float64(result.TotalUsers) * 100
	}

	return result
}

// Trend is the percentage change from previous to current, 0 when there
// is no previous baseline. Never NaN or Inf.
func Trend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// FormatTrend renders a trend with an explicit sign, e.g. "+12.5%".
func FormatTrend(trend float64) string {
	return fmt.Sprintf("%+.1f%%", trend)
}
