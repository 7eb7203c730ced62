// Package stats is the aggregation engine behind the admin dashboard and
// customer screens. Everything here is a pure function over collections
// already fetched from the remote API: no I/O, no clock, no mutation of
// inputs. Nil or empty inputs are treated as empty collections so callers
// can feed in degraded snapshots untouched.
package stats

import (
	"github.com/shopspring/decimal"

	"doctama-backoffice/internal/model"
)

var (
	tierPlatinum = decimal.NewFromInt(10000)
	tierGold     = decimal.NewFromInt(5000)
	tierSilver   = decimal.NewFromInt(1000)
)

// TierFor buckets cumulative spend into a loyalty tier. Boundaries are
// inclusive on the upper tier: exactly 10000 is platinum.
func TierFor(totalSpent decimal.Decimal) model.LoyaltyTier {
	switch {
	case totalSpent.GreaterThanOrEqual(tierPlatinum):
		return model.TierPlatinum
	case totalSpent.GreaterThanOrEqual(tierGold):
		return model.TierGold
	case totalSpent.GreaterThanOrEqual(tierSilver):
		return model.TierSilver
	default:
		return model.TierBronze
	}
}

// CustomerStats aggregates one customer's order history. TotalAmount on
// each order is authoritative: item subtotals are never recomputed here.
type CustomerStats struct {
	TotalOrders       int
	TotalSpent        decimal.Decimal
	AverageOrderValue decimal.Decimal
	CancellationCount int
	Tier              model.LoyaltyTier
}

func ComputeCustomerStats(orders []model.Order, userID string) CustomerStats {
	result := CustomerStats{
		TotalSpent:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}

	for _, order := range orders {
		if order.UserID != userID {
			continue
		}
		result.TotalOrders++
		result.TotalSpent = result.TotalSpent.Add(order.TotalAmount)
		if order.Status.Is(model.OrderCancelled) {
			result.CancellationCount++
		}
	}

	if result.TotalOrders > 0 {
		result.AverageOrderValue = result.TotalSpent.Div(decimal.NewFromInt(int64(result.TotalOrders)))
	}
	result.Tier = TierFor(result.TotalSpent)
	return result
}

// CustomersWithStats joins every user with their aggregated history,
// preserving the input user order.
func CustomersWithStats(users []model.User, orders []model.Order) []model.CustomerWithStats {
	customers := make([]model.CustomerWithStats, 0, len(users))
	for _, user := range users {
		agg := ComputeCustomerStats(orders, user.ID)
		customers = append(customers, model.CustomerWithStats{
			User:              user,
			TotalOrders:       agg.TotalOrders,
			TotalSpent:        agg.TotalSpent,
			AverageOrderValue: agg.AverageOrderValue,
			CancellationCount: agg.CancellationCount,
			Tier:              agg.Tier,
		})
	}
	return customers
}
