package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoyaltyTier buckets a customer by cumulative spend. Tiers are totally
// ordered; Level exists so callers can compare them.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "bronze"
	TierSilver   LoyaltyTier = "silver"
	TierGold     LoyaltyTier = "gold"
	TierPlatinum LoyaltyTier = "platinum"
)

func (t LoyaltyTier) Level() int {
	switch t {
	case TierPlatinum:
		return 3
	case TierGold:
		return 2
	case TierSilver:
		return 1
	default:
		return 0
	}
}

// CustomerWithStats joins a user with their aggregated order history.
// Recomputed per view, never persisted.
type CustomerWithStats struct {
	User
	TotalOrders       int             `json:"totalOrders"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	CancellationCount int             `json:"cancellationCount"`
	Tier              LoyaltyTier     `json:"tier"`
}

type ProductWithStats struct {
	Product
	SalesCount int             `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type DashboardStats struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalOrders     int             `json:"totalOrders"`
	TotalProducts   int             `json:"totalProducts"`
	TotalUsers      int             `json:"totalUsers"`
	PendingOrders   int             `json:"pendingOrders"`
	DeliveredOrders int             `json:"deliveredOrders"`
	CancelledOrders int             `json:"cancelledOrders"`
	// ConversionRate is orders/users*100. Defined as 0 when there are no
	// users; never NaN or Inf.
	ConversionRate float64 `json:"conversionRate"`
}

type ActivityKind string

const (
	ActivityOrder    ActivityKind = "order"
	ActivityNewUser  ActivityKind = "new_user"
	ActivityLowStock ActivityKind = "low_stock"
)

// Activity is a synthesized feed entry, not an event log record.
type Activity struct {
	ID        string       `json:"id"`
	Kind      ActivityKind `json:"kind"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}
