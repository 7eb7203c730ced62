package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"doctama-backoffice/internal/fetch"
	"doctama-backoffice/internal/model"
	"doctama-backoffice/internal/stats"
)

// trendWindow is the period compared against the one before it for the
// dashboard's delta badges.
const trendWindow = 30 * 24 * time.Hour

const topProductCount = 5

type DashboardOverview struct {
	Stats          model.DashboardStats      `json:"stats"`
	TopProducts    []model.ProductWithStats  `json:"topProducts"`
	RecentActivity []model.Activity          `json:"recentActivity"`
	RevenueTrend   string                    `json:"revenueTrend"`
	OrdersTrend    string                    `json:"ordersTrend"`
	Degraded       []string                  `json:"degraded,omitempty"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*DashboardOverview, error)
}

type dashboardServiceImpl struct {
	fetcher *fetch.Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

func NewDashboardService(fetcher *fetch.Fetcher, logger *zap.Logger) DashboardService {
	return &dashboardServiceImpl{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Overview recomputes every dashboard figure from a fresh snapshot of
// the three collections. A degraded snapshot still renders: whatever
// failed contributes zeros and is named in Degraded for the banner.
func (s *dashboardServiceImpl) Overview(ctx context.Context) (*DashboardOverview, error) {
	snap := s.fetcher.Snapshot(ctx)
	if !snap.Complete() {
		s.logger.Warn("dashboard rendering from degraded snapshot",
			zap.Strings("degraded", snap.Degraded),
		)
	}

	kpis := stats.Dashboard(snap.Orders, snap.Products, snap.Users)
	sales := stats.ProductSales(snap.Products, snap.Orders)

	now := s.now()
	currentRevenue, currentCount := periodTotals(snap.Orders, now.Add(-trendWindow), now)
	previousRevenue, previousCount := periodTotals(snap.Orders, now.Add(-2*trendWindow), now.Add(-trendWindow))

	return &DashboardOverview{
		Stats:          kpis,
		TopProducts:    stats.TopSelling(sales, topProductCount),
		RecentActivity: stats.ActivityFeed(snap.Orders, snap.Users, snap.Products),
		RevenueTrend:   stats.FormatTrend(stats.Trend(currentRevenue, previousRevenue)),
		OrdersTrend:    stats.FormatTrend(stats.Trend(float64(currentCount), float64(previousCount))),
		Degraded:       snap.Degraded,
	}, nil
}

// periodTotals sums revenue and order count inside [from, to).
func periodTotals(orders []model.Order, from, to time.Time) (revenue float64, count int) {
	for _, order := range orders {
		if order.OrderDate.Before(from) || !order.OrderDate.Before(to) {
			continue
		}
		amount, _ := order.TotalAmount.Float64()
		revenue += amount
		count++
	}
	return revenue, count
}
