package stats

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"doctama-backoffice/internal/model"
)

const (
	activityFeedSize   = 5
	recentOrdersInFeed = 3
	recentUsersInFeed  = 2
)

// ActivityFeed synthesizes the dashboard's recent-activity list from the
// newest orders, the newest signups and any products running low on
// stock. It is a presentation aid, not an event log: entries are merged
// newest-first and capped, with no guarantee beyond that.
func ActivityFeed(orders []model.Order, users []model.User, products []model.Product) []model.Activity {
	feed := make([]model.Activity, 0, activityFeedSize)

	recentOrders := make([]model.Order, len(orders))
	copy(recentOrders, orders)
	sort.SliceStable(recentOrders, func(i, j int) bool {
		return recentOrders[i].OrderDate.After(recentOrders[j].OrderDate)
	})
	if len(recentOrders) > recentOrdersInFeed {
		recentOrders = recentOrders[:recentOrdersInFeed]
	}
	for _, order := range recentOrders {
		feed = append(feed, model.Activity{
			ID:        uuid.NewString(),
			Kind:      model.ActivityOrder,
			Message:   fmt.Sprintf("Order %s placed for %s", order.OrderNumber, order.TotalAmount.StringFixed(2)),
			Timestamp: order.OrderDate,
		})
	}

	recentUsers := make([]model.User, len(users))
	copy(recentUsers, users)
	sort.SliceStable(recentUsers, func(i, j int) bool {
		return recentUsers[i].CreatedAt.After(recentUsers[j].CreatedAt)
	})
	if len(recentUsers) > recentUsersInFeed {
		recentUsers = recentUsers[:recentUsersInFeed]
	}
	for _, user := range recentUsers {
		feed = append(feed, model.Activity{
			ID:        uuid.NewString(),
			Kind:      model.ActivityNewUser,
			Message:   fmt.Sprintf("%s registered", user.DisplayName()),
			Timestamp: user.CreatedAt,
		})
	}

	for _, product := range LowStock(products) {
		feed = append(feed, model.Activity{
			ID:        uuid.NewString(),
			Kind:      model.ActivityLowStock,
			Message:   fmt.Sprintf("%s is low on stock (%d left)", product.Name, product.StockQuantity),
			Timestamp: product.CreatedAt,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if len(feed) > activityFeedSize {
		feed = feed[:activityFeedSize]
	}
	return feed
}
