package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/listview"
	"doctama-backoffice/internal/model"
	"doctama-backoffice/internal/stats"
)

// CustomerGateway is the slice of the remote API the customer screens
// use.
type CustomerGateway interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, req gateway.UpdateUserRequest) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error
	ToggleUserStatus(ctx context.Context, id string) (*model.User, error)
}

type CustomerPage struct {
	listview.Page[model.CustomerWithStats]
	Degraded []string
}

type CustomerDetail struct {
	model.CustomerWithStats
	Orders []model.Order `json:"orders"`
}

type CustomerService interface {
	List(ctx context.Context, query dto.ListQuery) (*CustomerPage, error)
	Get(ctx context.Context, id string) (*CustomerDetail, error)
	Update(ctx context.Context, id string, req gateway.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
	ToggleStatus(ctx context.Context, id string) (*model.User, error)
}

type customerServiceImpl struct {
	gateway CustomerGateway
	logger  *zap.Logger
}

func NewCustomerService(gw CustomerGateway, logger *zap.Logger) CustomerService {
	return &customerServiceImpl{gateway: gw, logger: logger}
}

// loadUsersAndOrders fetches both collections concurrently. A failed user
// fetch is fatal for customer screens; a failed order fetch degrades to
// zero statistics.
func (s *customerServiceImpl) loadUsersAndOrders(ctx context.Context) (users []model.User, orders []model.Order, degraded []string, err error) {
	var wg sync.WaitGroup
	var usersErr, ordersErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		users, usersErr = s.gateway.ListUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		orders, ordersErr = s.gateway.ListOrders(ctx)
	}()
	wg.Wait()

	if usersErr != nil {
		return nil, nil, nil, fmt.Errorf("list users: %w", usersErr)
	}
	if ordersErr != nil {
		s.logger.Warn("order fetch failed, customer stats degrade to zero", zap.Error(ordersErr))
		orders = []model.Order{}
		degraded = append(degraded, "orders")
	}
	return users, orders, degraded, nil
}

func (s *customerServiceImpl) List(ctx context.Context, query dto.ListQuery) (*CustomerPage, error) {
	query.Normalize()

	users, orders, degraded, err := s.loadUsersAndOrders(ctx)
	if err != nil {
		return nil, err
	}

	customers := stats.CustomersWithStats(users, orders)

	filtered := listview.Filter(customers,
		listview.TextSearch(query.Search,
			func(c model.CustomerWithStats) string { return c.FullName },
			func(c model.CustomerWithStats) string { return c.Email },
		),
		statusPredicate(query.Status),
		rolePredicate(query.Role),
	)

	if cmp, ok := customerSortKeys[query.SortBy]; ok {
		filtered = listview.SortBy(filtered, cmp, listview.Direction(query.Order))
	}

	page := listview.Paginate(filtered, query.Page, query.PageSize)
	return &CustomerPage{Page: page, Degraded: degraded}, nil
}

var customerSortKeys = map[string]func(a, b model.CustomerWithStats) int{
	"name":   listview.StringKey(func(c model.CustomerWithStats) string { return c.FullName }),
	"email":  listview.StringKey(func(c model.CustomerWithStats) string { return c.Email }),
	"spent":  listview.DecimalKey(func(c model.CustomerWithStats) decimal.Decimal { return c.TotalSpent }),
	"orders": listview.NumberKey(func(c model.CustomerWithStats) float64 { return float64(c.TotalOrders) }),
	"joined": listview.TimeKey(func(c model.CustomerWithStats) time.Time { return c.CreatedAt }),
}

func statusPredicate(status string) listview.Predicate[model.CustomerWithStats] {
	return func(c model.CustomerWithStats) bool {
		switch status {
		case "active":
			return c.IsActive
		case "inactive":
			return !c.IsActive
		default:
			return true
		}
	}
}

func rolePredicate(role string) listview.Predicate[model.CustomerWithStats] {
	return func(c model.CustomerWithStats) bool {
		if role == "" {
			return true
		}
		return c.Roles.Has(role)
	}
}

func (s *customerServiceImpl) Get(ctx context.Context, id string) (*CustomerDetail, error) {
	user, err := s.gateway.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		s.logger.Warn("order fetch failed, customer detail degrades to zero stats", zap.Error(err))
		orders = []model.Order{}
	}

	history := make([]model.Order, 0)
	for _, order := range orders {
		if order.UserID == id {
			history = append(history, order)
		}
	}

	agg := stats.ComputeCustomerStats(orders, id)
	return &CustomerDetail{
		CustomerWithStats: model.CustomerWithStats{
			User:              *user,
			TotalOrders:       agg.TotalOrders,
			TotalSpent:        agg.TotalSpent,
			AverageOrderValue: agg.AverageOrderValue,
			CancellationCount: agg.CancellationCount,
			Tier:              agg.Tier,
		},
		Orders: history,
	}, nil
}

func (s *customerServiceImpl) Update(ctx context.Context, id string, req gateway.UpdateUserRequest) (*model.User, error) {
	verr := newValidationError()
	if req.Email == "" {
		verr.add("email", "email is required")
	}
	if req.FullName == "" {
		verr.add("fullName", "full name is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return s.gateway.UpdateUser(ctx, id, req)
}

func (s *customerServiceImpl) Delete(ctx context.Context, id string) error {
	return s.gateway.DeleteUser(ctx, id)
}

func (s *customerServiceImpl) ToggleStatus(ctx context.Context, id string) (*model.User, error) {
	return s.gateway.ToggleUserStatus(ctx, id)
}
