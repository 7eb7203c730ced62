package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/listview"
	"doctama-backoffice/internal/model"
)

type OrderGateway interface {
	ListOrders(ctx context.Context) ([]model.Order, error)
	ListMyOrders(ctx context.Context, page, limit int) ([]model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	UpdateOrderPayment(ctx context.Context, id string, status model.PaymentStatus) (*model.Order, error)
}

// OrderView joins an order with its customer's display name.
type OrderView struct {
	model.Order
	CustomerName string `json:"customerName"`
}

type OrderPage struct {
	listview.Page[OrderView]
	Degraded []string
}

type OrderService interface {
	List(ctx context.Context, query dto.ListQuery) (*OrderPage, error)
	Get(ctx context.Context, id string) (*OrderView, error)
	MyOrders(ctx context.Context, page, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.Order, error)
	ApprovePayment(ctx context.Context, id string) (*model.Order, error)
	RejectPayment(ctx context.Context, id string) (*model.Order, error)
}

type orderServiceImpl struct {
	gateway OrderGateway
	logger  *zap.Logger
}

func NewOrderService(gw OrderGateway, logger *zap.Logger) OrderService {
	return &orderServiceImpl{gateway: gw, logger: logger}
}

func (s *orderServiceImpl) List(ctx context.Context, query dto.ListQuery) (*OrderPage, error) {
	query.Normalize()

	orders, err := s.gateway.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var degraded []string
	users, err := s.gateway.ListUsers(ctx)
	if err != nil {
		s.logger.Warn("user fetch failed, customer names degrade to guest", zap.Error(err))
		users = []model.User{}
		degraded = append(degraded, "users")
	}

	names := make(map[string]string, len(users))
	for i := range users {
		names[users[i].ID] = users[i].DisplayName()
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		name, ok := names[order.UserID]
		if !ok {
			name = model.GuestCustomerName
		}
		views = append(views, OrderView{Order: order, CustomerName: name})
	}

	filtered := listview.Filter(views,
		listview.TextSearch(query.Search,
			func(v OrderView) string { return v.OrderNumber },
			func(v OrderView) string { return v.CustomerName },
		),
		listview.Exact(query.Status, func(v OrderView) string { return string(v.Status) }),
	)

	if cmp, ok := orderSortKeys[query.SortBy]; ok {
		filtered = listview.SortBy(filtered, cmp, listview.Direction(query.Order))
	}

	page := listview.Paginate(filtered, query.Page, query.PageSize)
	return &OrderPage{Page: page, Degraded: degraded}, nil
}

var orderSortKeys = map[string]func(a, b OrderView) int{
	"date":     listview.TimeKey(func(v OrderView) time.Time { return v.OrderDate }),
	"total":    listview.DecimalKey(func(v OrderView) decimal.Decimal { return v.TotalAmount }),
	"number":   listview.StringKey(func(v OrderView) string { return v.OrderNumber }),
	"customer": listview.StringKey(func(v OrderView) string { return v.CustomerName }),
}

func (s *orderServiceImpl) Get(ctx context.Context, id string) (*OrderView, error) {
	order, err := s.gateway.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	view := OrderView{Order: *order, CustomerName: model.GuestCustomerName}
	if users, err := s.gateway.ListUsers(ctx); err == nil {
		for i := range users {
			if users[i].ID == order.UserID {
				view.CustomerName = users[i].DisplayName()
				break
			}
		}
	} else {
		s.logger.Warn("user fetch failed, order shows guest customer", zap.Error(err))
	}
	return &view, nil
}

func (s *orderServiceImpl) MyOrders(ctx context.Context, page, limit int) ([]model.Order, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.gateway.ListMyOrders(ctx, page, limit)
}

var validStatuses = []model.OrderStatus{
	model.OrderPending,
	model.OrderAwaitingPayment,
	model.OrderProcessing,
	model.OrderShipped,
	model.OrderDelivered,
	model.OrderCancelled,
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, id string, status string) (*model.Order, error) {
	target := model.OrderStatus(status)
	known := false
	for _, valid := range validStatuses {
		if target.Is(valid) {
			target = valid
			known = true
			break
		}
	}
	if !known {
		verr := newValidationError()
		verr.add("status", fmt.Sprintf("unknown order status %q", status))
		return nil, verr
	}
	return s.gateway.UpdateOrderStatus(ctx, id, target)
}

// ApprovePayment marks the order's payment as paid. Non-cash methods must
// carry a payment proof before approval; this mirrors the admin console's
// guard and the remote API enforces it again.
func (s *orderServiceImpl) ApprovePayment(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.gateway.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if order.PaymentMethod.RequiresProof() && order.PaymentProof == nil {
		verr := newValidationError()
		verr.add("paymentProof", "payment proof is required before approval")
		return nil, verr
	}

	return s.gateway.UpdateOrderPayment(ctx, id, model.PaymentPaid)
}

func (s *orderServiceImpl) RejectPayment(ctx context.Context, id string) (*model.Order, error) {
	return s.gateway.UpdateOrderPayment(ctx, id, model.PaymentFailed)
}
