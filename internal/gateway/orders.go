package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"doctama-backoffice/internal/model"
)

// ListOrders returns every order in the store. Admin only.
func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	return fetchList[model.Order](ctx, c, "/orders")
}

// ListMyOrders pages through the authenticated customer's own orders.
func (c *Client) ListMyOrders(ctx context.Context, page, limit int) ([]model.Order, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("limit", fmt.Sprintf("%d", limit))
	return fetchList[model.Order](ctx, c, "/orders/my-orders?"+query.Encode())
}

func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrderRequest is the checkout submission payload. Item snapshots
// (name, unit price) are fixed here and never re-priced afterwards.
type CreateOrderRequest struct {
	Items         []model.OrderItem   `json:"items"`
	TotalAmount   string              `json:"totalAmount"`
	PaymentMethod model.PaymentMethod `json:"paymentMethod"`
	ShippingInfo  model.ShippingInfo  `json:"shippingInfo"`
	PaymentProof  *model.PaymentProof `json:"paymentProof,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	var order model.Order
	payload := map[string]any{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderPayment(ctx context.Context, id string, status model.PaymentStatus) (*model.Order, error) {
	var order model.Order
	payload := map[string]any{"paymentStatus": status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/payment", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
