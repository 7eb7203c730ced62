package gateway

import (
	"context"

	"doctama-backoffice/internal/model"
)

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	return fetchList[model.Product](ctx, c, "/products")
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	return fetchList[model.Category](ctx, c, "/categories")
}
