package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/listview"
	"doctama-backoffice/internal/model"
	"doctama-backoffice/internal/stats"
)

type CatalogGateway interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
}

// ProductView is a product joined with its category name and sales
// figures for the admin product list.
type ProductView struct {
	model.Product
	CategoryName string          `json:"categoryName"`
	SalesCount   int             `json:"salesCount"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type ProductPage struct {
	listview.Page[ProductView]
	Degraded []string
}

type CatalogService interface {
	ListProducts(ctx context.Context, query dto.ListQuery) (*ProductPage, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	LowStock(ctx context.Context) ([]model.Product, error)
}

type catalogServiceImpl struct {
	gateway CatalogGateway
	logger  *zap.Logger
}

func NewCatalogService(gw CatalogGateway, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{gateway: gw, logger: logger}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, query dto.ListQuery) (*ProductPage, error) {
	query.Normalize()

	var wg sync.WaitGroup
	var products []model.Product
	var categories []model.Category
	var orders []model.Order
	var productsErr, categoriesErr, ordersErr error

	wg.Add(3)
	go func() {
		defer wg.Done()
		products, productsErr = s.gateway.ListProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		categories, categoriesErr = s.gateway.ListCategories(ctx)
	}()
	go func() {
		defer wg.Done()
		orders, ordersErr = s.gateway.ListOrders(ctx)
	}()
	wg.Wait()

	if productsErr != nil {
		return nil, fmt.Errorf("list products: %w", productsErr)
	}

	var degraded []string
	if categoriesErr != nil {
		s.logger.Warn("category fetch failed, names degrade to blank", zap.Error(categoriesErr))
		categories = []model.Category{}
		degraded = append(degraded, "categories")
	}
	if ordersErr != nil {
		s.logger.Warn("order fetch failed, sales figures degrade to zero", zap.Error(ordersErr))
		orders = []model.Order{}
		degraded = append(degraded, "orders")
	}

	categoryNames := make(map[string]string, len(categories))
	for _, category := range categories {
		categoryNames[category.ID] = category.Name
	}

	sales := stats.ProductSales(products, orders)
	views := make([]ProductView, 0, len(sales))
	for _, sale := range sales {
		views = append(views, ProductView{
			Product:      sale.Product,
			CategoryName: categoryNames[sale.CategoryID],
			SalesCount:   sale.SalesCount,
			Revenue:      sale.Revenue,
		})
	}

	filtered := listview.Filter(views,
		listview.TextSearch(query.Search,
			func(v ProductView) string { return v.Name },
			func(v ProductView) string { return v.Description },
		),
		listview.Exact(query.Category, func(v ProductView) string { return v.CategoryID }),
		productStatusPredicate(query.Status),
	)

	if cmp, ok := productSortKeys[query.SortBy]; ok {
		filtered = listview.SortBy(filtered, cmp, listview.Direction(query.Order))
	}

	page := listview.Paginate(filtered, query.Page, query.PageSize)
	return &ProductPage{Page: page, Degraded: degraded}, nil
}

var productSortKeys = map[string]func(a, b ProductView) int{
	"name":    listview.StringKey(func(v ProductView) string { return v.Name }),
	"price":   listview.DecimalKey(func(v ProductView) decimal.Decimal { return v.Price }),
	"stock":   listview.NumberKey(func(v ProductView) float64 { return float64(v.StockQuantity) }),
	"sales":   listview.NumberKey(func(v ProductView) float64 { return float64(v.SalesCount) }),
	"created": listview.TimeKey(func(v ProductView) time.Time { return v.CreatedAt }),
}

func productStatusPredicate(status string) listview.Predicate[ProductView] {
	return func(v ProductView) bool {
		switch status {
		case "active":
			return v.IsActive
		case "inactive":
			return !v.IsActive
		case "purchasable":
			return v.Purchasable()
		default:
			return true
		}
	}
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.gateway.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *catalogServiceImpl) LowStock(ctx context.Context) ([]model.Product, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return stats.LowStock(products), nil
}
