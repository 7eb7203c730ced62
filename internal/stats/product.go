package stats

import (
	"sort"

	"github.com/shopspring/decimal"

	"doctama-backoffice/internal/model"
)

// ProductSales accumulates units sold and revenue per product by scanning
// every order's items. Revenue prefers the item's unit-price snapshot; an
// item without one falls back to the product's current price, and to zero
// when even that is unknown. Products never ordered come back with zero
// stats. Output preserves the product collection order.
func ProductSales(products []model.Product, orders []model.Order) []model.ProductWithStats {
	type accum struct {
		count   int
		revenue decimal.Decimal
	}

	byProduct := make(map[string]*accum, len(products))
	priceOf := make(map[string]decimal.Decimal, len(products))
	for _, product := range products {
		byProduct[product.ID] = &accum{revenue: decimal.Zero}
		priceOf[product.ID] = product.Price
	}

	for _, order := range orders {
		for _, item := range order.Items {
			acc, known := byProduct[item.ProductID]
			if !known {
				// item references a product outside the fetched catalog
				continue
			}
			unit := item.UnitPrice
			if unit.IsZero() {
				unit = priceOf[item.ProductID]
			}
			acc.count += item.Quantity
			acc.revenue = acc.revenue.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	result := make([]model.ProductWithStats, 0, len(products))
	for _, product := range products {
		acc := byProduct[product.ID]
		result = append(result, model.ProductWithStats{
			Product:    product,
			SalesCount: acc.count,
			Revenue:    acc.revenue,
		})
	}
	return result
}

// TopSelling returns the n best sellers by units sold. The sort is
// stable: ties keep their original catalog order.
func TopSelling(products []model.ProductWithStats, n int) []model.ProductWithStats {
	ranked := make([]model.ProductWithStats, len(products))
	copy(ranked, products)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SalesCount > ranked[j].SalesCount
	})

	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// LowStock filters the catalog down to products under the restock
// threshold, preserving order.
func LowStock(products []model.Product) []model.Product {
	low := make([]model.Product, 0)
	for _, product := range products {
		if product.LowStock() {
			low = append(low, product)
		}
	}
	return low
}
