package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Dimensions struct {
	Width  decimal.Decimal `json:"width"`
	Height decimal.Decimal `json:"height"`
	Depth  decimal.Decimal `json:"depth"`
	Unit   string          `json:"unit,omitempty"`
}

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	CategoryID    string          `json:"categoryId"`
	IsActive      bool            `json:"isActive"`
	Images        []string        `json:"images,omitempty"`
	Colors        []string        `json:"colors,omitempty"`
	Dimensions    *Dimensions     `json:"dimensions,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Purchasable is the derived availability predicate every screen
// recomputes; no entity enforces it.
func (p *Product) Purchasable() bool {
	return p.IsActive && p.StockQuantity > 0
}

// LowStockThreshold marks products that show up in the activity feed
// as needing a restock.
const LowStockThreshold = 10

func (p *Product) LowStock() bool {
	return p.StockQuantity < LowStockThreshold
}
