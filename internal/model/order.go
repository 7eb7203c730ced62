package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending         OrderStatus = "pending"
	OrderAwaitingPayment OrderStatus = "awaiting_payment"
	OrderProcessing      OrderStatus = "processing"
	OrderShipped         OrderStatus = "shipped"
	OrderDelivered       OrderStatus = "delivered"
	OrderCancelled       OrderStatus = "cancelled"
)

// Is compares statuses case-insensitively; the remote API is not
// consistent about casing.
func (s OrderStatus) Is(other OrderStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Is(other PaymentStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "cod"
	PaymentGCash   PaymentMethod = "gcash"
	PaymentPayMaya PaymentMethod = "paymaya"
)

// RequiresProof reports whether the method needs a customer-submitted
// receipt before an admin may approve the payment.
func (m PaymentMethod) RequiresProof() bool {
	return !strings.EqualFold(string(m), string(PaymentCOD))
}

// OrderItem carries name and unit price snapshots taken at order time.
// Historical revenue always reads the snapshot, never the live catalog
// price.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PaymentProof struct {
	ReceiptImage    string    `json:"receiptImage"`
	ReferenceNumber string    `json:"referenceNumber"`
	SenderName      string    `json:"senderName"`
	PaymentDate     time.Time `json:"paymentDate"`
	Notes           string    `json:"notes,omitempty"`
}

type Order struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	UserID        string          `json:"userId"`
	OrderDate     time.Time       `json:"orderDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Items         []OrderItem     `json:"items"`
	PaymentProof  *PaymentProof   `json:"paymentProof,omitempty"`
	ShippingInfo  *ShippingInfo   `json:"shippingInfo,omitempty"`
}

type ShippingInfo struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
}

// ItemTotal sums the item subtotals. TotalAmount as reported by the API
// stays authoritative for all spend and revenue figures; this exists for
// display-side discrepancy hints only.
func (o *Order) ItemTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}
