package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/model"
)

// CheckoutStep tracks where the wizard is. Steps only advance as their
// inputs become valid; editing an earlier step moves back.
type CheckoutStep string

const (
	StepCart     CheckoutStep = "cart"
	StepShipping CheckoutStep = "shipping"
	StepPayment  CheckoutStep = "payment"
	StepReview   CheckoutStep = "review"
	StepDone     CheckoutStep = "done"
)

type CartItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`

	// StockQuantity is the stock seen when the item entered the cart.
	// Quantity edits clamp against it without another catalog fetch.
	StockQuantity int `json:"stockQuantity"`
}

type CartView struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
	Step  CheckoutStep    `json:"step"`
}

type CheckoutGateway interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateOrder(ctx context.Context, req gateway.CreateOrderRequest) (*model.Order, error)
}

type ProofUploader interface {
	UploadImage(ctx context.Context, filename string, content []byte) (string, error)
}

type PaymentProofInput struct {
	ReceiptFilename string
	ReceiptContent  []byte
	ReferenceNumber string
	SenderName      string
	PaymentDate     time.Time
	Notes           string
}

type CheckoutService interface {
	Cart() CartView
	AddItem(ctx context.Context, productID string, quantity int) (CartView, error)
	UpdateItem(productID string, quantity int) (CartView, error)
	RemoveItem(productID string) CartView
	ClearCart() CartView
	SetShipping(info model.ShippingInfo) error
	SetPayment(method model.PaymentMethod) error
	Submit(ctx context.Context, proof *PaymentProofInput) (*model.Order, error)
}

// checkoutServiceImpl holds the single session's in-progress checkout.
// The service instance belongs to one authenticated session, the same
// way the browser build kept the cart in that tab's memory.
type checkoutServiceImpl struct {
	mu       sync.Mutex
	items    []CartItem
	shipping *model.ShippingInfo
	method   model.PaymentMethod

	gateway  CheckoutGateway
	uploader ProofUploader
	logger   *zap.Logger
}

func NewCheckoutService(gw CheckoutGateway, uploader ProofUploader, logger *zap.Logger) CheckoutService {
	return &checkoutServiceImpl{gateway: gw, uploader: uploader, logger: logger}
}

func (s *checkoutServiceImpl) step() CheckoutStep {
	switch {
	case len(s.items) == 0:
		return StepCart
	case s.shipping == nil:
		return StepShipping
	case s.method == "":
		return StepPayment
	default:
		return StepReview
	}
}

func (s *checkoutServiceImpl) view() CartView {
	total := decimal.Zero
	items := make([]CartItem, len(s.items))
	copy(items, s.items)
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return CartView{Items: items, Total: total, Step: s.step()}
}

func (s *checkoutServiceImpl) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

// AddItem snapshots the product's current name and price into the cart.
// The snapshot sticks: later catalog price changes never re-price an
// order in flight.
func (s *checkoutServiceImpl) AddItem(ctx context.Context, productID string, quantity int) (CartView, error) {
	if quantity < 1 {
		verr := newValidationError()
		verr.add("quantity", "quantity must be at least 1")
		return CartView{}, verr
	}

	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return CartView{}, fmt.Errorf("list products: %w", err)
	}

	var product *model.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		verr := newValidationError()
		verr.add("productId", "product not found")
		return CartView{}, verr
	}
	if !product.Purchasable() {
		verr := newValidationError()
		verr.add("productId", "product is not available")
		return CartView{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].StockQuantity = product.StockQuantity
			s.items[i].Quantity = clampQuantity(s.items[i].Quantity+quantity, product.StockQuantity)
			return s.view(), nil
		}
	}

	s.items = append(s.items, CartItem{
		ProductID:     product.ID,
		ProductName:   product.Name,
		UnitPrice:     product.Price,
		Quantity:      clampQuantity(quantity, product.StockQuantity),
		StockQuantity: product.StockQuantity,
	})
	return s.view(), nil
}

func clampQuantity(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}

func (s *checkoutServiceImpl) UpdateItem(productID string, quantity int) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		verr := newValidationError()
		verr.add("quantity", "quantity must be at least 1")
		return CartView{}, verr
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = clampQuantity(quantity, s.items[i].StockQuantity)
			return s.view(), nil
		}
	}

	verr := newValidationError()
	verr.add("productId", "product is not in the cart")
	return CartView{}, verr
}

func (s *checkoutServiceImpl) RemoveItem(productID string) CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.view()
}

func (s *checkoutServiceImpl) ClearCart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.shipping = nil
	s.method = ""
	return s.view()
}

func (s *checkoutServiceImpl) SetShipping(info model.ShippingInfo) error {
	verr := newValidationError()
	if info.FullName == "" {
		verr.add("fullName", "full name is required")
	}
	if info.Phone == "" {
		verr.add("phone", "phone is required")
	}
	if info.Address == "" {
		verr.add("address", "address is required")
	}
	if info.City == "" {
		verr.add("city", "city is required")
	}
	if err := verr.orNil(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipping = &info
	return nil
}

func (s *checkoutServiceImpl) SetPayment(method model.PaymentMethod) error {
	switch method {
	case model.PaymentCOD, model.PaymentGCash, model.PaymentPayMaya:
	default:
		verr := newValidationError()
		verr.add("paymentMethod", fmt.Sprintf("unknown payment method %q", method))
		return verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = method
	return nil
}

// Submit validates the whole wizard, uploads the payment proof when the
// method needs one, and places the order. The cart resets only after the
// remote API accepts it.
func (s *checkoutServiceImpl) Submit(ctx context.Context, proof *PaymentProofInput) (*model.Order, error) {
	s.mu.Lock()
	items := make([]CartItem, len(s.items))
	copy(items, s.items)
	shipping := s.shipping
	method := s.method
	s.mu.Unlock()

	verr := newValidationError()
	if len(items) == 0 {
		verr.add("items", "cart is empty")
	}
	if shipping == nil {
		verr.add("shipping", "shipping information is required")
	}
	if method == "" {
		verr.add("paymentMethod", "payment method is required")
	}
	if method.RequiresProof() && method != "" {
		switch {
		case proof == nil:
			verr.add("paymentProof", fmt.Sprintf("%s payments require a payment proof", method))
		case len(proof.ReceiptContent) == 0:
			verr.add("receiptImage", "receipt image is required")
		case proof.ReferenceNumber == "":
			verr.add("referenceNumber", "reference number is required")
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	var paymentProof *model.PaymentProof
	if method.RequiresProof() {
		receiptURL, err := s.uploader.UploadImage(ctx, proof.ReceiptFilename, proof.ReceiptContent)
		if err != nil {
			return nil, fmt.Errorf("upload payment proof: %w", err)
		}
		paymentProof = &model.PaymentProof{
			ReceiptImage:    receiptURL,
			ReferenceNumber: proof.ReferenceNumber,
			SenderName:      proof.SenderName,
			PaymentDate:     proof.PaymentDate,
			Notes:           proof.Notes,
		}
	}

	orderItems := make([]model.OrderItem, len(items))
	total := decimal.Zero
	for i, item := range items {
		orderItems[i] = model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.CreateOrderRequest{
		Items:         orderItems,
		TotalAmount:   total.StringFixed(2),
		PaymentMethod: method,
		ShippingInfo:  *shipping,
		PaymentProof:  paymentProof,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order placed",
		zap.String("orderNumber", order.OrderNumber),
		zap.String("total", total.StringFixed(2)),
	)

	s.ClearCart()
	return order, nil
}
