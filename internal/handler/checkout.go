package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/model"
	"doctama-backoffice/internal/service"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

func (h *CheckoutHandler) Cart(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.Success(h.checkoutService.Cart()))
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CheckoutHandler) AddItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	view, err := h.checkoutService.AddItem(ctx, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(view))
}

func (h *CheckoutHandler) UpdateItem(c echo.Context) error {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	view, err := h.checkoutService.UpdateItem(c.Param("productId"), req.Quantity)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(view))
}

func (h *CheckoutHandler) RemoveItem(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.Success(h.checkoutService.RemoveItem(c.Param("productId"))))
}

func (h *CheckoutHandler) ClearCart(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.Success(h.checkoutService.ClearCart()))
}

func (h *CheckoutHandler) SetShipping(c echo.Context) error {
	var info model.ShippingInfo
	if err := c.Bind(&info); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.checkoutService.SetShipping(info); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(h.checkoutService.Cart()))
}

type setPaymentRequest struct {
	Method model.PaymentMethod `json:"method"`
}

func (h *CheckoutHandler) SetPayment(c echo.Context) error {
	var req setPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.checkoutService.SetPayment(req.Method); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(h.checkoutService.Cart()))
}

// Submit accepts a multipart form so the receipt image rides along with
// the payment-proof metadata in one request.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	proof, err := proofFromForm(c)
	if err != nil {
		return err
	}

	order, err := h.checkoutService.Submit(ctx, proof)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.Success(order))
}

func proofFromForm(c echo.Context) (*service.PaymentProofInput, error) {
	file, err := c.FormFile("receipt")
	if err != nil {
		// no receipt attached: cash on delivery
		return nil, nil
	}

	src, err := file.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable receipt upload")
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable receipt upload")
	}

	var paymentDate time.Time
	if raw := c.FormValue("paymentDate"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "paymentDate must be an RFC 3339 timestamp")
		}
		paymentDate = parsed
	}
	return &service.PaymentProofInput{
		ReceiptFilename: file.Filename,
		ReceiptContent:  content,
		ReferenceNumber: c.FormValue("referenceNumber"),
		SenderName:      c.FormValue("senderName"),
		PaymentDate:     paymentDate,
		Notes:           c.FormValue("notes"),
	}, nil
}
