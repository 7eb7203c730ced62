package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.ListQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.orderService.List(ctx, query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SuccessPage(page.Items, dto.PageMeta(page.Page), page.Degraded))
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(order))
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	orders, err := h.orderService.MyOrders(ctx, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(orders))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(order))
}

func (h *OrderHandler) ApprovePayment(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.ApprovePayment(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(order))
}

func (h *OrderHandler) RejectPayment(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.RejectPayment(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(order))
}
