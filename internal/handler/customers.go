package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/service"
)

type CustomerHandler struct {
	customerService service.CustomerService
}

func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.ListQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.customerService.List(ctx, query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SuccessPage(page.Items, dto.PageMeta(page.Page), page.Degraded))
}

func (h *CustomerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	detail, err := h.customerService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(detail))
}

func (h *CustomerHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var req gateway.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.customerService.Update(ctx, c.Param("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(user))
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.customerService.Delete(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(nil))
}

func (h *CustomerHandler) ToggleStatus(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := h.customerService.ToggleStatus(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(user))
}
