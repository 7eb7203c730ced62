package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/service"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var query dto.ListQuery
	if err := c.Bind(&query); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.catalogService.ListProducts(ctx, query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SuccessPage(page.Items, dto.PageMeta(page.Page), page.Degraded))
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()

	categories, err := h.catalogService.ListCategories(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(categories))
}

func (h *CatalogHandler) LowStock(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.catalogService.LowStock(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.Success(products))
}
