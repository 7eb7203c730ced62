package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"doctama-backoffice/internal/dto"
	"doctama-backoffice/internal/gateway"
	"doctama-backoffice/internal/service"
)

// ErrorHandler translates the error taxonomy into HTTP responses with
// the uniform envelope. Validation problems stay on the form (422),
// auth problems force a login (401), upstream API trouble is a gateway
// problem (502), anything else is a plain 500.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			verr      *service.ValidationError
			serverErr *gateway.ServerError
			netErr    *gateway.NetworkError
			httpErr   *echo.HTTPError
		)

		switch {
		case errors.As(err, &verr):
			_ = c.JSON(http.StatusUnprocessableEntity, dto.ValidationFailure(verr.Fields))
		case errors.Is(err, gateway.ErrUnauthorized):
			_ = c.JSON(http.StatusUnauthorized, dto.Failure("unauthorized", "session expired, sign in again"))
		case errors.Is(err, gateway.ErrNotFound):
			_ = c.JSON(http.StatusNotFound, dto.Failure("not_found", "resource not found"))
		case errors.As(err, &serverErr):
			_ = c.JSON(http.StatusBadGateway, dto.Failure("upstream_error", serverErr.Message))
		case errors.As(err, &netErr):
			_ = c.JSON(http.StatusBadGateway, dto.Failure("upstream_unreachable", "the storefront API could not be reached"))
		case errors.As(err, &httpErr):
			message := http.StatusText(httpErr.Code)
			if s, ok := httpErr.Message.(string); ok {
				message = s
			}
			_ = c.JSON(httpErr.Code, dto.Failure("http_error", message))
		default:
			logger.Error("unhandled request error",
				zap.String("path", c.Request().URL.Path),
				zap.Error(err),
			)
			_ = c.JSON(http.StatusInternalServerError, dto.Failure("internal", "internal error"))
		}
	}
}
