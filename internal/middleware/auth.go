package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"doctama-backoffice/internal/session"
)

const userContextKey = "current_user"

// RequireSession rejects requests when no upstream session is held.
func RequireSession(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := sessions.User()
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin additionally checks the session user's roles.
func RequireAdmin(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := sessions.User()
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			if !user.Roles.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			c.Set(userContextKey, user)
			return next(c)
		}
	}
}
